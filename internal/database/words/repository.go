// Package words provides database operations for the flashcard word store.
//
// This package implements the WordStore interface defined in internal/http/words.go.
//
// # Interface Implementation
//
//	var _ http.WordStore = (*Repository)(nil)
//
// # Lifecycle
//
// A word carries two independent flags. is_deleted hides it from every
// lookup except GetByID, GetAll(includeDeleted) and GetDeleted, and is
// reversed by Restore. known marks the word as learned and drives
// GetRandom(excludeKnown). PermanentDelete removes the row for good.
//
// # Usage
//
//	repo := words.NewRepository(db)
//	id, err := repo.Create(ctx, &entities.Word{EnglishWord: "hello", TurkishMeanings: []string{"merhaba"}})
//	word, err := repo.GetByWord(ctx, "HELLO")
package words

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mrlokans/kelime/internal/entities"
)

// Repository handles all word database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new word repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new word and returns its id. The flags always start
// false and both timestamps are set to the same instant.
func (r *Repository) Create(ctx context.Context, word *entities.Word) (uint, error) {
	if err := validateWord(word); err != nil {
		return 0, err
	}

	now := r.now()
	word.ID = 0
	word.IsDeleted = false
	word.Known = false
	word.CreatedAt = now
	word.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(word).Error; err != nil {
		return 0, mapError("create word", err)
	}
	return word.ID, nil
}

// GetAll returns active words, or every word when includeDeleted is set,
// newest first.
func (r *Repository) GetAll(ctx context.Context, includeDeleted bool) ([]entities.Word, error) {
	query := r.db.WithContext(ctx).Model(&entities.Word{})
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	return findWords("get all words", query.Order("created_at DESC").Order("id DESC"))
}

// GetDeleted returns soft-deleted words, most recently deleted first.
func (r *Repository) GetDeleted(ctx context.Context) ([]entities.Word, error) {
	query := r.db.WithContext(ctx).
		Where("is_deleted = ?", true).
		Order("updated_at DESC").Order("id DESC")
	return findWords("get deleted words", query)
}

// GetByID retrieves a word regardless of its deletion state.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Word, error) {
	var word entities.Word
	if err := r.db.WithContext(ctx).First(&word, id).Error; err != nil {
		return nil, mapError("get word by id", err)
	}
	return &word, nil
}

// GetByWord finds an active word by case-insensitive exact match.
func (r *Repository) GetByWord(ctx context.Context, text string) (*entities.Word, error) {
	var word entities.Word
	err := r.db.WithContext(ctx).
		Where("LOWER(english_word) = LOWER(?) AND is_deleted = ?", text, false).
		First(&word).Error
	if err != nil {
		return nil, mapError("get word by text", err)
	}
	return &word, nil
}

// GetByLevel returns active words at the given CEFR level, newest first.
func (r *Repository) GetByLevel(ctx context.Context, level string) ([]entities.Word, error) {
	query := r.db.WithContext(ctx).
		Where("UPPER(cefr_level) = UPPER(?) AND is_deleted = ?", level, false).
		Order("created_at DESC").Order("id DESC")
	return findWords("get words by level", query)
}

// GetRandom picks one active word, skipping known words when excludeKnown is set.
func (r *Repository) GetRandom(ctx context.Context, excludeKnown bool) (*entities.Word, error) {
	query := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if excludeKnown {
		query = query.Where("known = ?", false)
	}

	var word entities.Word
	if err := query.Order("RANDOM()").Take(&word).Error; err != nil {
		return nil, mapError("get random word", err)
	}
	return &word, nil
}

// Search returns active words whose english_word contains substring,
// ignoring case. An empty substring matches every active word.
func (r *Repository) Search(ctx context.Context, substring string) ([]entities.Word, error) {
	pattern := "%" + escapeLike(strings.ToLower(substring)) + "%"
	query := r.db.WithContext(ctx).
		Where("LOWER(english_word) LIKE ? ESCAPE '\\' AND is_deleted = ?", pattern, false).
		Order("created_at DESC").Order("id DESC")
	return findWords("search words", query)
}

// GetByKnownStatus returns active words with the given known flag, most
// recently touched first.
func (r *Repository) GetByKnownStatus(ctx context.Context, known bool) ([]entities.Word, error) {
	query := r.db.WithContext(ctx).
		Where("is_deleted = ? AND known = ?", false, known).
		Order("updated_at DESC").Order("id DESC")
	return findWords("get words by known status", query)
}

// Update overwrites the content fields of a word. The is_deleted and known
// flags are left untouched.
func (r *Repository) Update(ctx context.Context, id uint, word *entities.Word) (int64, error) {
	if err := validateWord(word); err != nil {
		return 0, err
	}
	return r.updateColumns(ctx, "update word", id, map[string]any{
		"english_word":        word.EnglishWord,
		"turkish_meanings":    word.TurkishMeanings,
		"example_sentence":    word.ExampleSentence,
		"example_translation": word.ExampleTranslation,
		"cefr_level":          word.CEFRLevel,
	})
}

// SetKnown sets the learned flag.
func (r *Repository) SetKnown(ctx context.Context, id uint, known bool) (int64, error) {
	return r.updateColumns(ctx, "set known", id, map[string]any{"known": known})
}

// SoftDelete hides a word. Deleting an already deleted word still counts as
// one change since the row was found and updated_at is refreshed.
func (r *Repository) SoftDelete(ctx context.Context, id uint) (int64, error) {
	return r.updateColumns(ctx, "soft delete word", id, map[string]any{"is_deleted": true})
}

// Restore brings a soft-deleted word back.
func (r *Repository) Restore(ctx context.Context, id uint) (int64, error) {
	return r.updateColumns(ctx, "restore word", id, map[string]any{"is_deleted": false})
}

// PermanentDelete removes a word row. It cannot be undone.
func (r *Repository) PermanentDelete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Word{}, id)
	if result.Error != nil {
		return 0, mapError("permanently delete word", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected, nil
}

// PurgeDeleted permanently removes words that were soft-deleted before the
// given instant. It returns how many rows were removed.
func (r *Repository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_deleted = ? AND updated_at < ?", true, before.UTC()).
		Delete(&entities.Word{})
	if result.Error != nil {
		return 0, mapError("purge deleted words", result.Error)
	}
	return result.RowsAffected, nil
}

// Stats returns word counts. The four queries run concurrently and
// independently, so under concurrent writes the numbers may come from
// slightly different moments.
func (r *Repository) Stats(ctx context.Context) (*entities.WordStats, error) {
	stats := &entities.WordStats{ByLevel: make(map[string]int64)}
	g, gctx := errgroup.WithContext(ctx)
	words := func(deleted bool) *gorm.DB {
		return r.db.WithContext(gctx).Model(&entities.Word{}).Where("is_deleted = ?", deleted)
	}

	g.Go(func() error {
		return mapError("count words", words(false).Count(&stats.Total).Error)
	})

	g.Go(func() error {
		return mapError("count deleted words", words(true).Count(&stats.Deleted).Error)
	})

	var byKnown []struct {
		Known bool
		Count int64
	}
	g.Go(func() error {
		err := words(false).Select("known, COUNT(*) AS count").Group("known").Scan(&byKnown).Error
		return mapError("count words by known status", err)
	})

	var byLevel []struct {
		Level *string
		Count int64
	}
	g.Go(func() error {
		err := words(false).Select("cefr_level AS level, COUNT(*) AS count").Group("cefr_level").Scan(&byLevel).Error
		return mapError("count words by level", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, row := range byKnown {
		if row.Known {
			stats.Known += row.Count
		} else {
			stats.Unknown += row.Count
		}
	}
	for _, row := range byLevel {
		level := entities.UnknownLevel
		if row.Level != nil && strings.TrimSpace(*row.Level) != "" {
			level = entities.NormalizeCEFRLevel(*row.Level)
		}
		stats.ByLevel[level] += row.Count
	}

	return stats, nil
}

// Ping checks that the storage engine is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return mapError("ping", err)
	}
	return mapError("ping", sqlDB.PingContext(ctx))
}

// updateColumns applies columns plus a fresh updated_at to one row and
// reports ErrNotFound when the id matched nothing.
func (r *Repository) updateColumns(ctx context.Context, op string, id uint, columns map[string]any) (int64, error) {
	columns["updated_at"] = r.now()
	result := r.db.WithContext(ctx).Model(&entities.Word{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return 0, mapError(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected, nil
}

func findWords(op string, query *gorm.DB) ([]entities.Word, error) {
	words := []entities.Word{}
	if err := query.Find(&words).Error; err != nil {
		return nil, mapError(op, err)
	}
	if words == nil {
		words = []entities.Word{}
	}
	return words, nil
}

func validateWord(word *entities.Word) error {
	if word == nil {
		return fmt.Errorf("%w: word is nil", ErrInvalidWord)
	}
	if strings.TrimSpace(word.EnglishWord) == "" {
		return fmt.Errorf("%w: english_word is required", ErrInvalidWord)
	}
	if len(word.TurkishMeanings) == 0 {
		return fmt.Errorf("%w: at least one turkish meaning is required", ErrInvalidWord)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
