package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/kelime/internal/entities"
	"github.com/mrlokans/kelime/internal/logging"
)

// WordStore defines the word operations the API exposes.
type WordStore interface {
	Create(ctx context.Context, word *entities.Word) (uint, error)
	GetAll(ctx context.Context, includeDeleted bool) ([]entities.Word, error)
	GetDeleted(ctx context.Context) ([]entities.Word, error)
	GetByID(ctx context.Context, id uint) (*entities.Word, error)
	GetByWord(ctx context.Context, text string) (*entities.Word, error)
	GetByLevel(ctx context.Context, level string) ([]entities.Word, error)
	GetRandom(ctx context.Context, excludeKnown bool) (*entities.Word, error)
	Search(ctx context.Context, substring string) ([]entities.Word, error)
	GetByKnownStatus(ctx context.Context, known bool) ([]entities.Word, error)
	Update(ctx context.Context, id uint, word *entities.Word) (int64, error)
	SetKnown(ctx context.Context, id uint, known bool) (int64, error)
	SoftDelete(ctx context.Context, id uint) (int64, error)
	Restore(ctx context.Context, id uint) (int64, error)
	PermanentDelete(ctx context.Context, id uint) (int64, error)
	Stats(ctx context.Context) (*entities.WordStats, error)
}

type WordsController struct {
	store WordStore
	log   *logging.Logger
}

func NewWordsController(store WordStore, log *logging.Logger) *WordsController {
	if log == nil {
		log = logging.NewNop()
	}
	return &WordsController{store: store, log: log.With("component", "words_api")}
}

// WordRequest is the request body for adding or replacing a word.
type WordRequest struct {
	EnglishWord        string   `json:"english_word" binding:"required"`
	TurkishMeanings    []string `json:"turkish_meanings" binding:"required,min=1"`
	ExampleSentence    *string  `json:"example_sentence,omitempty"`
	ExampleTranslation *string  `json:"example_translation,omitempty"`
	CEFRLevel          *string  `json:"cefr_level,omitempty"`
}

// KnownRequest is the request body for toggling the learned flag.
// A pointer keeps an explicit false distinguishable from a missing field.
type KnownRequest struct {
	Known *bool `json:"known" binding:"required"`
}

// bindWord decodes and validates a WordRequest. It writes the 400 response
// itself and returns false when the body is unusable.
func bindWord(c *gin.Context) (*entities.Word, bool) {
	var req WordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "english_word and a non-empty turkish_meanings list are required")
		return nil, false
	}

	word := &entities.Word{
		EnglishWord:        strings.TrimSpace(req.EnglishWord),
		TurkishMeanings:    req.TurkishMeanings,
		ExampleSentence:    req.ExampleSentence,
		ExampleTranslation: req.ExampleTranslation,
	}
	if word.EnglishWord == "" {
		respondBadRequest(c, "english_word must not be blank")
		return nil, false
	}

	if req.CEFRLevel != nil {
		level := entities.NormalizeCEFRLevel(*req.CEFRLevel)
		if level != "" {
			if !entities.IsValidCEFRLevel(level) {
				respondBadRequest(c, "cefr_level must be one of "+strings.Join(entities.CEFRLevels, ", "))
				return nil, false
			}
			word.CEFRLevel = &level
		}
	}
	return word, true
}

// ListWords returns every active word, newest first.
// GET /api/words?include_deleted=true
func (wc *WordsController) ListWords(c *gin.Context) {
	includeDeleted, ok := parseBoolQuery(c, "include_deleted")
	if !ok {
		return
	}

	words, err := wc.store.GetAll(c.Request.Context(), includeDeleted)
	if err != nil {
		respondStoreError(c, wc.log, err, "list words")
		return
	}
	c.JSON(http.StatusOK, words)
}

// ListDeleted returns the trash, most recently deleted first.
// GET /api/words/deleted
func (wc *WordsController) ListDeleted(c *gin.Context) {
	words, err := wc.store.GetDeleted(c.Request.Context())
	if err != nil {
		respondStoreError(c, wc.log, err, "list deleted words")
		return
	}
	c.JSON(http.StatusOK, words)
}

// AddWord creates a new word.
// POST /api/words
func (wc *WordsController) AddWord(c *gin.Context) {
	word, ok := bindWord(c)
	if !ok {
		return
	}

	id, err := wc.store.Create(c.Request.Context(), word)
	if err != nil {
		respondStoreError(c, wc.log, err, "add word")
		return
	}

	wc.log.Info("Word added", "id", id, "word", word.EnglishWord)
	c.JSON(http.StatusCreated, CreatedResponse{ID: id, Message: "word added"})
}

// GetWordByID returns a word by id, including soft-deleted ones.
// GET /api/words/id/:id
func (wc *WordsController) GetWordByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	word, err := wc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, wc.log, err, "get word by id")
		return
	}
	c.JSON(http.StatusOK, word)
}

// GetWord looks up an active word by its English text, ignoring case.
// GET /api/words/:word (registered as :id)
func (wc *WordsController) GetWord(c *gin.Context) {
	word, err := wc.store.GetByWord(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, wc.log, err, "get word")
		return
	}
	c.JSON(http.StatusOK, word)
}

// ListByLevel returns active words at a CEFR level.
// GET /api/words/level/:level
func (wc *WordsController) ListByLevel(c *gin.Context) {
	level := entities.NormalizeCEFRLevel(c.Param("level"))

	words, err := wc.store.GetByLevel(c.Request.Context(), level)
	if err != nil {
		respondStoreError(c, wc.log, err, "list words by level")
		return
	}
	c.JSON(http.StatusOK, words)
}

// RandomWord returns one active word picked at random.
// GET /api/words/random?exclude_known=true
func (wc *WordsController) RandomWord(c *gin.Context) {
	excludeKnown, ok := parseBoolQuery(c, "exclude_known")
	if !ok {
		return
	}

	word, err := wc.store.GetRandom(c.Request.Context(), excludeKnown)
	if err != nil {
		respondStoreError(c, wc.log, err, "random word")
		return
	}
	c.JSON(http.StatusOK, word)
}

// ListKnown returns words marked as learned.
// GET /api/words/known
func (wc *WordsController) ListKnown(c *gin.Context) {
	wc.listByKnownStatus(c, true)
}

// ListUnknown returns words still being learned.
// GET /api/words/unknown
func (wc *WordsController) ListUnknown(c *gin.Context) {
	wc.listByKnownStatus(c, false)
}

func (wc *WordsController) listByKnownStatus(c *gin.Context, known bool) {
	words, err := wc.store.GetByKnownStatus(c.Request.Context(), known)
	if err != nil {
		respondStoreError(c, wc.log, err, "list words by known status")
		return
	}
	c.JSON(http.StatusOK, words)
}

// Search finds active words containing the query.
// GET /api/search/:query and GET /api/search?q=
func (wc *WordsController) Search(c *gin.Context) {
	query := c.Param("query")
	if query == "" {
		query = c.Query("q")
	}

	words, err := wc.store.Search(c.Request.Context(), strings.TrimSpace(query))
	if err != nil {
		respondStoreError(c, wc.log, err, "search words")
		return
	}
	c.JSON(http.StatusOK, words)
}

// UpdateWord replaces a word's content fields.
// PUT /api/words/:id
func (wc *WordsController) UpdateWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	word, ok := bindWord(c)
	if !ok {
		return
	}

	changes, err := wc.store.Update(c.Request.Context(), id, word)
	if err != nil {
		respondStoreError(c, wc.log, err, "update word")
		return
	}
	respondChange(c, "word updated", changes)
}

// SetKnown marks a word as known or unknown.
// PATCH /api/words/:id/known
func (wc *WordsController) SetKnown(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req KnownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "known must be a boolean")
		return
	}

	changes, err := wc.store.SetKnown(c.Request.Context(), id, *req.Known)
	if err != nil {
		respondStoreError(c, wc.log, err, "set known")
		return
	}

	message := "word marked as unknown"
	if *req.Known {
		message = "word marked as known"
	}
	respondChange(c, message, changes)
}

// DeleteWord moves a word to the trash.
// DELETE /api/words/:id
func (wc *WordsController) DeleteWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	changes, err := wc.store.SoftDelete(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, wc.log, err, "delete word")
		return
	}

	wc.log.Info("Word deleted", "id", id, "permanent", false)
	respondChange(c, "word deleted", changes)
}

// RestoreWord takes a word out of the trash.
// POST /api/words/:id/restore
func (wc *WordsController) RestoreWord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	changes, err := wc.store.Restore(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, wc.log, err, "restore word")
		return
	}

	wc.log.Info("Word restored", "id", id)
	respondChange(c, "word restored", changes)
}

// DeleteWordPermanently removes a word for good.
// DELETE /api/words/:id/permanent
func (wc *WordsController) DeleteWordPermanently(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	changes, err := wc.store.PermanentDelete(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, wc.log, err, "delete word permanently")
		return
	}

	wc.log.Info("Word deleted", "id", id, "permanent", true)
	respondChange(c, "word permanently deleted", changes)
}

// Stats returns word counts.
// GET /api/stats
func (wc *WordsController) Stats(c *gin.Context) {
	stats, err := wc.store.Stats(c.Request.Context())
	if err != nil {
		respondStoreError(c, wc.log, err, "word stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
