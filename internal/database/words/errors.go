package words

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateWord is returned when english_word already exists, whether
	// the existing row is active or soft-deleted.
	ErrDuplicateWord = errors.New("word already exists")
	// ErrNotFound is returned when no row matches the id or word.
	ErrNotFound = errors.New("word not found")
	// ErrStorageUnavailable wraps any other failure of the storage engine.
	ErrStorageUnavailable = errors.New("word storage unavailable")
	// ErrInvalidWord is returned when english_word is blank or no meanings are given.
	ErrInvalidWord = errors.New("invalid word")
)

// mapError translates a gorm or driver error into exactly one of the
// package sentinels. op names the failed operation for the message.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicateWord),
		errors.Is(err, ErrInvalidWord), errors.Is(err, ErrStorageUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrDuplicateWord
	}
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStorageUnavailable, err))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	// Fallback for drivers that do not translate: sqlite reports
	// "UNIQUE constraint failed: words.english_word".
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "sqlstate 23505")
}
