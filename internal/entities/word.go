package entities

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// CEFRLevels lists the Common European Framework proficiency levels in ascending order.
var CEFRLevels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// UnknownLevel is the Stats bucket for words stored without a CEFR level.
const UnknownLevel = "unknown"

type Word struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	EnglishWord        string                      `gorm:"uniqueIndex;not null;size:255" json:"english_word"`
	TurkishMeanings    datatypes.JSONSlice[string] `gorm:"not null" json:"turkish_meanings"`
	ExampleSentence    *string                     `json:"example_sentence"`
	ExampleTranslation *string                     `json:"example_translation"`
	CEFRLevel          *string                     `gorm:"column:cefr_level;index;size:2" json:"cefr_level"`
	IsDeleted          bool                        `gorm:"not null;default:false;index" json:"is_deleted"`
	Known              bool                        `gorm:"not null;default:false;index" json:"known"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

func (Word) TableName() string {
	return "words"
}

// Meanings returns the Turkish meanings as a plain slice.
func (w *Word) Meanings() []string {
	return []string(w.TurkishMeanings)
}

// WordStats aggregates the word table. Total, Known, Unknown and ByLevel count
// non-deleted words only.
type WordStats struct {
	Total   int64            `json:"total"`
	Deleted int64            `json:"deleted"`
	Known   int64            `json:"known"`
	Unknown int64            `json:"unknown"`
	ByLevel map[string]int64 `json:"by_level"`
}

// NormalizeCEFRLevel trims and upper-cases a level so "b2 " matches "B2".
func NormalizeCEFRLevel(level string) string {
	return strings.ToUpper(strings.TrimSpace(level))
}

// IsValidCEFRLevel reports whether level (already normalized) is one of CEFRLevels.
func IsValidCEFRLevel(level string) bool {
	for _, l := range CEFRLevels {
		if l == level {
			return true
		}
	}
	return false
}
