package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// HSK level bounds accepted for vocabulary items.
const (
	MinLevel = 1
	MaxLevel = 6
)

// VocabularyItem is a read-only snapshot of a row of the vocab table.
// Level is nil when the word has no HSK level assigned.
type VocabularyItem struct {
	ID          int64  `json:"id"          db:"id"`
	Level       *int   `json:"hsk_level"   db:"hsk_level"`
	Traditional string `json:"traditional" db:"traditional"`
	Simplified  string `json:"simplified"  db:"simplified"`
	Pinyin      string `json:"pinyin"      db:"pinyin"`
	English     string `json:"english"     db:"english"`
}

// NewVocabulary is the insertable form of a VocabularyItem.
type NewVocabulary struct {
	Level       *int   `json:"hsk_level"`
	Traditional string `json:"traditional"`
	Simplified  string `json:"simplified"`
	Pinyin      string `json:"pinyin"`
	English     string `json:"english"`
}

// IsComplete reports whether the required text columns are all present.
func (v NewVocabulary) IsComplete() bool {
	return strings.TrimSpace(v.Simplified) != "" &&
		strings.TrimSpace(v.Pinyin) != "" &&
		strings.TrimSpace(v.English) != ""
}

// Validate checks required fields and the level range.
func (v NewVocabulary) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(v.Simplified) == "" {
		errs = append(errs, FieldError{Field: "simplified", Message: "required"})
	}
	if strings.TrimSpace(v.Pinyin) == "" {
		errs = append(errs, FieldError{Field: "pinyin", Message: "required"})
	}
	if strings.TrimSpace(v.English) == "" {
		errs = append(errs, FieldError{Field: "english", Message: "required"})
	}
	if v.Level != nil && !IsValidLevel(*v.Level) {
		errs = append(errs, FieldError{
			Field:   "hsk_level",
			Message: fmt.Sprintf("must be between %d and %d", MinLevel, MaxLevel),
		})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// IsValidLevel reports whether level is within [MinLevel, MaxLevel].
func IsValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// LevelFilter selects either every item or the items of one exact level.
// The zero value matches everything.
type LevelFilter struct {
	level *int
}

// AllLevels is the "no filter" value.
var AllLevels = LevelFilter{}

// ExactLevel returns a filter matching items whose level equals level.
func ExactLevel(level int) LevelFilter {
	return LevelFilter{level: &level}
}

// ParseLevelFilter parses "All" (case-insensitive) or an empty string as
// AllLevels, and "1".."6" as an exact level.
func ParseLevelFilter(s string) (LevelFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllLevels, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || !IsValidLevel(n) {
		return AllLevels, NewValidationError("level", fmt.Sprintf("must be All or %d-%d", MinLevel, MaxLevel))
	}
	return ExactLevel(n), nil
}

// IsAll reports whether the filter matches every item.
func (f LevelFilter) IsAll() bool { return f.level == nil }

// Level returns the filtered level and true, or 0 and false for AllLevels.
func (f LevelFilter) Level() (int, bool) {
	if f.level == nil {
		return 0, false
	}
	return *f.level, true
}

// Match reports whether item passes the filter. Items without a level only
// pass AllLevels.
func (f LevelFilter) Match(item VocabularyItem) bool {
	if f.level == nil {
		return true
	}
	return item.Level != nil && *item.Level == *f.level
}

func (f LevelFilter) String() string {
	if f.level == nil {
		return "All"
	}
	return strconv.Itoa(*f.level)
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
