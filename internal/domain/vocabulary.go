package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Vocabulary-specific validation errors
var (
	// ErrItemIDEmpty is returned when a vocabulary item ID is empty or nil.
	ErrItemIDEmpty = errors.New("vocabulary item ID cannot be empty")

	// ErrItemWordEmpty is returned when a vocabulary item has no word text.
	ErrItemWordEmpty = errors.New("vocabulary item word cannot be empty")

	// ErrItemLevelInvalid is returned when a vocabulary item has an invalid CEFR level.
	ErrItemLevelInvalid = errors.New("vocabulary item level must be a valid CEFR level")

	// ErrInvalidWordType is returned when a word type is not a known part of speech.
	ErrInvalidWordType = errors.New("invalid word type")
)

// WordType is the part of speech of a vocabulary item.
type WordType string

// Known word types.
const (
	WordTypeNoun         WordType = "noun"
	WordTypeVerb         WordType = "verb"
	WordTypeAdjective    WordType = "adjective"
	WordTypeAdverb       WordType = "adverb"
	WordTypePronoun      WordType = "pronoun"
	WordTypePreposition  WordType = "preposition"
	WordTypeConjunction  WordType = "conjunction"
	WordTypeInterjection WordType = "interjection"
)

// wordTypeInfo carries the display attributes of a part of speech. The map
// domain is closed, same as levelNames.
var wordTypeInfo = map[WordType]struct {
	name  string
	color string
}{
	WordTypeNoun:         {"Noun", "#3B82F6"},
	WordTypeVerb:         {"Verb", "#10B981"},
	WordTypeAdjective:    {"Adjective", "#F59E0B"},
	WordTypeAdverb:       {"Adverb", "#8B5CF6"},
	WordTypePronoun:      {"Pronoun", "#EC4899"},
	WordTypePreposition:  {"Preposition", "#6366F1"},
	WordTypeConjunction:  {"Conjunction", "#14B8A6"},
	WordTypeInterjection: {"Interjection", "#EF4444"},
}

// Name returns the display name of the word type, or an empty string for an
// invalid type.
func (t WordType) Name() string {
	return wordTypeInfo[t].name
}

// Color returns the hex accent color clients render the word type with, or an
// empty string for an invalid type.
func (t WordType) Color() string {
	return wordTypeInfo[t].color
}

// IsValid reports whether t is a known word type.
func (t WordType) IsValid() bool {
	switch t {
	case WordTypeNoun, WordTypeVerb, WordTypeAdjective, WordTypeAdverb,
		WordTypePronoun, WordTypePreposition, WordTypeConjunction, WordTypeInterjection:
		return true
	default:
		return false
	}
}

// Example is a usage example attached to a vocabulary item.
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation,omitempty"`
}

// VocabularyItem is a single word in the content catalog. Items are owned by
// the catalog and are read-only to the scheduling core; only the ID and Level
// participate in scheduling decisions.
type VocabularyItem struct {
	ID          uuid.UUID `json:"id"`
	Word        string    `json:"word"`
	Type        WordType  `json:"type"`
	Phonetic    string    `json:"phonetic,omitempty"`
	Definition  string    `json:"definition"`
	Translation string    `json:"translation,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
	Level       Level     `json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewVocabularyItem creates a catalog item with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewVocabularyItem(word string, wordType WordType, definition string, level Level) (*VocabularyItem, error) {
	now := time.Now().UTC()
	item := &VocabularyItem{
		ID:         uuid.New(),
		Word:       word,
		Type:       wordType,
		Definition: definition,
		Level:      level,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the VocabularyItem has valid data.
// Returns an error if any field fails validation.
func (v *VocabularyItem) Validate() error {
	if v.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if v.Word == "" {
		return ErrItemWordEmpty
	}

	if !v.Type.IsValid() {
		return ErrInvalidWordType
	}

	if !v.Level.IsValid() {
		return ErrItemLevelInvalid
	}

	return nil
}
