package model

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/zlang-app/zlang/internal/errors"
)

// Direction is the register conversion requested from the model
type Direction string

const (
	// DirectionToGenZ rewrites standard phrasing into Gen Z slang
	DirectionToGenZ Direction = "normal-to-genz"
	// DirectionToNormal rewrites Gen Z slang into formal phrasing
	DirectionToNormal Direction = "genz-to-normal"
)

// Directions returns every supported direction
func Directions() []Direction {
	return []Direction{DirectionToGenZ, DirectionToNormal}
}

// Valid reports whether d is one of the known directions
func (d Direction) Valid() bool {
	return d == DirectionToGenZ || d == DirectionToNormal
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	if d == DirectionToGenZ {
		return DirectionToNormal
	}
	return DirectionToGenZ
}

func (d Direction) String() string {
	return string(d)
}

// ParseDirection parses the wire value or one of its short aliases
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DirectionToGenZ), "forward", "genz":
		return DirectionToGenZ, nil
	case string(DirectionToNormal), "reverse", "normal":
		return DirectionToNormal, nil
	default:
		return "", apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("unsupported direction: %q", s))
	}
}

// Language is the language the model is asked to answer in
type Language string

// Supported languages
const (
	LanguageEnglish Language = "en"
	LanguageBengali Language = "bn"
	LanguageHindi   Language = "hi"
	LanguageSpanish Language = "es"
)

var languageNames = map[Language]string{
	LanguageEnglish: "English",
	LanguageBengali: "Bengali (বাংলা)",
	LanguageHindi:   "Hindi (हिंदी)",
	LanguageSpanish: "Spanish (Español)",
}

// Languages returns every supported language in display order
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageBengali, LanguageHindi, LanguageSpanish}
}

// Valid reports whether l is a supported language
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// DisplayName returns the name used inside prompts
func (l Language) DisplayName() string {
	return languageNames[l]
}

func (l Language) String() string {
	return string(l)
}

// ParseLanguage parses a language code such as "en"
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("unsupported language: %q", s))
	}
	return l, nil
}

// TranslationRequest is a single user-initiated conversion
type TranslationRequest struct {
	Text      string
	Direction Direction
	Language  Language
}

// NewTranslationRequest validates its inputs and builds a request
func NewTranslationRequest(text string, direction Direction, language Language) (TranslationRequest, error) {
	if strings.TrimSpace(text) == "" {
		return TranslationRequest{}, apperrors.New(apperrors.CodeInvalidArg, "text cannot be empty")
	}
	if !direction.Valid() {
		return TranslationRequest{}, apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("unsupported direction: %q", direction))
	}
	if !language.Valid() {
		return TranslationRequest{}, apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("unsupported language: %q", language))
	}
	return TranslationRequest{Text: text, Direction: direction, Language: language}, nil
}

// HistoryEntry is a completed translation kept in history
type HistoryEntry struct {
	ID        string    `json:"id" db:"id"`
	Input     string    `json:"input" db:"input"`
	Output    string    `json:"output" db:"output"`
	Direction Direction `json:"direction" db:"direction"`
	Language  Language  `json:"language" db:"language"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Settings holds user preferences shared with the front end
type Settings struct {
	Language     Language `yaml:"language" json:"language"`
	ShowEmojis   bool     `yaml:"show_emojis" json:"showEmojis"`
	ShowTooltips bool     `yaml:"show_tooltips" json:"showTooltips"`
	EnableVoice  bool     `yaml:"enable_voice" json:"enableVoice"`
}

// DefaultSettings returns the settings used when none are configured
func DefaultSettings() Settings {
	return Settings{
		Language:     LanguageEnglish,
		ShowEmojis:   true,
		ShowTooltips: true,
		EnableVoice:  true,
	}
}
