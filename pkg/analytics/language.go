package analytics

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// UnknownLanguage labels messages the detector could not decide on.
const UnknownLanguage = "unknown"

// DefaultLanguages is used when language detection is enabled without an explicit list.
var DefaultLanguages = []string{"english", "spanish", "french", "german", "portuguese", "italian"}

// LanguageDetector wraps a lingua detector restricted to a fixed language set.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a detector for the named languages (case-insensitive
// English names such as "german"). At least two languages are required.
func NewLanguageDetector(names []string) (*LanguageDetector, error) {
	if len(names) == 0 {
		names = DefaultLanguages
	}

	langs, err := resolveLanguages(names)
	if err != nil {
		return nil, err
	}
	if len(langs) < 2 {
		return nil, fmt.Errorf("language detection needs at least 2 languages, got %d", len(langs))
	}

	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build(),
	}, nil
}

// Detect returns the lowercased language name of text, or UnknownLanguage.
func (d *LanguageDetector) Detect(text string) string {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return UnknownLanguage
	}
	return strings.ToLower(lang.String())
}

func resolveLanguages(names []string) ([]lingua.Language, error) {
	known := make(map[string]lingua.Language)
	for _, l := range lingua.AllLanguages() {
		known[strings.ToLower(l.String())] = l
	}

	seen := make(map[lingua.Language]bool)
	var langs []lingua.Language
	for _, name := range names {
		l, ok := known[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unsupported language %q", name)
		}
		if !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	return langs, nil
}
