package models

import "time"

// Report is the terminal result of one analysis run.
type Report struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Summary     Summary         `json:"summary" yaml:"summary"`
	Facets      []FacetReport   `json:"facets" yaml:"facets"`
	Phrases     []PhraseCount   `json:"phrases" yaml:"phrases"`
	Languages   []LanguageCount `json:"languages,omitempty" yaml:"languages,omitempty"`
	Transcript  *TranscriptDump `json:"transcript,omitempty" yaml:"transcript,omitempty"`
}

// Summary holds record and message counts for the whole run.
type Summary struct {
	Sources           []SourceSummary `json:"sources" yaml:"sources"`
	RecordsExamined   int             `json:"records_examined" yaml:"records_examined"`
	MessagesExtracted int             `json:"messages_extracted" yaml:"messages_extracted"`
	PhraseMessages    int             `json:"phrase_messages" yaml:"phrase_messages"`
}

// SourceSummary reports what the reader saw in one transcript.
type SourceSummary struct {
	ID                string         `json:"id" yaml:"id"`
	Path              string         `json:"path" yaml:"path"`
	RecordsExamined   int            `json:"records_examined" yaml:"records_examined"`
	MessagesExtracted int            `json:"messages_extracted" yaml:"messages_extracted"`
	Skipped           map[string]int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// FacetReport groups the category results of one facet, in taxonomy order.
type FacetReport struct {
	Name       string           `json:"name" yaml:"name"`
	Categories []CategoryReport `json:"categories" yaml:"categories"`
}

// CategoryReport carries the limited excerpt list of one category.
// TotalMatches counts every match, including excerpts cut by the display limit.
type CategoryReport struct {
	Name         string   `json:"name" yaml:"name"`
	TotalMatches int      `json:"total_matches" yaml:"total_matches"`
	Excerpts     []string `json:"excerpts" yaml:"excerpts"`
}

type PhraseCount struct {
	Phrase string `json:"phrase" yaml:"phrase"`
	Count  int    `json:"count" yaml:"count"`
}

type LanguageCount struct {
	Language string `json:"language" yaml:"language"`
	Count    int    `json:"count" yaml:"count"`
}

// TranscriptDump lists every extracted message of one source.
type TranscriptDump struct {
	SourceID string   `json:"source_id" yaml:"source_id"`
	Messages []string `json:"messages" yaml:"messages"`
}

// Facet returns the named facet report, or nil.
func (r *Report) Facet(name string) *FacetReport {
	for i := range r.Facets {
		if r.Facets[i].Name == name {
			return &r.Facets[i]
		}
	}
	return nil
}

// Category returns the named category report within the facet, or nil.
func (f *FacetReport) Category(name string) *CategoryReport {
	for i := range f.Categories {
		if f.Categories[i].Name == name {
			return &f.Categories[i]
		}
	}
	return nil
}
