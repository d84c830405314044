// Package report merges buckets and tallies into a models.Report and renders it.
package report

import (
	"sort"
	"time"

	"github.com/dtnitsch/chat-profiler/models"
	"github.com/dtnitsch/chat-profiler/pkg/buckets"
	"github.com/dtnitsch/chat-profiler/pkg/mapreduce"
	"github.com/dtnitsch/chat-profiler/pkg/taxonomy"
	"github.com/dtnitsch/chat-profiler/pkg/transcript"
)

// Input is everything one run produced.
type Input struct {
	RunID       string
	GeneratedAt time.Time
	Taxonomy    *taxonomy.Taxonomy
	Buckets     *buckets.Aggregator
	Phrases     *mapreduce.Tally
	PhraseLimit int // 0 keeps every phrase
	Languages   *mapreduce.Tally
	Sources     []transcript.SourceStats
	Transcript  *models.TranscriptDump
}

// Assemble builds the report. Excerpts keep insertion order and are cut to
// each category's display limit; phrases are sorted by descending count.
func Assemble(in Input) *models.Report {
	r := &models.Report{
		RunID:       in.RunID,
		GeneratedAt: in.GeneratedAt,
		Summary:     summarize(in.Sources),
		Transcript:  in.Transcript,
	}

	for _, f := range in.Taxonomy.Facets {
		fr := models.FacetReport{Name: f.Name, Categories: make([]models.CategoryReport, 0, len(f.Categories))}
		for _, c := range f.Categories {
			fr.Categories = append(fr.Categories, models.CategoryReport{
				Name:         c.Name,
				TotalMatches: in.Buckets.Total(c.Name),
				Excerpts:     limit(in.Buckets.Bucket(c.Name), c.DisplayLimit),
			})
		}
		r.Facets = append(r.Facets, fr)
	}

	r.Phrases = []models.PhraseCount{}
	if in.Phrases != nil {
		r.Phrases = in.Phrases.Top(in.PhraseLimit)
		r.Summary.PhraseMessages = in.Phrases.Sum()
	}

	if in.Languages != nil {
		for _, pc := range in.Languages.Sorted() {
			r.Languages = append(r.Languages, models.LanguageCount{Language: pc.Phrase, Count: pc.Count})
		}
	}

	return r
}

func summarize(sources []transcript.SourceStats) models.Summary {
	s := models.Summary{Sources: make([]models.SourceSummary, 0, len(sources))}
	for _, st := range sources {
		ss := models.SourceSummary{
			ID:                st.SourceID,
			Path:              st.Path,
			RecordsExamined:   st.RecordsExamined,
			MessagesExtracted: st.MessagesExtracted,
		}
		if len(st.Skipped) > 0 {
			ss.Skipped = make(map[string]int, len(st.Skipped))
			for reason, n := range st.Skipped {
				ss.Skipped[string(reason)] = n
			}
		}
		s.Sources = append(s.Sources, ss)
		s.RecordsExamined += st.RecordsExamined
		s.MessagesExtracted += st.MessagesExtracted
	}
	return s
}

// limit copies at most n leading excerpts so the report never aliases a bucket.
func limit(excerpts []string, n int) []string {
	if len(excerpts) < n {
		n = len(excerpts)
	}
	out := make([]string, n)
	copy(out, excerpts[:n])
	return out
}

// skipReasons returns the skip reasons of a source summary in a stable order.
func skipReasons(s models.SourceSummary) []string {
	reasons := make([]string, 0, len(s.Skipped))
	for r := range s.Skipped {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	return reasons
}
