package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dtnitsch/chat-profiler/models"
)

func writeSource(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func user(content string) string {
	return fmt.Sprintf(`{"type":"user","message":{"role":"user","content":%q}}`, content)
}

func assistant(content string) string {
	return fmt.Sprintf(`{"type":"assistant","message":{"role":"assistant","content":%q}}`, content)
}

func fixedPipeline() *Pipeline {
	p := New(nil)
	p.Now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	p.NewID = func() string { return "fixed-run" }
	return p
}

func matched(r *models.Report, facet, category string) []string {
	f := r.Facet(facet)
	if f == nil {
		return nil
	}
	c := f.Category(category)
	if c == nil {
		return nil
	}
	return c.Excerpts
}

func TestRun_ScenarioMixedRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.jsonl",
		user("How do I deploy this?"),
		assistant("Use the deploy command."),
		`{"message": broken`,
	)

	r, err := fixedPipeline().Run(&models.AnalysisConfig{
		Sources: []models.SourceConfig{{ID: "a", Path: path}},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if r.Summary.MessagesExtracted != 1 {
		t.Fatalf("MessagesExtracted = %d, want 1", r.Summary.MessagesExtracted)
	}
	if r.Summary.RecordsExamined != 3 {
		t.Errorf("RecordsExamined = %d, want 3", r.Summary.RecordsExamined)
	}
	want := []string{"How do I deploy this?"}
	if diff := cmp.Diff(want, matched(r, "tone_indicators", "questioning")); diff != "" {
		t.Errorf("questioning mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, matched(r, "technical_approach", "tool_mentions")); diff != "" {
		t.Errorf("tool_mentions mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ScenarioEnthusiasm(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.jsonl", user("This is great, it works now!"))

	r, err := fixedPipeline().Run(&models.AnalysisConfig{
		Sources: []models.SourceConfig{{ID: "a", Path: path}},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := matched(r, "tone_indicators", "enthusiastic_moments"); len(got) != 1 {
		t.Errorf("enthusiastic_moments = %v, want one excerpt", got)
	}
	if got := matched(r, "tone_indicators", "frustrated_moments"); len(got) != 0 {
		t.Errorf("frustrated_moments = %v, want none", got)
	}
}

func TestRun_ScenarioMaxRecords(t *testing.T) {
	dir := t.TempDir()
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, user(fmt.Sprintf("valid message number %d", i)))
	}
	path := writeSource(t, dir, "a.jsonl", lines...)

	r, err := fixedPipeline().Run(&models.AnalysisConfig{
		Sources: []models.SourceConfig{{ID: "a", Path: path, MaxRecords: 2}},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if r.Summary.MessagesExtracted > 2 {
		t.Errorf("MessagesExtracted = %d, want at most 2", r.Summary.MessagesExtracted)
	}
	if r.Summary.RecordsExamined != 2 {
		t.Errorf("RecordsExamined = %d, want 2", r.Summary.RecordsExamined)
	}
}

func TestRun_ScenarioOpeningPhrases(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.jsonl",
		user("Can you please check the footer"),
		user("Can you please check the header"),
		user("Can you please look at it"),
		user("ok"),
	)

	r, err := fixedPipeline().Run(&models.AnalysisConfig{
		Sources: []models.SourceConfig{{ID: "a", Path: path}},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []models.PhraseCount{
		{Phrase: "Can you please check the", Count: 2},
		{Phrase: "Can you please look at", Count: 1},
	}
	if diff := cmp.Diff(want, r.Phrases); diff != "" {
		t.Errorf("Phrases mismatch (-want +got):\n%s", diff)
	}
	if r.Summary.PhraseMessages != 3 {
		t.Errorf("PhraseMessages = %d, want 3", r.Summary.PhraseMessages)
	}
}

func TestRun_MultipleSourcesConcatenateInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeSource(t, dir, "first.jsonl", user("How is the first session going"))
	second := writeSource(t, dir, "second.jsonl",
		assistant("hello"),
		user("How is the second session going"),
	)

	cfg := &models.AnalysisConfig{
		DumpSource: "second",
		Sources: []models.SourceConfig{
			{ID: "first", Path: first},
			{ID: "second", Path: second},
		},
	}
	r, err := fixedPipeline().Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"How is the first session going", "How is the second session going"}
	if diff := cmp.Diff(want, matched(r, "tone_indicators", "questioning")); diff != "" {
		t.Errorf("questioning mismatch (-want +got):\n%s", diff)
	}

	if len(r.Summary.Sources) != 2 || r.Summary.Sources[1].RecordsExamined != 2 {
		t.Errorf("per-source summary = %+v", r.Summary.Sources)
	}
	if r.Transcript == nil || len(r.Transcript.Messages) != 1 || r.Transcript.Messages[0] != want[1] {
		t.Errorf("Transcript = %+v, want only the second source", r.Transcript)
	}
}

func TestRun_MissingSourceAbortsRun(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.jsonl", user("How do I deploy this?"))

	r, err := fixedPipeline().Run(&models.AnalysisConfig{
		Sources: []models.SourceConfig{
			{ID: "good", Path: good},
			{ID: "missing", Path: filepath.Join(dir, "missing.jsonl")},
		},
	})
	if err == nil {
		t.Fatal("Run() error = nil, want error for missing source")
	}
	if r != nil {
		t.Errorf("Run() report = %+v, want nil on source failure", r)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run() error = %v, want wrapping os.ErrNotExist", err)
	}
	if errors.Is(err, ErrConfig) {
		t.Errorf("Run() error = %v, source failure must not be reported as config error", err)
	}
	if !strings.Contains(err.Error(), `"missing"`) {
		t.Errorf("Run() error = %v, want source id in message", err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.jsonl",
		user("How do I deploy this?"),
		user("This is great, it works now!"),
		user("fix the bug in the portfolio chatbot please"),
		`not json`,
	)
	cfg := func() *models.AnalysisConfig {
		return &models.AnalysisConfig{Sources: []models.SourceConfig{{ID: "a", Path: path}}}
	}

	first, err := fixedPipeline().Run(cfg())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := fixedPipeline().Run(cfg())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated runs differ (-first +second):\n%s", diff)
	}
}

func TestRun_CustomTaxonomy(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.jsonl", user("please add dark mode"), user("thanks!"))

	r, err := fixedPipeline().Run(&models.AnalysisConfig{
		Sources: []models.SourceConfig{{ID: "a", Path: path}},
		Facets: []models.FacetDefinition{{
			Name: "manners",
			Categories: []models.CategoryDefinition{
				{Name: "polite", Kind: "keywords", Keywords: []string{"please", "thanks"}, DisplayLimit: 1, ExcerptLength: 6},
			},
		}},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(r.Facets) != 1 {
		t.Fatalf("len(Facets) = %d, want 1", len(r.Facets))
	}
	c := r.Facets[0].Categories[0]
	if c.TotalMatches != 2 {
		t.Errorf("TotalMatches = %d, want 2", c.TotalMatches)
	}
	if diff := cmp.Diff([]string{"please"}, c.Excerpts); diff != "" {
		t.Errorf("Excerpts mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *models.AnalysisConfig
	}{
		{name: "no sources", cfg: &models.AnalysisConfig{}},
		{
			name: "bad taxonomy",
			cfg: &models.AnalysisConfig{
				Sources: []models.SourceConfig{{ID: "a", Path: "a.jsonl"}},
				Facets:  []models.FacetDefinition{{Name: "f", Categories: []models.CategoryDefinition{{Name: "x", Kind: "bogus", DisplayLimit: 1, ExcerptLength: 1}}}},
			},
		},
		{
			name: "single language",
			cfg: &models.AnalysisConfig{
				Sources:        []models.SourceConfig{{ID: "a", Path: "a.jsonl"}},
				DetectLanguage: true,
				Languages:      []string{"english"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixedPipeline().Run(tt.cfg)
			if !errors.Is(err, ErrConfig) {
				t.Errorf("Run() error = %v, want ErrConfig", err)
			}
		})
	}
}
