// Package pipeline runs one analysis: read every source, classify, aggregate
// and assemble the report.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dtnitsch/chat-profiler/models"
	"github.com/dtnitsch/chat-profiler/pkg/analytics"
	"github.com/dtnitsch/chat-profiler/pkg/buckets"
	"github.com/dtnitsch/chat-profiler/pkg/classifier"
	"github.com/dtnitsch/chat-profiler/pkg/mapreduce"
	"github.com/dtnitsch/chat-profiler/pkg/report"
	"github.com/dtnitsch/chat-profiler/pkg/taxonomy"
	"github.com/dtnitsch/chat-profiler/pkg/transcript"
)

// ErrConfig marks failures caused by the configuration rather than by a source.
var ErrConfig = errors.New("invalid config")

// Pipeline holds the injectable collaborators of a run.
type Pipeline struct {
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

// New returns a Pipeline using the wall clock and random run ids.
func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		Logger: logger,
		Now:    time.Now,
		NewID:  func() string { return uuid.NewString() },
	}
}

// Run executes the analysis described by cfg.
//
// Sources are read in declaration order before anything is classified. If
// any source cannot be opened or read the whole run fails and no report is
// produced, even when earlier sources were read successfully.
func (p *Pipeline) Run(cfg *models.AnalysisConfig) (*models.Report, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	tax, err := BuildTaxonomy(cfg)
	if err != nil {
		return nil, err
	}

	var detector *analytics.LanguageDetector
	if cfg.DetectLanguage {
		detector, err = analytics.NewLanguageDetector(cfg.Languages)
		if err != nil {
			return nil, fmt.Errorf("%w: language detection: %w", ErrConfig, err)
		}
	}

	perSource, stats, err := p.readSources(cfg)
	if err != nil {
		return nil, err
	}

	// Map phrases per source, then reduce in declaration order.
	var messages []models.Message
	tallies := make([]*mapreduce.Tally, 0, len(perSource))
	for _, msgs := range perSource {
		messages = append(messages, msgs...)
		tallies = append(tallies, mapreduce.Map(msgs, cfg.PhraseWindow))
	}

	cls := classifier.New(tax)
	agg := buckets.New(tax)
	for _, msg := range messages {
		agg.Add(msg, cls.Classify(msg))
	}

	var languages *mapreduce.Tally
	if detector != nil {
		languages = mapreduce.NewTally()
		for _, msg := range messages {
			languages.Add(detector.Detect(msg.Content))
		}
	}

	in := report.Input{
		RunID:       p.NewID(),
		GeneratedAt: p.Now().UTC(),
		Taxonomy:    tax,
		Buckets:     agg,
		Phrases:     mapreduce.Reduce(tallies),
		PhraseLimit: cfg.PhraseLimit,
		Languages:   languages,
		Sources:     stats,
		Transcript:  dumpSource(messages, cfg.DumpSource, cfg.DumpLength),
	}

	r := report.Assemble(in)
	p.Logger.Info("analysis complete",
		"run_id", r.RunID,
		"sources", len(stats),
		"records_examined", r.Summary.RecordsExamined,
		"messages_extracted", r.Summary.MessagesExtracted,
		"distinct_phrases", in.Phrases.Len())
	return r, nil
}

// BuildTaxonomy compiles the configured facets, or the defaults when none are configured.
func BuildTaxonomy(cfg *models.AnalysisConfig) (*taxonomy.Taxonomy, error) {
	if len(cfg.Facets) == 0 {
		return taxonomy.Default(), nil
	}
	tax, err := taxonomy.Compile(cfg.Facets)
	if err != nil {
		return nil, fmt.Errorf("%w: taxonomy: %w", ErrConfig, err)
	}
	return tax, nil
}

func (p *Pipeline) readSources(cfg *models.AnalysisConfig) ([][]models.Message, []transcript.SourceStats, error) {
	var (
		perSource [][]models.Message
		stats     []transcript.SourceStats
	)

	for _, src := range cfg.Sources {
		r := transcript.NewReader(cfg.Role, cfg.RecordLimit(src), p.Logger)
		msgs, st, err := r.ReadFile(src.ID, src.Path)
		if err != nil {
			p.Logger.Error("failed to read source", "source", src.ID, "path", src.Path, "error", err)
			return nil, nil, fmt.Errorf("source %q: %w", src.ID, err)
		}
		perSource = append(perSource, msgs)
		stats = append(stats, st)
	}

	return perSource, stats, nil
}

func dumpSource(messages []models.Message, sourceID string, length int) *models.TranscriptDump {
	if sourceID == "" {
		return nil
	}
	dump := &models.TranscriptDump{SourceID: sourceID, Messages: []string{}}
	for _, m := range messages {
		if m.SourceID == sourceID {
			dump.Messages = append(dump.Messages, buckets.Truncate(m.Content, length))
		}
	}
	return dump
}
