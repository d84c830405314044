package analyze

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/chat-profiler/internal/common"
	"github.com/dtnitsch/chat-profiler/models"
	"github.com/dtnitsch/chat-profiler/pkg/pipeline"
	"github.com/dtnitsch/chat-profiler/pkg/report"
	"github.com/dtnitsch/chat-profiler/pkg/storage"
)

// Flags returns the flags of the analyze command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config with sources and facets"},
		&cli.StringSliceFlag{Name: "source", Aliases: []string{"s"}, Usage: "transcript as id=path or id=path@max_records (repeatable)"},
		&cli.StringFlag{Name: "role", Usage: "participant role to extract (default: user)"},
		&cli.IntFlag{Name: "max-records", Usage: "records examined per source when not set per source (default: 10000)"},
		&cli.IntFlag{Name: "window", Usage: "words per opening phrase (default: 5)"},
		&cli.IntFlag{Name: "phrase-limit", Value: models.DefaultPhraseLimit, Usage: "phrases to report, 0 for all"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "yaml, json, table or text (default: table on a terminal, yaml otherwise)"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the report to this file instead of stdout"},
		&cli.StringFlag{Name: "dump-source", Usage: "include every message of this source in the report"},
		&cli.IntFlag{Name: "dump-length", Usage: "characters kept per dumped message (default: 1000)"},
		&cli.BoolFlag{Name: "detect-language", Usage: "report the language distribution of messages"},
		&cli.StringFlag{Name: "languages", Usage: "comma-separated candidate languages for detection"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Usage: "log skipped records"},
	}
}

// AnalyzeAction runs the pipeline and prints or saves the report.
func AnalyzeAction(c *cli.Context) error {
	logger := common.NewLogger(c.App.ErrWriter, c.Bool("quiet"), c.Bool("verbose"))

	cfg, err := buildConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	format := c.String("format")
	if format == "" {
		format = report.FormatYAML
		if c.String("output") == "" {
			format = defaultFormat(c)
		}
	}
	if !validFormat(format) {
		return cli.Exit(fmt.Sprintf("unknown format %q", format), 1)
	}

	r, err := pipeline.New(logger).Run(cfg)
	if err != nil {
		if errors.Is(err, pipeline.ErrConfig) {
			return cli.Exit(err.Error(), 1)
		}
		logger.Error("analysis failed", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	data, err := report.Marshal(r, format)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to render report: %v", err), 2)
	}

	if out := c.String("output"); out != "" {
		s := &storage.Storage{}
		if err := s.SaveFile(out, data); err != nil {
			return cli.Exit(err.Error(), 2)
		}
		logger.Info("report saved", "path", out, "format", format)
		return nil
	}

	fmt.Fprint(c.App.Writer, string(data))
	return nil
}

// buildConfig loads --config when given and applies flag overrides on top.
func buildConfig(c *cli.Context) (*models.AnalysisConfig, error) {
	cfg := &models.AnalysisConfig{}
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	for _, raw := range c.StringSlice("source") {
		src, err := models.ParseSourceFlag(raw)
		if err != nil {
			return nil, err
		}
		cfg.Sources = append(cfg.Sources, src)
	}

	if c.IsSet("role") {
		cfg.Role = c.String("role")
	}
	if c.IsSet("max-records") {
		cfg.MaxRecords = c.Int("max-records")
	}
	if c.IsSet("window") {
		cfg.PhraseWindow = c.Int("window")
	}
	if c.IsSet("phrase-limit") || c.String("config") == "" {
		cfg.PhraseLimit = c.Int("phrase-limit")
	}
	if c.IsSet("dump-source") {
		cfg.DumpSource = c.String("dump-source")
	}
	if c.IsSet("dump-length") {
		cfg.DumpLength = c.Int("dump-length")
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}
	if c.IsSet("languages") {
		cfg.Languages = common.SplitList(c.String("languages"))
		cfg.DetectLanguage = true
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultFormat asks the terminal check only when output really goes to a file descriptor.
func defaultFormat(c *cli.Context) string {
	if f, ok := c.App.Writer.(*os.File); ok {
		return report.DefaultFormat(f)
	}
	return report.FormatYAML
}

func validFormat(format string) bool {
	for _, f := range report.Formats() {
		if f == format {
			return true
		}
	}
	return false
}
