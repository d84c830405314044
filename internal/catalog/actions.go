package catalog

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/chat-profiler/models"
	"github.com/dtnitsch/chat-profiler/pkg/pipeline"
	"github.com/dtnitsch/chat-profiler/pkg/storage"
	"github.com/dtnitsch/chat-profiler/pkg/taxonomy"
)

const ruleColumnWidth = 60

// CategoriesAction prints the facet table that analyze would use.
func CategoriesAction(c *cli.Context) error {
	cfg := &models.AnalysisConfig{}
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		cfg = loaded
	}

	var defs []models.FacetDefinition
	if len(cfg.Facets) > 0 {
		if _, err := pipeline.BuildTaxonomy(cfg); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defs = cfg.Facets
	} else {
		defs = taxonomy.DefaultDefinitions()
	}

	fmt.Fprintln(c.App.Writer, renderDefinitions(defs))
	return nil
}

func renderDefinitions(defs []models.FacetDefinition) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Facet", "Category", "Kind", "Rule", "Limit", "Excerpt"})

	for _, f := range defs {
		for _, cd := range f.Categories {
			tw.AppendRow(table.Row{f.Name, cd.Name, cd.Kind, describeRule(cd), cd.DisplayLimit, cd.ExcerptLength})
		}
		tw.AppendSeparator()
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true, VAlign: text.VAlignTop},
		{Number: 4, WidthMax: ruleColumnWidth, WidthMaxEnforcer: text.WrapSoft},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return tw.Render()
}

func describeRule(cd models.CategoryDefinition) string {
	var parts []string
	if len(cd.Markers) > 0 {
		parts = append(parts, "markers: "+quoteAll(cd.Markers))
	}
	if len(cd.Prefixes) > 0 {
		parts = append(parts, "prefixes: "+quoteAll(cd.Prefixes))
	}
	if len(cd.Keywords) > 0 {
		parts = append(parts, "keywords: "+strings.Join(cd.Keywords, ", "))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, " ")
}

// InitConfigAction writes a starter config containing the default taxonomy.
func InitConfigAction(c *cli.Context) error {
	out := c.String("output")
	s := &storage.Storage{}
	if s.HasFile(out) && !c.Bool("force") {
		return cli.Exit(fmt.Sprintf("%s already exists, use --force to overwrite", out), 1)
	}

	data, err := StarterConfig()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if err := s.SaveFile(out, data); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	fmt.Fprintf(c.App.Writer, "Config written to %s\n", out)
	return nil
}

// StarterConfig renders the default config as YAML.
func StarterConfig() ([]byte, error) {
	cfg := models.AnalysisConfig{
		Role:         models.DefaultRole,
		MaxRecords:   models.DefaultMaxRecords,
		PhraseWindow: models.DefaultPhraseWindow,
		PhraseLimit:  models.DefaultPhraseLimit,
		DumpLength:   models.DefaultDumpLength,
		Sources: []models.SourceConfig{
			{ID: "current", Path: "./session.jsonl", MaxRecords: models.DefaultMaxRecords},
		},
		Facets: taxonomy.DefaultDefinitions(),
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
