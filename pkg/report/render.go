package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/chat-profiler/models"
)

// Output formats.
const (
	FormatYAML  = "yaml"
	FormatJSON  = "json"
	FormatTable = "table"
	FormatText  = "text"
)

const excerptColumnWidth = 100

// Formats returns every supported output format.
func Formats() []string {
	return []string{FormatYAML, FormatJSON, FormatTable, FormatText}
}

// DefaultFormat picks table output for terminals and YAML for pipes and files.
func DefaultFormat(f *os.File) string {
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatYAML
}

// Marshal renders the report in the given format.
func Marshal(r *models.Report, format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(r)
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	case FormatTable:
		return []byte(renderTables(r)), nil
	case FormatText:
		return []byte(renderText(r)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(Formats(), ", "))
	}
}

// Write renders the report to w.
func Write(w io.Writer, r *models.Report, format string) error {
	data, err := Marshal(r, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func newTable(headers ...string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	return tw
}

func renderTables(r *models.Report) string {
	var b strings.Builder

	sources := newTable("Source", "Path", "Records", "Messages", "Skipped")
	for _, s := range r.Summary.Sources {
		sources.AppendRow(table.Row{s.ID, s.Path, s.RecordsExamined, s.MessagesExtracted, formatSkipped(s)})
	}
	sources.AppendFooter(table.Row{"total", "", r.Summary.RecordsExamined, r.Summary.MessagesExtracted, ""})
	sources.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	b.WriteString(sources.Render())
	b.WriteString("\n")

	for _, f := range r.Facets {
		tw := newTable("Category", "#", "Excerpt")
		tw.SetTitle("%s", strings.ToUpper(f.Name))
		for _, c := range f.Categories {
			label := fmt.Sprintf("%s (%d)", c.Name, c.TotalMatches)
			if len(c.Excerpts) == 0 {
				tw.AppendRow(table.Row{label, "", ""})
				continue
			}
			for i, ex := range c.Excerpts {
				tw.AppendRow(table.Row{label, i + 1, singleLine(ex)})
			}
			tw.AppendSeparator()
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, AutoMerge: true, VAlign: text.VAlignTop},
			{Number: 2, Align: text.AlignRight},
			{Number: 3, WidthMax: excerptColumnWidth, WidthMaxEnforcer: text.WrapSoft},
		})
		b.WriteString("\n")
		b.WriteString(tw.Render())
		b.WriteString("\n")
	}

	phrases := newTable("Count", "Opening phrase")
	phrases.SetTitle("COMMON OPENING PHRASES")
	for _, p := range r.Phrases {
		phrases.AppendRow(table.Row{p.Count, p.Phrase})
	}
	phrases.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	b.WriteString("\n")
	b.WriteString(phrases.Render())
	b.WriteString("\n")

	if len(r.Languages) > 0 {
		langs := newTable("Language", "Messages")
		for _, l := range r.Languages {
			langs.AppendRow(table.Row{l.Language, l.Count})
		}
		b.WriteString("\n")
		b.WriteString(langs.Render())
		b.WriteString("\n")
	}

	if r.Transcript != nil {
		dump := newTable("#", "Message")
		dump.SetTitle("ALL MESSAGES FROM %s", strings.ToUpper(r.Transcript.SourceID))
		for i, m := range r.Transcript.Messages {
			dump.AppendRow(table.Row{i + 1, m})
		}
		dump.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: excerptColumnWidth, WidthMaxEnforcer: text.WrapSoft},
		})
		b.WriteString("\n")
		b.WriteString(dump.Render())
		b.WriteString("\n")
	}

	return b.String()
}

// renderText mirrors the plain console layout: numbered lists under headings.
func renderText(r *models.Report) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	fmt.Fprintf(&b, "Total messages analyzed: %d\n", r.Summary.MessagesExtracted)
	for _, s := range r.Summary.Sources {
		fmt.Fprintf(&b, "  - %s: %d (of %d records)\n", s.ID, s.MessagesExtracted, s.RecordsExamined)
	}

	if r.Transcript != nil {
		fmt.Fprintf(&b, "\n%s\nALL MESSAGES FROM %s\n%s\n", rule, strings.ToUpper(r.Transcript.SourceID), rule)
		for i, m := range r.Transcript.Messages {
			fmt.Fprintf(&b, "\n--- Message %d ---\n%s\n", i+1, m)
		}
	}

	for _, f := range r.Facets {
		fmt.Fprintf(&b, "\n### %s\n", strings.ToUpper(strings.ReplaceAll(f.Name, "_", " ")))
		for _, c := range f.Categories {
			fmt.Fprintf(&b, "\n** %s (%d matches)\n", c.Name, c.TotalMatches)
			for i, ex := range c.Excerpts {
				fmt.Fprintf(&b, "%d. %s\n", i+1, ex)
			}
		}
	}

	b.WriteString("\n### COMMON OPENING PHRASES\n")
	for _, p := range r.Phrases {
		fmt.Fprintf(&b, "%dx: %s\n", p.Count, p.Phrase)
	}

	if len(r.Languages) > 0 {
		b.WriteString("\n### LANGUAGES\n")
		for _, l := range r.Languages {
			fmt.Fprintf(&b, "%s: %d\n", l.Language, l.Count)
		}
	}

	return b.String()
}

func formatSkipped(s models.SourceSummary) string {
	reasons := skipReasons(s)
	parts := make([]string, 0, len(reasons))
	for _, reason := range reasons {
		parts = append(parts, reason+"="+strconv.Itoa(s.Skipped[reason]))
	}
	return strings.Join(parts, " ")
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
