package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/chat-profiler/models"
	"github.com/dtnitsch/chat-profiler/pkg/taxonomy"
)

func newTestApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:           "chat-profiler",
		Writer:         out,
		ErrWriter:      out,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "categories",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "config"}},
				Action: CategoriesAction,
			},
			{
				Name: "init-config",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Value: "chat-profiler.yaml"},
					&cli.BoolFlag{Name: "force"},
				},
				Action: InitConfigAction,
			},
		},
	}
}

func TestStarterConfig_LoadsBackToDefaults(t *testing.T) {
	data, err := StarterConfig()
	if err != nil {
		t.Fatalf("StarterConfig() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	cfg, err := models.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if diff := cmp.Diff(taxonomy.DefaultDefinitions(), cfg.Facets); diff != "" {
		t.Errorf("facets changed through YAML (-want +got):\n%s", diff)
	}
	if _, err := taxonomy.Compile(cfg.Facets); err != nil {
		t.Errorf("starter facets do not compile: %v", err)
	}
	if cfg.PhraseLimit != models.DefaultPhraseLimit {
		t.Errorf("PhraseLimit = %d, want %d", cfg.PhraseLimit, models.DefaultPhraseLimit)
	}
}

func TestInitConfigAction_RefusesOverwrite(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	if err := newTestApp(&out).Run([]string{"chat-profiler", "init-config", "--output", path}); err != nil {
		t.Fatalf("first init-config error = %v", err)
	}
	if !strings.Contains(out.String(), "Config written to") {
		t.Errorf("output = %q", out.String())
	}

	err := newTestApp(&out).Run([]string{"chat-profiler", "init-config", "--output", path})
	if err == nil {
		t.Fatal("second init-config error = nil, want refusal")
	}
	if code := err.(cli.ExitCoder).ExitCode(); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	if err := newTestApp(&out).Run([]string{"chat-profiler", "init-config", "--output", path, "--force"}); err != nil {
		t.Errorf("init-config --force error = %v", err)
	}
}

func TestCategoriesAction_Default(t *testing.T) {
	var out bytes.Buffer
	if err := newTestApp(&out).Run([]string{"chat-profiler", "categories"}); err != nil {
		t.Fatalf("categories error = %v", err)
	}
	for _, want := range []string{"tone_indicators", "enthusiastic_moments", "compound", `markers: "!"`, "tool_mentions"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("categories output missing %q", want)
		}
	}
}

func TestCategoriesAction_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	bad := "facets:\n  - name: f\n    categories:\n      - name: x\n        kind: regex\n        display_limit: 1\n        excerpt_length: 1\n"
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var out bytes.Buffer
	err := newTestApp(&out).Run([]string{"chat-profiler", "categories", "--config", path})
	if err == nil {
		t.Fatal("categories error = nil, want invalid taxonomy")
	}
	if !strings.Contains(err.Error(), "unknown rule kind") {
		t.Errorf("error = %v, want unknown rule kind", err)
	}
}
