package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/chat-profiler/internal/analyze"
	"github.com/dtnitsch/chat-profiler/internal/catalog"
	"github.com/dtnitsch/chat-profiler/pkg/help"
)

func main() {
	app := &cli.App{
		Name:  "chat-profiler",
		Usage: "Classify a participant's messages in JSONL conversation transcripts",
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Read transcripts, classify messages and print the report",
				Flags:  analyze.Flags(),
				Action: analyze.AnalyzeAction,
			},
			{
				Name:  "categories",
				Usage: "List the facets and categories used for classification",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config with custom facets"},
				},
				Action: catalog.CategoriesAction,
			},
			{
				Name:  "init-config",
				Usage: "Write a starter YAML config with the default taxonomy",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "chat-profiler.yaml", Usage: "config file to create"},
					&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
				},
				Action: catalog.InitConfigAction,
			},
			{
				Name:  "quickstart",
				Usage: "Print a quick start guide as YAML",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
