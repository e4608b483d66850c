// Command tokenize drives the tokenization pipeline end to end: it loads
// the configuration file, reads the project list, refuses to run against
// stale output directories, and fans work out across the worker pool in
// either whole-file or block-extraction mode.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/sourcerercc/tokenpipe/internal/archivewalker"
	"github.com/sourcerercc/tokenpipe/internal/bootstrap"
	"github.com/sourcerercc/tokenpipe/internal/config"
	"github.com/sourcerercc/tokenpipe/internal/projectlist"
	"github.com/sourcerercc/tokenpipe/internal/version"
	"github.com/sourcerercc/tokenpipe/internal/worker"
)

func main() {
	app := &cli.App{
		Name:                   "tokenize",
		Usage:                  "Tokenize a corpus of project archives for clone detection",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the tokenize.toml configuration file",
				Value:    "tokenize.toml",
				Required: false,
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Tokenization granularity: \"file\" or \"block\"",
				Value: "file",
			},
		},
		Action: runTokenize,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tokenize: %v\n", err)
		os.Exit(1)
	}
}

func runTokenize(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mode, err := parseMode(c.String("mode"))
	if err != nil {
		return err
	}

	projects, err := projectlist.Load(cfg.Main.FileProjectsList)
	if err != nil {
		return fmt.Errorf("loading project list %s: %w", cfg.Main.FileProjectsList, err)
	}

	layout := bootstrap.Layout{
		StatsDir:       cfg.Folders.StatsFileFolder,
		BookkeepingDir: cfg.Folders.BookkeepingProjFolder,
		TokensDir:      cfg.Folders.TokensFileFolder,
	}
	if err := bootstrap.Prepare(layout); err != nil {
		return fmt.Errorf("preparing output directories: %w", err)
	}

	poolCfg := worker.Config{
		NProcesses:     cfg.Main.NProcesses,
		ProjectsBatch:  cfg.Main.ProjectsBatch,
		Mode:           mode,
		Profile:        cfg.Profile,
		TokensDir:      layout.TokensDir,
		StatsDir:       layout.StatsDir,
		BookkeepingDir: layout.BookkeepingDir,
		InitFileID:     cfg.Config.InitFileID,
		ProjFlag:       cfg.Config.InitProjID,
	}

	fmt.Printf("tokenize: %d projects, %d workers, mode=%s\n", len(projects), poolCfg.NProcesses, c.String("mode"))
	if err := worker.Run(projects, poolCfg); err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}
	return nil
}

func parseMode(s string) (archivewalker.Mode, error) {
	switch s {
	case "file":
		return archivewalker.FileMode, nil
	case "block":
		return archivewalker.BlockMode, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want \"file\" or \"block\")", s)
	}
}
