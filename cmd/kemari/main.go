// Package main is the kemari CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	cliutil "github.com/rimbakita/kemari/internal/cli"
	"github.com/rimbakita/kemari/internal/config"
	"github.com/rimbakita/kemari/internal/corpus"
	"github.com/rimbakita/kemari/internal/engine"
	"github.com/rimbakita/kemari/internal/indexer"
	"github.com/rimbakita/kemari/internal/storage"
	"github.com/rimbakita/kemari/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kemari/config.yaml"

func main() {
	app := &cli.App{
		Name:    "kemari",
		Usage:   "Campground and glamping listing search",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path (default: $KEMARI_CONFIG, ./config.yaml, or " + defaultConfigPath + ")",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			// A .env file may set KEMARI_CONFIG; a missing file is fine.
			_ = godotenv.Load()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Build the search bundle from a listing dataset",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"d"},
						Usage:   "dataset file (.xlsx, .csv, or .json)",
					},
					&cli.StringFlag{
						Name:    "bundle",
						Aliases: []string{"b"},
						Usage:   "bundle file to write",
					},
					&cli.StringFlag{
						Name:  "sheet",
						Usage: "worksheet name for .xlsx datasets (default: first sheet)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "analysis workers (default: number of CPUs)",
					},
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "stay running and rebuild when the dataset changes",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search listings in the bundle",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "bundle",
						Aliases: []string{"b"},
						Usage:   "bundle file to search",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "maximum results (default from config)",
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "drop results scoring below this similarity",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the response as JSON",
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Show bundle metadata and corpus statistics",
				Action: inspectCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "bundle",
						Aliases: []string{"b"},
						Usage:   "bundle file to inspect",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "how many top terms to list",
						Value: 20,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// resolveConfigPath picks the config file: an explicit --config wins, then
// $KEMARI_CONFIG, then config.yaml in the working directory (for
// development), then the system default.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("KEMARI_CONFIG"); env != "" {
		return env
	}
	if cwd, err := os.Getwd(); err == nil {
		fallback := filepath.Join(cwd, "config.yaml")
		if _, err := os.Stat(fallback); err == nil {
			return fallback
		}
	}
	return defaultConfigPath
}

// loadConfig loads the resolved config file. When no path was given
// explicitly and no file exists anywhere, the built-in defaults apply.
func loadConfig(explicit string) (*config.Config, error) {
	path := resolveConfigPath(explicit)
	cfg, err := config.Load(path)
	if err != nil {
		if explicit == "" && errors.Is(err, fs.ErrNotExist) {
			cfg = &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// buildSearchQuery joins all positional args with spaces so multi-word
// queries work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func indexCommand(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("dataset") {
		cfg.Index.DatasetPath = c.String("dataset")
	}
	if c.IsSet("bundle") {
		cfg.Bundle.Path = c.String("bundle")
	}
	if c.IsSet("sheet") {
		cfg.Index.Sheet = c.String("sheet")
	}
	if c.IsSet("workers") {
		cfg.Index.Workers = c.Int("workers")
	}
	if c.Bool("watch") {
		cfg.Index.Watch = true
	}
	if cfg.Index.DatasetPath == "" {
		return fmt.Errorf("no dataset: pass --dataset or set index.dataset_path in the config")
	}

	logger, err := utils.NewLogger(cfg.Debug || c.Bool("debug"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	idx := indexer.NewIndexer(cfg, indexer.WithLogger(logger))
	stats, err := idx.Build(context.Background())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Printf("Indexed %d listing(s) into %s in %s\n",
		stats.Listings, stats.BundlePath, stats.Took.Round(time.Millisecond))
	if stats.Skipped > 0 {
		fmt.Printf("Skipped %d unusable row(s)\n", stats.Skipped)
	}
	fmt.Printf("Vocabulary: %d term(s), %d region tag(s)\n", stats.Vocabulary, stats.Regions)

	if !cfg.Index.Watch {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	fmt.Printf("Watching %s for changes, Ctrl-C to stop\n", cfg.Index.DatasetPath)
	return idx.Watch(ctx)
}

func searchCommand(c *cli.Context) error {
	queryText := buildSearchQuery(c.Args().Slice())
	if queryText == "" {
		return fmt.Errorf("usage: kemari search QUERY")
	}

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("bundle") {
		cfg.Bundle.Path = c.String("bundle")
	}
	if c.IsSet("min-score") {
		cfg.Search.MinScore = c.Float64("min-score")
	}

	opts := []engine.Option{}
	if cfg.Debug || c.Bool("debug") {
		logger, err := utils.NewLogger(true)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()
		opts = append(opts, engine.WithLogger(logger))
	}

	e := engine.New(cfg, opts...)
	if err := e.Initialize(context.Background()); err != nil {
		return fmt.Errorf("failed to open bundle: %w", err)
	}

	response, err := e.SearchWithLimit(context.Background(), queryText, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	format := cliutil.OutputText
	if c.Bool("json") {
		format = cliutil.OutputJSON
	}
	return cliutil.WriteSearchResults(os.Stdout, response, format)
}

func inspectCommand(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("bundle") {
		cfg.Bundle.Path = c.String("bundle")
	}

	bundle, err := storage.LoadBundle(context.Background(), cfg.Bundle.Path)
	if err != nil {
		return fmt.Errorf("failed to load bundle: %w", err)
	}
	store, err := corpus.Build(bundle.Listings, bundle.Vectors, bundle.DocFreqs)
	if err != nil {
		return fmt.Errorf("failed to build corpus: %w", err)
	}

	info := bundle.Info
	stats := store.Stats()
	fmt.Printf("bundle:          %s\n", cfg.Bundle.Path)
	if size, err := storage.DiskUsageBytes(cfg.Bundle.Path); err == nil {
		fmt.Printf("size:            %d bytes\n", size)
	}
	fmt.Printf("format_version:  %d\n", info.FormatVersion)
	fmt.Printf("built_at:        %s\n", info.BuiltAt.Format(time.RFC3339))
	if info.DatasetPath != "" {
		fmt.Printf("dataset:         %s\n", info.DatasetPath)
	}
	fmt.Printf("listings:        %d\n", stats.Listings)
	fmt.Printf("vocabulary:      %d\n", stats.Vocabulary)
	fmt.Printf("regions:         %d\n", stats.Regions)
	fmt.Printf("facilities:      %d\n", stats.Facilities)

	if top := store.TopTerms(c.Int("top")); len(top) > 0 {
		fmt.Println()
		fmt.Println("# top terms by document frequency")
		for _, ts := range top {
			fmt.Printf("%-24s %d\n", ts.Term, ts.DocCount)
		}
	}
	if regions := store.Regions(); len(regions) > 0 {
		fmt.Println()
		fmt.Println("# listings per region")
		for _, r := range regions {
			fmt.Printf("%-24s %d\n", r, store.RegionSet(r).GetCardinality())
		}
	}
	if facilities := store.Facilities(); len(facilities) > 0 {
		fmt.Println()
		fmt.Println("# listings per facility")
		for _, f := range facilities {
			fmt.Printf("%-24s %d\n", f, store.FacilitySet(f).GetCardinality())
		}
	}
	return nil
}
