package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deckhandlabs/deckhand/internal/adapters/cli"
	"github.com/deckhandlabs/deckhand/internal/adapters/csvfile"
	"github.com/deckhandlabs/deckhand/internal/adapters/sqlite"
	"github.com/deckhandlabs/deckhand/internal/adapters/tagdir"
	"github.com/deckhandlabs/deckhand/internal/core/domain"
	"github.com/deckhandlabs/deckhand/internal/core/ports"
	"github.com/deckhandlabs/deckhand/internal/core/services"
)

const strictLimit = 3

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		catalogPath string
		sourceName  string
		strict      bool
		limit       int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:           "deckhand",
		Short:         "Tempo-aware next-track recommendations from a flat song catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, sessionConfig{
				catalogPath: catalogPath,
				sourceName:  sourceName,
				strict:      strict,
				limit:       limit,
				verbose:     verbose,
			})
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", defaultCatalogPath(), "path to the song catalog (file, database, or directory)")
	cmd.Flags().StringVar(&sourceName, "source", "csv", "catalog backend: csv, sqlite, or tags")
	cmd.Flags().BoolVar(&strict, "strict", false, "require exactly five comma-separated columns with numeric bpm/energy")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of recommendations to show (default 5, 3 with --strict)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func defaultCatalogPath() string {
	if path := os.Getenv("DECKHAND_CATALOG"); path != "" {
		return path
	}
	return "songs.csv"
}

type sessionConfig struct {
	catalogPath string
	sourceName  string
	strict      bool
	limit       int
	verbose     bool
}

func runSession(cmd *cobra.Command, cfg sessionConfig) error {
	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()

	limit := cfg.limit
	if limit <= 0 {
		limit = services.DefaultLimit
		if cfg.strict {
			limit = strictLimit
		}
	}

	ui := cli.NewUI(cmd.OutOrStdout())
	ui.Banner()

	var source ports.Source
	switch cfg.sourceName {
	case "csv":
		mode := csvfile.ModeLenient
		if cfg.strict {
			mode = csvfile.ModeStrict
		}
		source = csvfile.NewSource(cfg.catalogPath, mode, logger)
	case "sqlite":
		db, err := sqlite.NewSource(cfg.catalogPath, logger)
		if err != nil {
			ui.Fatal(loadFailureMessage(cfg.catalogPath, err))
			return err
		}
		defer db.Close()
		source = db
	case "tags":
		source = tagdir.NewSource(cfg.catalogPath, logger)
	default:
		err := fmt.Errorf("unknown source %q (expected csv, sqlite, or tags)", cfg.sourceName)
		ui.Fatal(err)
		return err
	}

	catalog, stats, err := source.Load(cmd.Context())
	if err != nil {
		ui.Fatal(loadFailureMessage(cfg.catalogPath, err))
		return err
	}
	ui.LoadSummary(stats)

	recommender := services.NewRecommender(limit)

	genre, err := ui.ChooseGenre(recommender.ListGenres(catalog))
	if err != nil {
		return err
	}
	pool := catalog.Songs
	if genre != "" {
		// Safety fallback: an empty filtered pool reverts to the full catalog.
		if filtered := catalog.FilterGenre(genre); len(filtered) > 0 {
			pool = filtered
		}
	}

	current, err := ui.ChooseSong(pool)
	if err != nil {
		return err
	}
	ui.NowPlaying(current)

	goal, err := ui.ChooseGoal()
	if err != nil {
		return err
	}

	ui.Results(recommender.Recommend(current, goal, pool))
	return nil
}

// loadFailureMessage turns the two fatal load conditions into messages a
// user can act on; anything else passes through unchanged.
func loadFailureMessage(path string, err error) error {
	switch {
	case errors.Is(err, domain.ErrCatalogMissing):
		return fmt.Errorf("catalog not found at %s", path)
	case errors.Is(err, domain.ErrCatalogEmpty):
		return fmt.Errorf("no valid songs loaded from %s, check the catalog format", path)
	default:
		return err
	}
}
