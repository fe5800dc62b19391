// Package sqlite provides a read-only SQLite-backed catalog source.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
	"github.com/rs/zerolog"

	"github.com/deckhandlabs/deckhand/internal/core/domain"
)

// schema is the expected shape of a catalog database. The source never
// creates or writes it; tests and seeding tools do.
const schema = `
CREATE TABLE IF NOT EXISTS songs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	artist TEXT NOT NULL,
	genre TEXT NOT NULL DEFAULT '',
	bpm TEXT NOT NULL DEFAULT '',
	energy TEXT NOT NULL DEFAULT ''
);`

// Source implements the catalog source port for SQLite.
type Source struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSource opens the database and verifies the connection. A missing file
// is reported as domain.ErrCatalogMissing up front rather than letting the
// driver create an empty database on first query.
func NewSource(storagePath string, logger zerolog.Logger) (*Source, error) {
	if _, err := os.Stat(storagePath); err != nil {
		return nil, fmt.Errorf("stat %s: %w", storagePath, domain.ErrCatalogMissing)
	}

	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db %s: %w", storagePath, domain.ErrCatalogMissing)
	}

	return &Source{
		db:     db,
		logger: logger.With().Str("component", "sqlite").Logger(),
	}, nil
}

// Close ensures the DB connection is closed gracefully.
func (s *Source) Close() error {
	return s.db.Close()
}

// Load implements ports.Source. Rows run through the same validation
// pipeline as the delimited-file loader: bad BPM rows are counted as
// skipped, duplicates are silently dropped, insertion order is preserved.
func (s *Source) Load(ctx context.Context) (domain.Catalog, domain.LoadStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, artist, genre, bpm, energy
		FROM songs
		ORDER BY id ASC
	`)
	if err != nil {
		return domain.Catalog{}, domain.LoadStats{}, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	builder := domain.NewBuilder()
	for rows.Next() {
		var title, artist, genre string
		var bpm, energy sql.NullString
		if err := rows.Scan(&title, &artist, &genre, &bpm, &energy); err != nil {
			return domain.Catalog{}, domain.LoadStats{}, fmt.Errorf("scan song row: %w", err)
		}
		builder.Add(domain.NewSong(title, artist, genre, bpm.String, energy.String))
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, domain.LoadStats{}, fmt.Errorf("iterate song rows: %w", err)
	}

	catalog, stats, err := builder.Result()
	if err != nil {
		return domain.Catalog{}, stats, err
	}
	s.logger.Debug().
		Int("loaded", stats.Loaded).
		Int("skipped", stats.Skipped).
		Msg("catalog loaded")
	return catalog, stats, nil
}
