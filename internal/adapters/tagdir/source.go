// Package tagdir builds a catalog by scanning a directory of tagged audio
// files instead of a flat text export.
package tagdir

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dhowden/tag"
	"github.com/rs/zerolog"

	"github.com/deckhandlabs/deckhand/internal/core/domain"
)

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
}

// energyPattern matches the "8A - Energy 6" comment convention Mixed In Key
// writes.
var energyPattern = regexp.MustCompile(`Energy\s+(\d+)`)

// Source walks one directory tree per Load call.
type Source struct {
	dir    string
	logger zerolog.Logger
}

// NewSource constructs a Source rooted at dir.
func NewSource(dir string, logger zerolog.Logger) *Source {
	return &Source{
		dir:    dir,
		logger: logger.With().Str("component", "tagdir").Logger(),
	}
}

// Load implements ports.Source. Files with unreadable tags count as
// skipped; the shared pipeline then rejects anything without a usable BPM.
func (s *Source) Load(ctx context.Context) (domain.Catalog, domain.LoadStats, error) {
	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return domain.Catalog{}, domain.LoadStats{}, fmt.Errorf("stat %s: %w", s.dir, domain.ErrCatalogMissing)
	}

	builder := domain.NewBuilder()
	walkErr := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		song, ok := s.readTags(path)
		if !ok {
			builder.Skip()
			return nil
		}
		builder.Add(song)
		return nil
	})
	if walkErr != nil {
		return domain.Catalog{}, domain.LoadStats{}, fmt.Errorf("walk %s: %w", s.dir, walkErr)
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

func (s *Source) readTags(path string) (domain.Song, bool) {
	file, err := os.Open(path)
	if err != nil {
		s.logger.Debug().Str("file", path).Err(err).Msg("unreadable file")
		return domain.Song{}, false
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		s.logger.Debug().Str("file", path).Err(err).Msg("unreadable tags")
		return domain.Song{}, false
	}

	return domain.NewSong(
		meta.Title(),
		meta.Artist(),
		meta.Genre(),
		rawBPM(meta.Raw()),
		rawEnergy(meta.Comment()),
	), true
}

// rawBPM digs the tempo out of the format-specific raw tag map. Tag names
// vary across formats, so the common spellings are tried in order.
func rawBPM(raw map[string]interface{}) string {
	for _, key := range []string{"TBPM", "BPM", "bpm", "tempo"} {
		if v, ok := raw[key]; ok {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// rawEnergy extracts the energy level from a comment string like
// "8A - Energy 6". An empty result falls back to the domain default.
func rawEnergy(comment string) string {
	if m := energyPattern.FindStringSubmatch(comment); len(m) > 1 {
		return m[1]
	}
	return ""
}
