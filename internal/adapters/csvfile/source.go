// Package csvfile loads a song catalog from loosely formatted delimited
// text. The lenient parser recovers records whose title contains the
// delimiter by reading the trailing genre/bpm/energy columns from the right;
// a delimiter embedded in the artist column instead is not recoverable by
// this scheme.
package csvfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deckhandlabs/deckhand/internal/core/domain"
)

// Mode selects the parsing contract. The two modes are separate contracts,
// not a blend: pick one and keep it for the whole load.
type Mode int

const (
	// ModeLenient tolerates delimiters embedded in the title, repeated
	// header lines, and out-of-range energy values (clamped).
	ModeLenient Mode = iota
	// ModeStrict requires exactly five fields with digit-only bpm and
	// energy; anything else is counted as skipped.
	ModeStrict
)

const (
	delimiter   = ","
	fieldCount  = 5
	trailingLen = 3 // genre, bpm, energy are structurally guaranteed on the right

	// headerSignature is what a header line collapses to after lowercasing
	// and space removal. Catalogs get concatenated by hand, so headers can
	// reappear anywhere in the stream, not just on line one.
	headerSignature = "title,artist,genre,bpm,energy"
)

// Source reads one catalog file per Load call.
type Source struct {
	path   string
	mode   Mode
	logger zerolog.Logger
}

// NewSource constructs a Source for the file at path.
func NewSource(path string, mode Mode, logger zerolog.Logger) *Source {
	return &Source{
		path:   path,
		mode:   mode,
		logger: logger.With().Str("component", "csvfile").Logger(),
	}
}

// Load implements ports.Source. Per-line problems are absorbed into the
// skipped counter; only an unreadable file or an empty result fails.
func (s *Source) Load(ctx context.Context) (domain.Catalog, domain.LoadStats, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return domain.Catalog{}, domain.LoadStats{}, fmt.Errorf("open %s: %w", s.path, domain.ErrCatalogMissing)
	}
	defer file.Close()

	builder := domain.NewBuilder()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return domain.Catalog{}, domain.LoadStats{}, err
		}
		s.parseLine(scanner.Text(), builder)
	}
	if err := scanner.Err(); err != nil {
		return domain.Catalog{}, domain.LoadStats{}, fmt.Errorf("read %s: %w", s.path, err)
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

func (s *Source) parseLine(raw string, b *domain.Builder) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	if strings.ReplaceAll(strings.ToLower(line), " ", "") == headerSignature {
		return
	}
	if s.mode == ModeStrict {
		parseStrict(line, b)
		return
	}
	parseLenient(line, b)
}

func parseLenient(line string, b *domain.Builder) {
	parts := strings.Split(line, delimiter)
	if len(parts) < fieldCount {
		b.Skip()
		return
	}

	// The trailing three fields are structurally guaranteed.
	energy := strings.TrimSpace(parts[len(parts)-1])
	bpm := strings.TrimSpace(parts[len(parts)-2])
	genre := parts[len(parts)-3]

	// Stray header fragments show up when files are stitched together.
	if strings.EqualFold(bpm, "bpm") || strings.EqualFold(energy, "energy") {
		return
	}

	// Rebuild the left side, which holds title plus artist. Splitting it on
	// its last delimiter keeps any embedded delimiters inside the title
	// (e.g. "My Neck, My Back") instead of leaking them into the artist.
	left := strings.Join(parts[:len(parts)-trailingLen], delimiter)
	cut := strings.LastIndex(left, delimiter)
	if cut < 0 {
		b.Skip()
		return
	}
	title, artist := left[:cut], left[cut+len(delimiter):]

	b.Add(domain.NewSong(title, artist, genre, bpm, energy))
}

func parseStrict(line string, b *domain.Builder) {
	parts := strings.Split(line, delimiter)
	if len(parts) != fieldCount {
		b.Skip()
		return
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if !allDigits(parts[3]) || !allDigits(parts[4]) {
		b.Skip()
		return
	}
	b.Add(domain.NewSong(parts[0], parts[1], parts[2], parts[3], parts[4]))
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
