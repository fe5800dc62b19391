package domain

import (
	"sort"
	"strings"
)

// Catalog is the ordered collection of valid songs produced by one load.
// Order is first-seen source order; downstream ranking relies on it for
// stable tie-breaking.
type Catalog struct {
	Songs []Song
}

// LoadStats summarizes one load for the session status line.
type LoadStats struct {
	Loaded  int
	Skipped int
}

// Genres returns the distinct genre values sorted alphabetically.
// Duplicates are detected case-insensitively; the first-seen spelling wins.
func (c Catalog) Genres() []string {
	seen := make(map[string]struct{}, len(c.Songs))
	genres := make([]string, 0, len(c.Songs))
	for _, s := range c.Songs {
		if s.Genre == "" {
			continue
		}
		lower := strings.ToLower(s.Genre)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		genres = append(genres, s.Genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		return strings.ToLower(genres[i]) < strings.ToLower(genres[j])
	})
	return genres
}

// FilterGenre returns the songs whose genre matches g case-insensitively,
// preserving catalog order.
func (c Catalog) FilterGenre(g string) []Song {
	var out []Song
	for _, s := range c.Songs {
		if strings.EqualFold(s.Genre, g) {
			out = append(out, s)
		}
	}
	return out
}

// Builder accumulates songs for one load, applying the shared validation
// pipeline: records with an empty title/artist or a non-positive BPM are
// counted as skipped, identity-key duplicates are silently dropped, and
// everything else is appended in arrival order.
type Builder struct {
	seen    map[string]struct{}
	catalog Catalog
	stats   LoadStats
}

func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// Add runs one candidate record through the pipeline.
func (b *Builder) Add(s Song) {
	if s.Title == "" || s.Artist == "" || s.BPM <= 0 {
		b.stats.Skipped++
		return
	}
	key := s.Key()
	if _, dup := b.seen[key]; dup {
		// A duplicate is a successful parse, not an error.
		return
	}
	b.seen[key] = struct{}{}
	b.catalog.Songs = append(b.catalog.Songs, s)
	b.stats.Loaded++
}

// Skip records a line the source itself rejected as malformed.
func (b *Builder) Skip() {
	b.stats.Skipped++
}

// Result returns the finished catalog, failing with ErrCatalogEmpty when
// nothing valid survived.
func (b *Builder) Result() (Catalog, LoadStats, error) {
	if len(b.catalog.Songs) == 0 {
		return Catalog{}, b.stats, ErrCatalogEmpty
	}
	return b.catalog, b.stats, nil
}
