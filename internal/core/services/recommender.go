// Package services contains the pure recommendation core.
package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deckhandlabs/deckhand/internal/core/domain"
)

// DefaultLimit is the ranked-list cutoff used when the caller does not
// override it.
const DefaultLimit = 5

const (
	bpmPenaltyPerBeat = 2
	goalMatchBonus    = 20
	goalMissPenalty   = 5
	sameEnergyBonus   = 10
	genreMatchBonus   = 10
)

// Recommender scores candidate songs against the currently playing one. It
// holds no state beyond its configuration, performs no I/O, and is safe to
// share: identical inputs always produce identical output.
type Recommender struct {
	limit int
}

// NewRecommender constructs a Recommender returning at most limit results.
func NewRecommender(limit int) *Recommender {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Recommender{limit: limit}
}

// Recommend scores every song in pool other than current and returns the
// top results by score descending. The sort is stable, so equal scores keep
// their pool order. An empty eligible pool yields an empty slice, which is a
// valid, non-error outcome.
func (r *Recommender) Recommend(current domain.Song, goal domain.Goal, pool []domain.Song) []domain.Recommendation {
	currentKey := current.Key()
	recs := make([]domain.Recommendation, 0, len(pool))
	for _, song := range pool {
		if song.Key() == currentKey {
			continue
		}
		recs = append(recs, score(current, goal, song))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > r.limit {
		recs = recs[:r.limit]
	}
	return recs
}

// ListGenres exposes the catalog's distinct genres for the filter prompt.
func (r *Recommender) ListGenres(catalog domain.Catalog) []string {
	return catalog.Genres()
}

func score(current domain.Song, goal domain.Goal, candidate domain.Song) domain.Recommendation {
	bpmDiff := candidate.BPM - current.BPM
	if bpmDiff < 0 {
		bpmDiff = -bpmDiff
	}
	energyDiff := candidate.Energy - current.Energy

	// Closer tempo ranks higher. The penalty is unbounded below: a large
	// BPM gap can push the score negative, which simply ranks low.
	total := 100 - bpmPenaltyPerBeat*bpmDiff

	switch goal {
	case domain.GoalUp:
		if energyDiff > 0 {
			total += goalMatchBonus
		} else {
			total -= goalMissPenalty
		}
	case domain.GoalDown:
		if energyDiff < 0 {
			total += goalMatchBonus
		} else {
			total -= goalMissPenalty
		}
	default:
		if energyDiff == 0 {
			total += sameEnergyBonus
		}
	}

	genreMatch := strings.EqualFold(candidate.Genre, current.Genre)
	if genreMatch {
		total += genreMatchBonus
	}

	why := make([]string, 0, 3)
	why = append(why, fmt.Sprintf("BPM diff: %d", bpmDiff))
	if goal == domain.GoalUp || goal == domain.GoalDown {
		why = append(why, fmt.Sprintf("Energy change: %+d (goal: %s)", energyDiff, goal))
	} else {
		why = append(why, fmt.Sprintf("Energy: %d (goal: same)", candidate.Energy))
	}
	if genreMatch {
		why = append(why, fmt.Sprintf("Genre match: +%d", genreMatchBonus))
	}

	return domain.Recommendation{
		Score: total,
		Song:  candidate,
		Why:   strings.Join(why, "; "),
	}
}
