package services

import (
	"reflect"
	"testing"

	"github.com/deckhandlabs/deckhand/internal/core/domain"
)

func song(title, genre string, bpm, energy int) domain.Song {
	return domain.Song{Title: title, Artist: "Artist", Genre: genre, BPM: bpm, Energy: energy}
}

func TestRecommender_WorkedExample(t *testing.T) {
	current := song("Current", "house", 120, 3)
	a := song("A", "house", 122, 4)
	b := song("B", "techno", 100, 5)

	recs := NewRecommender(DefaultLimit).Recommend(current, domain.GoalUp, []domain.Song{b, a})

	if len(recs) != 2 {
		t.Fatalf("want 2 recommendations, got %d", len(recs))
	}
	// A: 100 - 2*2 + 20 + 10 = 126, B: 100 - 2*20 + 20 = 60.
	if recs[0].Song.Title != "A" || recs[0].Score != 126 {
		t.Fatalf("first: want A with 126, got %s with %d", recs[0].Song.Title, recs[0].Score)
	}
	if recs[1].Song.Title != "B" || recs[1].Score != 60 {
		t.Fatalf("second: want B with 60, got %s with %d", recs[1].Song.Title, recs[1].Score)
	}
	if recs[0].Why != "BPM diff: 2; Energy change: +1 (goal: up); Genre match: +10" {
		t.Fatalf("unexpected explanation: %q", recs[0].Why)
	}
	if recs[1].Why != "BPM diff: 20; Energy change: +2 (goal: up)" {
		t.Fatalf("unexpected explanation: %q", recs[1].Why)
	}
}

func TestRecommender_Scoring(t *testing.T) {
	current := song("Current", "house", 120, 3)

	tests := []struct {
		name      string
		goal      domain.Goal
		candidate domain.Song
		wantScore int
		wantWhy   string
	}{
		{
			name:      "down goal rewards lower energy",
			goal:      domain.GoalDown,
			candidate: song("Chill", "ambient", 118, 2),
			wantScore: 100 - 4 + 20,
			wantWhy:   "BPM diff: 2; Energy change: -1 (goal: down)",
		},
		{
			name:      "down goal penalizes equal energy",
			goal:      domain.GoalDown,
			candidate: song("Flat", "ambient", 120, 3),
			wantScore: 100 - 5,
			wantWhy:   "BPM diff: 0; Energy change: +0 (goal: down)",
		},
		{
			name:      "up goal penalizes lower energy",
			goal:      domain.GoalUp,
			candidate: song("Dip", "ambient", 120, 2),
			wantScore: 100 - 5,
			wantWhy:   "BPM diff: 0; Energy change: -1 (goal: up)",
		},
		{
			name:      "same goal rewards equal energy",
			goal:      domain.GoalSame,
			candidate: song("Steady", "ambient", 124, 3),
			wantScore: 100 - 8 + 10,
			wantWhy:   "BPM diff: 4; Energy: 3 (goal: same)",
		},
		{
			name:      "same goal leaves differing energy unadjusted",
			goal:      domain.GoalSame,
			candidate: song("Shift", "ambient", 124, 5),
			wantScore: 100 - 8,
			wantWhy:   "BPM diff: 4; Energy: 5 (goal: same)",
		},
		{
			name:      "genre match is case-insensitive",
			goal:      domain.GoalSame,
			candidate: song("Match", "HOUSE", 120, 3),
			wantScore: 100 + 10 + 10,
			wantWhy:   "BPM diff: 0; Energy: 3 (goal: same); Genre match: +10",
		},
		{
			name:      "large bpm gap drives score negative",
			goal:      domain.GoalSame,
			candidate: song("Far", "ambient", 200, 1),
			wantScore: 100 - 160,
			wantWhy:   "BPM diff: 80; Energy: 1 (goal: same)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := NewRecommender(DefaultLimit).Recommend(current, tc.goal, []domain.Song{tc.candidate})
			if len(recs) != 1 {
				t.Fatalf("want 1 recommendation, got %d", len(recs))
			}
			if recs[0].Score != tc.wantScore {
				t.Fatalf("score: want %d, got %d", tc.wantScore, recs[0].Score)
			}
			if recs[0].Why != tc.wantWhy {
				t.Fatalf("why: want %q, got %q", tc.wantWhy, recs[0].Why)
			}
		})
	}
}

func TestRecommender_ExcludesCurrentByKey(t *testing.T) {
	current := song("Same Song", "house", 120, 3)
	twin := song("same song", "house", 140, 5) // same identity key, different object
	other := song("Other", "house", 121, 3)

	recs := NewRecommender(DefaultLimit).Recommend(current, domain.GoalSame, []domain.Song{twin, other})
	if len(recs) != 1 || recs[0].Song.Title != "Other" {
		t.Fatalf("current song leaked into its own recommendations: %+v", recs)
	}
}

func TestRecommender_LimitAndTieOrder(t *testing.T) {
	current := song("Current", "house", 120, 3)
	pool := []domain.Song{
		song("T1", "pop", 124, 3), // all identical scores, pool order must hold
		song("T2", "pop", 124, 3),
		song("T3", "pop", 124, 3),
		song("T4", "pop", 124, 3),
		song("T5", "pop", 124, 3),
		song("T6", "pop", 124, 3),
	}

	recs := NewRecommender(5).Recommend(current, domain.GoalSame, pool)
	if len(recs) != 5 {
		t.Fatalf("want 5 recommendations, got %d", len(recs))
	}
	got := make([]string, len(recs))
	for i, r := range recs {
		got[i] = r.Song.Title
	}
	want := []string{"T1", "T2", "T3", "T4", "T5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tie order not stable: want %v, got %v", want, got)
	}

	if short := NewRecommender(3).Recommend(current, domain.GoalSame, pool); len(short) != 3 {
		t.Fatalf("configured limit not honored: got %d", len(short))
	}
}

func TestRecommender_EmptyPool(t *testing.T) {
	current := song("Current", "house", 120, 3)
	if recs := NewRecommender(DefaultLimit).Recommend(current, domain.GoalUp, nil); len(recs) != 0 {
		t.Fatalf("want empty result, got %+v", recs)
	}
	// A pool holding only the current song is empty after exclusion.
	if recs := NewRecommender(DefaultLimit).Recommend(current, domain.GoalUp, []domain.Song{current}); len(recs) != 0 {
		t.Fatalf("want empty result, got %+v", recs)
	}
}

func TestRecommender_Deterministic(t *testing.T) {
	current := song("Current", "house", 120, 3)
	pool := []domain.Song{
		song("A", "house", 122, 4),
		song("B", "techno", 100, 5),
		song("C", "house", 118, 2),
	}

	r := NewRecommender(DefaultLimit)
	first := r.Recommend(current, domain.GoalUp, pool)
	second := r.Recommend(current, domain.GoalUp, pool)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different output:\n%+v\n%+v", first, second)
	}
}

func TestRecommender_ListGenres(t *testing.T) {
	catalog := domain.Catalog{Songs: []domain.Song{
		song("a", "Techno", 130, 4),
		song("b", "house", 120, 3),
		song("c", "HOUSE", 122, 3),
	}}

	want := []string{"house", "Techno"}
	if got := NewRecommender(DefaultLimit).ListGenres(catalog); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}
