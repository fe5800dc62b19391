package domain

// Recommendation pairs a candidate song with its score and the
// human-readable reasoning behind it.
type Recommendation struct {
	Score int
	Song  Song
	Why   string
}
