package domain

import "strings"

// Goal is the requested energy trajectory for the next track.
type Goal string

const (
	GoalUp   Goal = "up"
	GoalDown Goal = "down"
	GoalSame Goal = "same"
)

// NormalizeGoal maps any unrecognized input to GoalSame, the neutral branch.
// Callers are expected to normalize before handing a goal to the engine.
func NormalizeGoal(raw string) Goal {
	switch Goal(strings.ToLower(strings.TrimSpace(raw))) {
	case GoalUp:
		return GoalUp
	case GoalDown:
		return GoalDown
	default:
		return GoalSame
	}
}
