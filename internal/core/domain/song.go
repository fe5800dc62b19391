// Package domain holds the pure data model for catalog songs and
// recommendations.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Energy is a 1-5 proxy for perceived intensity. It is only ever used
// relatively (direction of change), never as an absolute measurement.
const (
	EnergyMin     = 1
	EnergyMax     = 5
	EnergyDefault = 3
)

// Song is one catalog entry. Records are constructed once during load and
// never mutated afterwards.
type Song struct {
	Title  string
	Artist string
	Genre  string
	BPM    int
	Energy int
}

// NewSong trims the text fields and normalizes the numeric ones: an
// unparsable BPM falls back to 0 (which the load pipeline rejects), an
// unparsable energy falls back to the midpoint, and out-of-range energy is
// clamped into [EnergyMin, EnergyMax] rather than rejected.
func NewSong(title, artist, genre, bpm, energy string) Song {
	s := Song{
		Title:  strings.TrimSpace(title),
		Artist: strings.TrimSpace(artist),
		Genre:  strings.TrimSpace(genre),
		BPM:    safeInt(bpm, 0),
		Energy: safeInt(energy, EnergyDefault),
	}
	if s.Energy < EnergyMin {
		s.Energy = EnergyMin
	}
	if s.Energy > EnergyMax {
		s.Energy = EnergyMax
	}
	return s
}

// Key is the song's identity for dedupe and self-exclusion: title plus
// artist, compared case-insensitively.
func (s Song) Key() string {
	return strings.ToLower(s.Title) + "\x00" + strings.ToLower(s.Artist)
}

func (s Song) String() string {
	return fmt.Sprintf("%s - %s (%s, %d BPM, E%d)", s.Title, s.Artist, s.Genre, s.BPM, s.Energy)
}

func safeInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
