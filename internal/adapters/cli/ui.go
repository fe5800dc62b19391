// Package cli is the interactive terminal adapter: prompts on the way in,
// styled rendering on the way out. It supplies validated inputs to the core
// and renders its outputs without influencing the algorithm.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/deckhandlabs/deckhand/internal/core/domain"
)

const allGenresOption = "All genres"

var (
	headline = color.New(color.FgCyan, color.Bold)
	accent   = color.New(color.FgGreen)
	warning  = color.New(color.FgYellow)
	failure  = color.New(color.FgRed, color.Bold)
	muted    = color.New(color.Faint)
)

// UI renders to one writer for the lifetime of a session.
type UI struct {
	out io.Writer
}

func NewUI(out io.Writer) *UI {
	return &UI{out: out}
}

func (u *UI) Banner() {
	rule := strings.Repeat("═", 52)
	headline.Fprintln(u.out, "\n"+rule)
	headline.Fprintln(u.out, "   🎧 Deckhand — next-track selector 🎧")
	headline.Fprintln(u.out, rule+"\n")
}

// LoadSummary prints the one-line session status for a finished load.
func (u *UI) LoadSummary(stats domain.LoadStats) {
	accent.Fprintf(u.out, "Loaded %d songs (duplicates auto-removed).\n", stats.Loaded)
	if stats.Skipped > 0 {
		warning.Fprintf(u.out, "Skipped %d bad/invalid lines.\n", stats.Skipped)
	}
}

func (u *UI) NowPlaying(song domain.Song) {
	muted.Fprint(u.out, "\nNow playing: ")
	accent.Fprintln(u.out, song.String())
}

// Fatal reports a session-ending error.
func (u *UI) Fatal(err error) {
	failure.Fprintf(u.out, "Error: %v\n", err)
}

// ChooseGenre offers the catalog's genres as an optional filter. An empty
// return value means no filter.
func (u *UI) ChooseGenre(genres []string) (string, error) {
	if len(genres) == 0 {
		return "", nil
	}
	options := append([]string{allGenresOption}, genres...)
	var choice string
	prompt := &survey.Select{
		Message: "Filter by genre:",
		Options: options,
		Default: allGenresOption,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	if choice == allGenresOption {
		return "", nil
	}
	return choice, nil
}

// ChooseSong lets the user pick the currently playing track from the pool.
func (u *UI) ChooseSong(pool []domain.Song) (domain.Song, error) {
	options := make([]string, len(pool))
	for i, s := range pool {
		options[i] = s.String()
	}
	var idx int
	prompt := &survey.Select{
		Message:  "Choose the current song:",
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &idx); err != nil {
		return domain.Song{}, err
	}
	return pool[idx], nil
}

// ChooseGoal asks for the desired energy trajectory. The answer is already
// normalized, so the engine never sees an unrecognized goal.
func (u *UI) ChooseGoal() (domain.Goal, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Energy goal:",
		Options: []string{string(domain.GoalUp), string(domain.GoalDown), string(domain.GoalSame)},
		Default: string(domain.GoalSame),
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return domain.GoalSame, err
	}
	return domain.NormalizeGoal(choice), nil
}

// Results renders the ranked list with its per-candidate explanations.
func (u *UI) Results(recs []domain.Recommendation) {
	if len(recs) == 0 {
		warning.Fprintln(u.out, "\nNo recommendations.")
		return
	}

	color.New(color.FgMagenta, color.Bold).Fprintln(u.out, "\nRecommended next songs:")
	table := tablewriter.NewWriter(u.out)
	table.SetHeader([]string{"#", "Score", "Song", "Why"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for i, rec := range recs {
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(rec.Score),
			fmt.Sprintf("%s by %s (%d BPM, E%d)", rec.Song.Title, rec.Song.Artist, rec.Song.BPM, rec.Song.Energy),
			rec.Why,
		})
	}
	table.Render()
	muted.Fprintln(u.out, "\nDone. Run again to try a different song.")
}
