package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
	"github.com/zapponejosh/dontstarve-calendar/internal/view"
)

// dayOutput is the JSON form of one day.
type dayOutput struct {
	calendar.Snapshot
	View view.Model `json:"view"`
}

var seasonColors = map[calendar.Season]*color.Color{
	calendar.SeasonAutumn: color.New(color.Bold, color.FgRed),
	calendar.SeasonWinter: color.New(color.Bold, color.FgCyan),
	calendar.SeasonSpring: color.New(color.Bold, color.FgGreen),
	calendar.SeasonSummer: color.New(color.Bold, color.FgYellow),
}

func seasonText(s calendar.Season) string {
	return seasonTextf(s, "%s")
}

// seasonTextf formats the season name with format, then colors the result,
// so width verbs pad the visible text.
func seasonTextf(s calendar.Season, format string) string {
	text := fmt.Sprintf(format, s)
	if c, ok := seasonColors[s]; ok {
		return c.Sprint(text)
	}
	return text
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

// printDays prints opts.days consecutive days starting at s.Today.
func (o *options) printDays(cmd *cobra.Command, s calendar.Settings) error {
	if o.days < 1 || o.days > maxDays {
		return fmt.Errorf("--days must be between 1 and %d", maxDays)
	}

	cal, err := calendar.New(s)
	if err != nil {
		return err
	}

	out := make([]dayOutput, 0, o.days)
	for i := 0; i < o.days; i++ {
		if i > 0 {
			if err := cal.SetToday(cal.Today() + 1); err != nil {
				return err
			}
		}
		snap := cal.Snapshot()
		out = append(out, dayOutput{Snapshot: snap, View: view.Build(snap)})
	}

	if o.json {
		if len(out) == 1 {
			return writeJSON(cmd, out[0])
		}
		return writeJSON(cmd, out)
	}

	for i, d := range out {
		if i > 0 {
			cmd.Println()
		}
		printDay(cmd, d)
	}
	return nil
}

func printDay(cmd *cobra.Command, d dayOutput) {
	cur, next := d.Season.Current, d.Season.Next

	cmd.Printf("%s\n", bold("Day %d", d.Today))
	cmd.Printf("  Moon:   %s (%s)\n", d.Phase.Label, d.View.Phase.Progress)
	cmd.Printf("  Season: %s, %s (began day %d)\n",
		seasonText(cur.Label), d.View.CurrentSeason.Text, cur.Begins.Absolute)
	cmd.Printf("  Next:   %s on day %d (%s)\n",
		seasonText(next.Label), next.Begins.Absolute, d.View.NextSeason.Text)
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
