// Package view turns calendar results into render-ready data: season icons
// and the short texts a calendar widget shows.
package view

import (
	"fmt"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

// Font Awesome icon names per season.
var seasonIcons = map[calendar.Season]string{
	calendar.SeasonWinter: "skiing-nordic",
	calendar.SeasonSummer: "umbrella-beach",
	calendar.SeasonSpring: "cloud-showers-heavy",
	calendar.SeasonAutumn: "cloud-sun",
}

// SeasonIcon returns the icon name for a season, or "" if it has none.
func SeasonIcon(s calendar.Season) string {
	return seasonIcons[s]
}

// IconClasses returns the CSS classes that render a season icon.
// A season without an icon gets only the base class.
func IconClasses(s calendar.Season) []string {
	icon := SeasonIcon(s)
	if icon == "" {
		return []string{"fas"}
	}
	return []string{"fas", "fa-" + icon}
}

// Season is a season as displayed.
type Season struct {
	Label   calendar.Season `json:"label"`
	Icon    string          `json:"icon"`
	Classes []string        `json:"classes"`
	Begins  int64           `json:"begins"`
	Text    string          `json:"text"`
}

// Phase is a lunar phase as displayed.
type Phase struct {
	Label    string `json:"label"`
	Progress string `json:"progress"`
}

// Model is everything a calendar widget needs for one day.
type Model struct {
	Day           int64  `json:"day"`
	Phase         Phase  `json:"phase"`
	CurrentSeason Season `json:"current_season"`
	NextSeason    Season `json:"next_season"`
}

// Build renders a calculation snapshot.
func Build(snap calendar.Snapshot) Model {
	cur, next := snap.Season.Current, snap.Season.Next

	return Model{
		Day: snap.Today,
		Phase: Phase{
			Label:    snap.Phase.Label,
			Progress: fmt.Sprintf("day %d of %d", snap.Phase.Day, snap.Phase.Duration),
		},
		CurrentSeason: Season{
			Label:   cur.Label,
			Icon:    SeasonIcon(cur.Label),
			Classes: IconClasses(cur.Label),
			Begins:  cur.Begins.Absolute,
			Text:    fmt.Sprintf("day %d of %d", cur.Day, cur.Duration),
		},
		NextSeason: Season{
			Label:   next.Label,
			Icon:    SeasonIcon(next.Label),
			Classes: IconClasses(next.Label),
			Begins:  next.Begins.Absolute,
			Text:    InDays(next.Begins.Relative),
		},
	}
}

// InDays describes a forward offset in days.
func InDays(n int64) string {
	switch {
	case n <= 0:
		return "today"
	case n == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", n)
	}
}
