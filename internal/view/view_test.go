package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

func TestSeasonIcon(t *testing.T) {
	tests := []struct {
		season calendar.Season
		want   string
	}{
		{calendar.SeasonWinter, "skiing-nordic"},
		{calendar.SeasonSummer, "umbrella-beach"},
		{calendar.SeasonSpring, "cloud-showers-heavy"},
		{calendar.SeasonAutumn, "cloud-sun"},
		{"rain", ""},
	}

	for _, tt := range tests {
		if got := SeasonIcon(tt.season); got != tt.want {
			t.Errorf("SeasonIcon(%q) = %q, want %q", tt.season, got, tt.want)
		}
	}
}

func TestIconClasses(t *testing.T) {
	if diff := cmp.Diff([]string{"fas", "fa-cloud-sun"}, IconClasses(calendar.SeasonAutumn)); diff != "" {
		t.Errorf("autumn (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"fas"}, IconClasses("")); diff != "" {
		t.Errorf("empty (-want +got):\n%s", diff)
	}
}

func TestBuild(t *testing.T) {
	snap, err := calendar.Compute(calendar.Settings{Today: 20})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	want := Model{
		Day:   20,
		Phase: Phase{Label: "waxing quarter", Progress: "day 2 of 2"},
		CurrentSeason: Season{
			Label:   calendar.SeasonSummer,
			Icon:    "umbrella-beach",
			Classes: []string{"fas", "fa-umbrella-beach"},
			Begins:  1,
			Text:    "day 20 of 20",
		},
		NextSeason: Season{
			Label:   calendar.SeasonWinter,
			Icon:    "skiing-nordic",
			Classes: []string{"fas", "fa-skiing-nordic"},
			Begins:  21,
			Text:    "tomorrow",
		},
	}

	if diff := cmp.Diff(want, Build(snap)); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestInDays(t *testing.T) {
	tests := map[int64]string{
		0:  "today",
		1:  "tomorrow",
		16: "in 16 days",
	}
	for n, want := range tests {
		if got := InDays(n); got != want {
			t.Errorf("InDays(%d) = %q, want %q", n, got, want)
		}
	}
}
