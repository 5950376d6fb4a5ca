package calendar

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newCalendar(t *testing.T, s Settings) *Calendar {
	t.Helper()
	c, err := New(s)
	if err != nil {
		t.Fatalf("New(%+v) error = %v", s, err)
	}
	return c
}

func TestNew_Defaults(t *testing.T) {
	c := newCalendar(t, Settings{Today: 1})

	if c.Pace() != PaceDefault {
		t.Errorf("Pace() = %q, want %q", c.Pace(), PaceDefault)
	}
	if c.StartingSeason() != SeasonSummer {
		t.Errorf("StartingSeason() = %q, want %q", c.StartingSeason(), SeasonSummer)
	}
	if c.RoG() || c.DST() {
		t.Errorf("RoG/DST = %v/%v, want false/false", c.RoG(), c.DST())
	}

	wantPhase := Phase{Label: "new moon", Day: 1, Duration: 2}
	if c.Phase() != wantPhase {
		t.Errorf("Phase() = %+v, want %+v", c.Phase(), wantPhase)
	}

	s := c.Season()
	if s.Current.Label != SeasonSummer || s.Current.Begins.Absolute != 1 || s.Current.Begins.Relative != 0 {
		t.Errorf("current = %+v, want summer beginning on day 1 (offset 0)", s.Current)
	}
	if s.Next.Label != SeasonWinter || s.Next.Begins.Absolute != 21 {
		t.Errorf("next = %+v, want winter beginning on day 21", s.Next)
	}

	if diff := cmp.Diff([]Season{SeasonSummer, SeasonWinter}, c.Seasons()); diff != "" {
		t.Errorf("Seasons() (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{20, 16}, c.SeasonLengths()); diff != "" {
		t.Errorf("SeasonLengths() (-want +got):\n%s", diff)
	}
	if c.YearLength() != 36 {
		t.Errorf("YearLength() = %d, want 36", c.YearLength())
	}
}

func TestNew_DSTPhase(t *testing.T) {
	c := newCalendar(t, Settings{Today: 11, DST: true})

	want := Phase{Label: "full moon", Day: 1, Duration: 1}
	if c.Phase() != want {
		t.Errorf("Phase() = %+v, want %+v", c.Phase(), want)
	}
	if !c.RoG() {
		t.Error("DST at construction did not turn RoG on")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{"missing day", Settings{}, ErrInvalidDay},
		{"negative day", Settings{Today: -5}, ErrInvalidDay},
		{"day too large", Settings{Today: MaxDay + 1}, ErrInvalidDay},
		{"unimplemented pace", Settings{Today: 1, Pace: PaceShort}, ErrPaceNotImplemented},
		{"unknown pace", Settings{Today: 1, Pace: "fast"}, ErrInvalidPace},
		{"unknown season", Settings{Today: 1, StartingSeason: "rain"}, ErrInvalidSeason},
		{"rog season in base game", Settings{Today: 1, StartingSeason: SeasonAutumn}, ErrInvalidSeason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.settings)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if !IsValidation(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
		})
	}
}

func TestSetToday(t *testing.T) {
	c := newCalendar(t, Settings{Today: 1})

	if err := c.SetToday(21); err != nil {
		t.Fatalf("SetToday(21) error = %v", err)
	}
	if c.Today() != 21 {
		t.Errorf("Today() = %d, want 21", c.Today())
	}
	if c.Season().Current.Label != SeasonWinter {
		t.Errorf("current season = %q, want winter", c.Season().Current.Label)
	}
	if c.Phase().Label != "first quarter" {
		t.Errorf("phase = %q, want first quarter", c.Phase().Label)
	}

	before := c.Snapshot()
	for _, bad := range []int64{0, -5, MaxDay + 1} {
		if err := c.SetToday(bad); !errors.Is(err, ErrInvalidDay) {
			t.Errorf("SetToday(%d) error = %v, want ErrInvalidDay", bad, err)
		}
	}
	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Errorf("failed SetToday changed state (-before +after):\n%s", diff)
	}
}

func TestSetPace(t *testing.T) {
	c := newCalendar(t, Settings{Today: 5})
	before := c.Snapshot()

	for _, p := range []Pace{PaceVeryShort, PaceShort, PaceLong, PaceVeryLong} {
		err := c.SetPace(p)
		if !errors.Is(err, ErrPaceNotImplemented) {
			t.Errorf("SetPace(%q) error = %v, want ErrPaceNotImplemented", p, err)
		}
	}

	err := c.SetPace("shrt")
	if !errors.Is(err, ErrInvalidPace) {
		t.Fatalf("SetPace(shrt) error = %v, want ErrInvalidPace", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Hint != string(PaceShort) {
		t.Errorf("SetPace(shrt) hint = %+v, want %q", ve, PaceShort)
	}

	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Errorf("failed SetPace changed state (-before +after):\n%s", diff)
	}

	if err := c.SetPace(PaceDefault); err != nil {
		t.Errorf("SetPace(default) error = %v", err)
	}
}

func TestSetStartingSeason(t *testing.T) {
	c := newCalendar(t, Settings{Today: 1})

	if err := c.SetStartingSeason(SeasonWinter); err != nil {
		t.Fatalf("SetStartingSeason(winter) error = %v", err)
	}
	if diff := cmp.Diff([]Season{SeasonWinter, SeasonSummer}, c.Seasons()); diff != "" {
		t.Errorf("Seasons() (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{16, 20}, c.SeasonLengths()); diff != "" {
		t.Errorf("SeasonLengths() (-want +got):\n%s", diff)
	}
	if got := c.Season().Next; got.Label != SeasonSummer || got.Begins.Absolute != 17 {
		t.Errorf("next = %+v, want summer on day 17", got)
	}

	err := c.SetStartingSeason("rain")
	if !errors.Is(err, ErrInvalidSeason) {
		t.Fatalf("SetStartingSeason(rain) error = %v, want ErrInvalidSeason", err)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		if diff := cmp.Diff([]string{"summer", "winter"}, ve.Allowed); diff != "" {
			t.Errorf("Allowed (-want +got):\n%s", diff)
		}
	}
	if c.StartingSeason() != SeasonWinter {
		t.Errorf("failed SetStartingSeason changed season to %q", c.StartingSeason())
	}
}

func TestSetStartingSeason_FirstSeasonIsNoop(t *testing.T) {
	c := newCalendar(t, Settings{Today: 40, RoG: true, StartingSeason: SeasonSpring})
	seasons, lengths, snap := c.Seasons(), c.SeasonLengths(), c.Snapshot()

	if err := c.SetStartingSeason(seasons[0]); err != nil {
		t.Fatalf("SetStartingSeason(%q) error = %v", seasons[0], err)
	}
	if diff := cmp.Diff(seasons, c.Seasons()); diff != "" {
		t.Errorf("Seasons() changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(lengths, c.SeasonLengths()); diff != "" {
		t.Errorf("SeasonLengths() changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(snap, c.Snapshot()); diff != "" {
		t.Errorf("Snapshot() changed (-before +after):\n%s", diff)
	}
}

func TestSetDST_EnablesRoG(t *testing.T) {
	c := newCalendar(t, Settings{Today: 1})

	if err := c.SetDST(true); err != nil {
		t.Fatalf("SetDST(true) error = %v", err)
	}
	if !c.DST() || !c.RoG() {
		t.Errorf("RoG/DST = %v/%v, want true/true", c.RoG(), c.DST())
	}
	if len(c.Seasons()) != 4 {
		t.Errorf("len(Seasons()) = %d, want 4", len(c.Seasons()))
	}
	if c.Phase().Duration != 1 {
		t.Errorf("day 1 DST phase duration = %d, want 1", c.Phase().Duration)
	}
}

func TestSetRoG_DisablesDST(t *testing.T) {
	c := newCalendar(t, Settings{Today: 3, DST: true, StartingSeason: SeasonAutumn})

	if err := c.SetRoG(false); err != nil {
		t.Fatalf("SetRoG(false) error = %v", err)
	}
	if c.RoG() || c.DST() {
		t.Errorf("RoG/DST = %v/%v, want false/false", c.RoG(), c.DST())
	}
	// autumn does not exist in the base game
	if c.StartingSeason() != SeasonSummer {
		t.Errorf("StartingSeason() = %q, want summer", c.StartingSeason())
	}
	if c.Phase().Duration != 2 {
		t.Errorf("phase duration = %d, want 2", c.Phase().Duration)
	}
}

func TestSetRoG_RoundTripRestoresTable(t *testing.T) {
	for _, start := range []Season{SeasonSummer, SeasonWinter} {
		c := newCalendar(t, Settings{Today: 30, StartingSeason: start})
		seasons, lengths := c.Seasons(), c.SeasonLengths()

		if err := c.SetRoG(true); err != nil {
			t.Fatalf("SetRoG(true) error = %v", err)
		}
		if len(c.Seasons()) != 4 || c.StartingSeason() != start {
			t.Errorf("%s: after RoG on: seasons %v, start %q", start, c.Seasons(), c.StartingSeason())
		}

		if err := c.SetRoG(false); err != nil {
			t.Fatalf("SetRoG(false) error = %v", err)
		}
		if diff := cmp.Diff(seasons, c.Seasons()); diff != "" {
			t.Errorf("%s: Seasons() (-want +got):\n%s", start, diff)
		}
		if diff := cmp.Diff(lengths, c.SeasonLengths()); diff != "" {
			t.Errorf("%s: SeasonLengths() (-want +got):\n%s", start, diff)
		}
	}
}

func TestUpdate(t *testing.T) {
	c := newCalendar(t, Settings{Today: 1})

	day := int64(57)
	off, on := false, true
	autumn := SeasonAutumn

	// RoG is resolved before DST, so asking for DST wins.
	err := c.Update(Change{Today: &day, RoG: &off, DST: &on, StartingSeason: &autumn})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !c.RoG() || !c.DST() {
		t.Errorf("RoG/DST = %v/%v, want true/true", c.RoG(), c.DST())
	}
	if c.StartingSeason() != SeasonAutumn || c.Season().Current.Label != SeasonSummer {
		t.Errorf("start %q current %q, want autumn/summer", c.StartingSeason(), c.Season().Current.Label)
	}

	before := c.Snapshot()
	bad := int64(0)
	if err := c.Update(Change{Today: &bad, DST: &off}); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("Update(bad day) error = %v, want ErrInvalidDay", err)
	}
	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Errorf("failed Update changed state (-before +after):\n%s", diff)
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name string
		got  Flags
		want Flags
	}{
		{"dst on enables rog", Flags{}.WithDST(true), Flags{RoG: true, DST: true}},
		{"dst off keeps rog", Flags{RoG: true, DST: true}.WithDST(false), Flags{RoG: true}},
		{"rog off disables dst", Flags{RoG: true, DST: true}.WithRoG(false), Flags{}},
		{"rog on keeps dst off", Flags{}.WithRoG(true), Flags{RoG: true}},
		{"normalize", Flags{DST: true}.Normalize(), Flags{RoG: true, DST: true}},
		{"apply nil", Flags{RoG: true}.Apply(nil, nil), Flags{RoG: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
			if tt.got.DST && !tt.got.RoG {
				t.Errorf("%+v has DST without RoG", tt.got)
			}
		})
	}
}

func TestCompute_MatchesCalendar(t *testing.T) {
	settings := Settings{Today: 123, RoG: true, StartingSeason: SeasonWinter}

	snap, err := Compute(settings)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	c := newCalendar(t, settings)
	if diff := cmp.Diff(c.Snapshot(), snap); diff != "" {
		t.Errorf("Compute() differs from Calendar (-calendar +compute):\n%s", diff)
	}
	if snap.Pace != PaceDefault {
		t.Errorf("Compute() pace = %q, want default", snap.Pace)
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	c := newCalendar(t, Settings{Today: 1})

	c.Seasons()[0] = "changed"
	c.SeasonLengths()[0] = 99
	c.Paces()[0] = "changed"

	if c.Seasons()[0] != SeasonSummer || c.SeasonLengths()[0] != 20 || c.Paces()[0] != PaceVeryShort {
		t.Error("accessor exposed internal state")
	}
}
