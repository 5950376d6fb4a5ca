// Package calendar computes the lunar phase and season boundaries for a
// Don't Starve day number.
//
// Everything here is pure arithmetic over small fixed tables: no I/O, no
// logging, no shared state. Compute is the stateless entry point; Calendar
// wraps it with getters and setters that recompute on every change.
package calendar

// Snapshot is a complete calculation result.
type Snapshot struct {
	Settings
	Phase  Phase      `json:"phase"`
	Season SeasonPair `json:"season"`
}

// Compute returns the phase and seasons for the given settings.
// Empty Pace and StartingSeason take their defaults.
func Compute(s Settings) (Snapshot, error) {
	s, ring, err := resolve(s.withDefaults(), true)
	if err != nil {
		return Snapshot{}, err
	}
	return compute(s, ring), nil
}

// resolve validates settings and builds the season ring they describe.
// With strictSeason unset, a starting season that is not in the active set
// falls back to the set's first season instead of failing.
func resolve(s Settings, strictSeason bool) (Settings, seasonRing, error) {
	if err := validateDay(s.Today); err != nil {
		return s, seasonRing{}, err
	}

	s = s.withFlags(s.flags().Normalize())

	ring, err := newSeasonRing(s.RoG, s.Pace)
	if err != nil {
		return s, seasonRing{}, err
	}

	rotated, ok := ring.startingAt(s.StartingSeason)
	if !ok {
		if strictSeason {
			allowed := make([]string, ring.len())
			for i, name := range ring.names {
				allowed[i] = string(name)
			}
			return s, seasonRing{}, &ValidationError{
				Field:   FieldStartingSeason,
				Value:   string(s.StartingSeason),
				Err:     ErrInvalidSeason,
				Allowed: allowed,
				Hint:    suggest(string(s.StartingSeason), allowed),
			}
		}
		s.StartingSeason = ring.names[0]
		rotated = ring
	}

	return s, rotated, nil
}

func compute(s Settings, ring seasonRing) Snapshot {
	return Snapshot{
		Settings: s,
		Phase:    computePhase(s.Today, s.DST),
		Season:   computeSeason(s.Today, ring),
	}
}

// Calendar holds a configuration and its last computed outputs.
// It is not safe for concurrent use.
type Calendar struct {
	settings Settings
	ring     seasonRing
	phase    Phase
	season   SeasonPair
}

// New builds a calendar. Today is required; the other settings default to
// the base game, default pace and summer start.
func New(s Settings) (*Calendar, error) {
	c := &Calendar{}
	if err := c.apply(s.withDefaults(), true); err != nil {
		return nil, err
	}
	return c, nil
}

// apply validates next and recomputes. On error nothing changes.
func (c *Calendar) apply(next Settings, strictSeason bool) error {
	next, ring, err := resolve(next, strictSeason)
	if err != nil {
		return err
	}

	snap := compute(next, ring)
	c.settings = next
	c.ring = ring
	c.phase = snap.Phase
	c.season = snap.Season
	return nil
}

// SetToday changes the day number.
func (c *Calendar) SetToday(today int64) error {
	next := c.settings
	next.Today = today
	return c.apply(next, true)
}

// SetPace changes the pace. Only implemented paces are accepted.
func (c *Calendar) SetPace(p Pace) error {
	next := c.settings
	next.Pace = p
	return c.apply(next, true)
}

// SetRoG switches the 4-season ruleset. Turning it off turns DST off, and a
// starting season that no longer exists resets to the first season of the
// new set.
func (c *Calendar) SetRoG(on bool) error {
	next := c.settings.withFlags(c.settings.flags().WithRoG(on))
	return c.apply(next, false)
}

// SetDST switches the DST lunar cycle. Turning it on turns RoG on.
func (c *Calendar) SetDST(on bool) error {
	next := c.settings.withFlags(c.settings.flags().WithDST(on))
	return c.apply(next, false)
}

// SetStartingSeason makes s the first season of the year.
func (c *Calendar) SetStartingSeason(s Season) error {
	next := c.settings
	next.StartingSeason = s
	return c.apply(next, true)
}

// Update applies several changes at once, in the order today, pace, RoG,
// DST, starting season. It succeeds or fails as a whole.
func (c *Calendar) Update(ch Change) error {
	next := c.settings
	if ch.Today != nil {
		next.Today = *ch.Today
	}
	if ch.Pace != nil {
		next.Pace = *ch.Pace
	}
	next = next.withFlags(next.flags().Apply(ch.RoG, ch.DST))
	if ch.StartingSeason != nil {
		next.StartingSeason = *ch.StartingSeason
	}
	return c.apply(next, ch.StartingSeason != nil)
}

// Today returns the day number.
func (c *Calendar) Today() int64 { return c.settings.Today }

// Pace returns the pace.
func (c *Calendar) Pace() Pace { return c.settings.Pace }

// RoG reports whether the 4-season ruleset is on.
func (c *Calendar) RoG() bool { return c.settings.RoG }

// DST reports whether the DST lunar cycle is on.
func (c *Calendar) DST() bool { return c.settings.DST }

// StartingSeason returns the first season of the year.
func (c *Calendar) StartingSeason() Season { return c.settings.StartingSeason }

// Settings returns the current configuration.
func (c *Calendar) Settings() Settings { return c.settings }

// Phase returns the current lunar phase.
func (c *Calendar) Phase() Phase { return c.phase }

// Season returns the current and next seasons.
func (c *Calendar) Season() SeasonPair { return c.season }

// Phases returns the lunar phase names in cycle order.
func (c *Calendar) Phases() []string { return Phases() }

// Paces returns every recognized pace.
func (c *Calendar) Paces() []Pace { return Paces() }

// Seasons returns the active seasons, starting with the starting season.
func (c *Calendar) Seasons() []Season {
	names, _ := c.ring.view()
	return names
}

// SeasonLengths returns the day count of each season, in the same order
// as Seasons.
func (c *Calendar) SeasonLengths() []int {
	_, lengths := c.ring.view()
	return lengths
}

// YearLength returns the number of days in a year.
func (c *Calendar) YearLength() int64 { return c.ring.yearLength() }

// Snapshot returns the configuration together with both outputs.
func (c *Calendar) Snapshot() Snapshot {
	return Snapshot{Settings: c.settings, Phase: c.phase, Season: c.season}
}
