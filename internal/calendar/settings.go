package calendar

// Settings is the calendar configuration.
//
// RoG ("Reign of Giants") switches from the 2-season base game to the
// 4-season calendar. DST ("Don't Starve Together") switches to the DST
// lunar cycle and, since DST always plays with the RoG seasons, implies RoG.
type Settings struct {
	Today          int64  `json:"today"`
	RoG            bool   `json:"is_rog"`
	DST            bool   `json:"is_dst"`
	Pace           Pace   `json:"pace"`
	StartingSeason Season `json:"starting_season"`
}

// DefaultSettings returns the construction defaults for a given day.
func DefaultSettings(today int64) Settings {
	return Settings{
		Today:          today,
		Pace:           PaceDefault,
		StartingSeason: SeasonSummer,
	}
}

func (s Settings) withDefaults() Settings {
	if s.Pace == "" {
		s.Pace = PaceDefault
	}
	if s.StartingSeason == "" {
		s.StartingSeason = SeasonSummer
	}
	return s
}

// Flags holds the two ruleset switches. Its methods are the only way the
// switches change, and every result satisfies DST => RoG.
type Flags struct {
	RoG bool
	DST bool
}

// Normalize enforces DST => RoG by turning RoG on. This is how flags given
// together at construction are read: asking for DST asks for RoG too.
func (f Flags) Normalize() Flags {
	if f.DST {
		f.RoG = true
	}
	return f
}

// WithRoG switches RoG. Turning it off also turns DST off.
func (f Flags) WithRoG(on bool) Flags {
	f.RoG = on
	if !on {
		f.DST = false
	}
	return f
}

// WithDST switches DST. Turning it on also turns RoG on.
func (f Flags) WithDST(on bool) Flags {
	f.DST = on
	if on {
		f.RoG = true
	}
	return f
}

// Apply performs a combined change, RoG first and DST second, so that a
// request for {RoG: off, DST: on} ends with both on, as at construction.
// A nil pointer leaves that switch as it is.
func (f Flags) Apply(rog, dst *bool) Flags {
	if rog != nil {
		f = f.WithRoG(*rog)
	}
	if dst != nil {
		f = f.WithDST(*dst)
	}
	return f
}

func (s Settings) flags() Flags {
	return Flags{RoG: s.RoG, DST: s.DST}
}

func (s Settings) withFlags(f Flags) Settings {
	s.RoG, s.DST = f.RoG, f.DST
	return s
}

// Change is a partial update. Nil fields are left unchanged.
type Change struct {
	Today          *int64  `json:"today,omitempty"`
	RoG            *bool   `json:"is_rog,omitempty"`
	DST            *bool   `json:"is_dst,omitempty"`
	Pace           *Pace   `json:"pace,omitempty"`
	StartingSeason *Season `json:"starting_season,omitempty"`
}

// IsEmpty reports whether the change touches nothing.
func (c Change) IsEmpty() bool {
	return c.Today == nil && c.RoG == nil && c.DST == nil && c.Pace == nil && c.StartingSeason == nil
}
