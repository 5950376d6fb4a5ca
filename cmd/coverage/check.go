package main

import (
	"fmt"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

const (
	standardPhasePeriod = 16
	dstPhasePeriod      = 20
)

// checkAll checks each day on its own and against its neighbours.
// snaps[i] must be day i+1.
func checkAll(rs Ruleset, snaps []calendar.Snapshot) []TestResult {
	period := standardPhasePeriod
	if rs.DST {
		period = dstPhasePeriod
	}

	results := make([]TestResult, len(snaps))
	for i, s := range snaps {
		errs := checkDay(s)

		if want := int64(i + 1); s.Today != want {
			errs = append(errs, fmt.Sprintf("expected day %d, got %d", want, s.Today))
		}
		if i+period < len(snaps) && snaps[i+period].Phase.Label != s.Phase.Label {
			errs = append(errs, fmt.Sprintf("phase %q does not repeat after %d days (got %q)",
				s.Phase.Label, period, snaps[i+period].Phase.Label))
		}
		if i+1 < len(snaps) {
			errs = append(errs, checkTransition(s, snaps[i+1])...)
		}

		results[i] = TestResult{
			Ruleset: rs.Name,
			Day:     s.Today,
			Season:  string(s.Season.Current.Label),
			Phase:   s.Phase.Label,
			Success: len(errs) == 0,
			Errors:  errs,
		}
	}
	return results
}

// checkDay checks the internal consistency of one answer.
func checkDay(s calendar.Snapshot) []string {
	var errs []string
	cur, next := s.Season.Current, s.Season.Next

	if cur.Begins.Absolute+int64(cur.Duration) != next.Begins.Absolute {
		errs = append(errs, fmt.Sprintf("current begins %d + duration %d != next begins %d",
			cur.Begins.Absolute, cur.Duration, next.Begins.Absolute))
	}
	if s.Today < cur.Begins.Absolute || s.Today >= next.Begins.Absolute {
		errs = append(errs, fmt.Sprintf("day %d outside current season [%d, %d)",
			s.Today, cur.Begins.Absolute, next.Begins.Absolute))
	}
	if cur.Day != s.Today-cur.Begins.Absolute+1 {
		errs = append(errs, fmt.Sprintf("current day %d, want %d", cur.Day, s.Today-cur.Begins.Absolute+1))
	}
	if cur.Begins.Relative != cur.Begins.Absolute-s.Today {
		errs = append(errs, fmt.Sprintf("current relative %d, want %d", cur.Begins.Relative, cur.Begins.Absolute-s.Today))
	}
	if next.Begins.Relative != next.Begins.Absolute-s.Today {
		errs = append(errs, fmt.Sprintf("next relative %d, want %d", next.Begins.Relative, next.Begins.Absolute-s.Today))
	}
	if s.Phase.Day < 1 || s.Phase.Day > s.Phase.Duration {
		errs = append(errs, fmt.Sprintf("phase day %d outside 1..%d", s.Phase.Day, s.Phase.Duration))
	}
	return errs
}

// checkTransition checks that a season change happens exactly where the
// previous day said it would.
func checkTransition(prev, cur calendar.Snapshot) []string {
	if prev.Season.Current.Label == cur.Season.Current.Label && cur.Today != prev.Season.Next.Begins.Absolute {
		return nil
	}

	var errs []string
	if cur.Today != prev.Season.Next.Begins.Absolute {
		errs = append(errs, fmt.Sprintf("season changed on day %d, predicted %d",
			cur.Today, prev.Season.Next.Begins.Absolute))
	}
	if cur.Season.Current.Label != prev.Season.Next.Label {
		errs = append(errs, fmt.Sprintf("season on day %d is %q, predicted %q",
			cur.Today, cur.Season.Current.Label, prev.Season.Next.Label))
	}
	return errs
}
