package calendar

// Lunar phases in cycle order.
var phaseNames = []string{
	"new moon",
	"waxing quarter",
	"first quarter",
	"waxing gibbous",
	"full moon",
	"waning gibbous",
	"last quarter",
	"waning quarter",
}

const (
	// standardPhaseDays is how long every phase lasts outside DST.
	standardPhaseDays = 2

	// dstCycleDays is the DST lunar cycle: new and full moon last one day,
	// the six phases between them three days each.
	dstCycleDays   = 20
	dstPhaseDays   = 3
	dstNewMoonDay  = 1
	dstFullMoonDay = 11
)

// Phases returns the lunar phase names in cycle order.
func Phases() []string {
	return append([]string(nil), phaseNames...)
}

// Phase is the phase output. Day is 1-indexed within the phase and
// Duration is how many days this phase instance lasts.
type Phase struct {
	Label    string `json:"label"`
	Day      int    `json:"day"`
	Duration int    `json:"duration"`
}

func computePhase(today int64, dst bool) Phase {
	if dst {
		return computePhaseDST(today)
	}
	return computePhaseStandard(today)
}

// computePhaseStandard: eight 2-day phases, a 16-day cycle.
func computePhaseStandard(today int64) Phase {
	idx := ((today - 1) / standardPhaseDays) % int64(len(phaseNames))
	return Phase{
		Label:    phaseNames[idx],
		Day:      standardPhaseDays - int(today%standardPhaseDays),
		Duration: standardPhaseDays,
	}
}

// computePhaseDST handles the 20-day cycle with 1-day new and full moons.
func computePhaseDST(today int64) Phase {
	// 1..20 rather than 0..19
	reduced := int(today % dstCycleDays)
	if reduced == 0 {
		reduced = dstCycleDays
	}

	switch reduced {
	case dstNewMoonDay:
		return Phase{Label: phaseNames[0], Day: 1, Duration: 1}
	case dstFullMoonDay:
		return Phase{Label: phaseNames[4], Day: 1, Duration: 1}
	}

	// Shift past the 1-day phases so every remaining phase divides into
	// 3-day blocks: +2 before the full moon, +4 after it.
	adjusted := reduced + 2
	if reduced > dstFullMoonDay {
		adjusted = reduced + 4
	}

	rem := adjusted % dstPhaseDays
	idx := adjusted / dstPhaseDays
	day := rem
	if rem == 0 {
		idx--
		day = dstPhaseDays
	}

	return Phase{Label: phaseNames[idx], Day: day, Duration: dstPhaseDays}
}
