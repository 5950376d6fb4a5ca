package calendar

// Pace is a named game-speed setting that scales season lengths.
type Pace string

const (
	PaceVeryShort Pace = "very short"
	PaceShort     Pace = "short"
	PaceDefault   Pace = "default"
	PaceLong      Pace = "long"
	PaceVeryLong  Pace = "very long"
)

// paceTable lists every recognized pace in display order. A nil lengths
// entry marks a pace the game has but whose day counts are not known yet;
// supporting one is a matter of filling in its lengths here.
var paceTable = []struct {
	pace    Pace
	lengths []int // base (non-RoG) season lengths, in game order
}{
	{PaceVeryShort, nil},
	{PaceShort, nil},
	{PaceDefault, []int{20, 16}},
	{PaceLong, nil},
	{PaceVeryLong, nil},
}

// Paces returns every recognized pace, implemented or not.
func Paces() []Pace {
	out := make([]Pace, len(paceTable))
	for i, p := range paceTable {
		out[i] = p.pace
	}
	return out
}

// Implemented reports whether season lengths are known for the pace.
func (p Pace) Implemented() bool {
	for _, entry := range paceTable {
		if entry.pace == p {
			return entry.lengths != nil
		}
	}
	return false
}

// paceLengths returns a copy of the base season lengths for a pace.
func paceLengths(p Pace) ([]int, error) {
	for _, entry := range paceTable {
		if entry.pace != p {
			continue
		}
		if entry.lengths == nil {
			return nil, &ValidationError{Field: FieldPace, Value: string(p), Err: ErrPaceNotImplemented}
		}
		return append([]int(nil), entry.lengths...), nil
	}

	names := make([]string, len(paceTable))
	for i, entry := range paceTable {
		names[i] = string(entry.pace)
	}
	return nil, &ValidationError{
		Field: FieldPace,
		Value: string(p),
		Err:   ErrInvalidPace,
		Hint:  suggest(string(p), names),
	}
}
