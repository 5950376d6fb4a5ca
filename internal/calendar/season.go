package calendar

// Season is the name of a yearly period.
type Season string

const (
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
)

// Season tables, in game order. RoG doubles the base pace lengths,
// so index i of a table always lines up with index i of the lengths.
var (
	baseSeasons = []Season{SeasonSummer, SeasonWinter}
	rogSeasons  = []Season{SeasonAutumn, SeasonWinter, SeasonSpring, SeasonSummer}
)

// SeasonsFor returns the season set that is active for the given ruleset,
// in game order (not rotated).
func SeasonsFor(rog bool) []Season {
	if rog {
		return append([]Season(nil), rogSeasons...)
	}
	return append([]Season(nil), baseSeasons...)
}

// seasonRing is a fixed season table viewed from a start offset.
// Rotating the view never copies or reorders the underlying tables.
type seasonRing struct {
	names   []Season
	lengths []int
	offset  int
}

// newSeasonRing builds the ring for a ruleset and pace, starting at index 0.
func newSeasonRing(rog bool, pace Pace) (seasonRing, error) {
	base, err := paceLengths(pace)
	if err != nil {
		return seasonRing{}, err
	}

	names := baseSeasons
	lengths := base
	if rog {
		names = rogSeasons
		lengths = append(append([]int(nil), base...), base...)
	}

	return seasonRing{names: names, lengths: lengths}, nil
}

func (r seasonRing) len() int {
	return len(r.names)
}

// at returns the season and its length at position i of the rotated view.
func (r seasonRing) at(i int) (Season, int) {
	j := (r.offset + i) % len(r.names)
	return r.names[j], r.lengths[j]
}

// indexOf returns the table index of s, or -1.
func (r seasonRing) indexOf(s Season) int {
	for i, name := range r.names {
		if name == s {
			return i
		}
	}
	return -1
}

// startingAt returns the same ring with s as its first season.
func (r seasonRing) startingAt(s Season) (seasonRing, bool) {
	i := r.indexOf(s)
	if i < 0 {
		return r, false
	}
	r.offset = i
	return r, true
}

func (r seasonRing) yearLength() int64 {
	var total int64
	for _, l := range r.lengths {
		total += int64(l)
	}
	return total
}

// view returns the rotated season names and lengths.
func (r seasonRing) view() ([]Season, []int) {
	names := make([]Season, r.len())
	lengths := make([]int, r.len())
	for i := range names {
		names[i], lengths[i] = r.at(i)
	}
	return names, lengths
}

// SeasonStart locates the first day of a season.
// Absolute is the 1-indexed day number; Relative is its signed offset from today.
type SeasonStart struct {
	Absolute int64 `json:"absolute"`
	Relative int64 `json:"relative"`
}

// SeasonInfo describes one season relative to today.
type SeasonInfo struct {
	Label    Season      `json:"label"`
	Begins   SeasonStart `json:"begins"`
	Duration int         `json:"duration"`
}

// CurrentSeason is the season today falls in.
// Day is the 1-indexed position of today within the season.
type CurrentSeason struct {
	SeasonInfo
	Day int64 `json:"day"`
}

// SeasonPair is the season output: where today is and what comes next.
type SeasonPair struct {
	Current CurrentSeason `json:"current"`
	Next    SeasonInfo    `json:"next"`
}

// computeSeason walks the rotated season lengths to find the season that
// contains today and the start of the one after it.
func computeSeason(today int64, ring seasonRing) SeasonPair {
	// 0-indexed position within the year
	reduced := (today - 1) % ring.yearLength()

	var end int64
	i := 0
	for {
		_, l := ring.at(i)
		end += int64(l)
		i++
		if reduced < end || i >= ring.len() {
			break
		}
	}

	curLabel, curLen := ring.at(i - 1)
	nextLabel, nextLen := ring.at(i % ring.len())

	var pair SeasonPair

	pair.Next.Label = nextLabel
	pair.Next.Duration = nextLen
	pair.Next.Begins.Absolute = today + end - reduced
	pair.Next.Begins.Relative = pair.Next.Begins.Absolute - today

	pair.Current.Label = curLabel
	pair.Current.Duration = curLen
	pair.Current.Day = 1 + reduced - (end - int64(curLen))
	pair.Current.Begins.Absolute = 1 + today - pair.Current.Day
	pair.Current.Begins.Relative = pair.Current.Begins.Absolute - today

	return pair
}
