package calendar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Fields named in validation errors.
const (
	FieldToday          = "today"
	FieldPace           = "pace"
	FieldStartingSeason = "starting_season"
)

var (
	// ErrInvalidDay is returned for a day that is not a positive, whole, safe integer.
	ErrInvalidDay = errors.New("today is required and must be a safe, positive integer")

	// ErrInvalidPace is returned for a pace name that is not recognized at all.
	ErrInvalidPace = errors.New("invalid pace value")

	// ErrPaceNotImplemented is returned for a recognized pace without known season lengths.
	ErrPaceNotImplemented = errors.New("pace value not implemented")

	// ErrInvalidSeason is returned for a starting season outside the active season set.
	ErrInvalidSeason = errors.New("season is not part of the active season set")
)

// ValidationError reports a rejected configuration value.
// Err is one of the sentinel errors above.
type ValidationError struct {
	Field   string
	Value   any
	Err     error
	Allowed []string // valid choices, when the field is an enum
	Hint    string   // closest valid choice, if any is close enough
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Err, e.Value)
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&b, " (must be one of %s)", strings.Join(e.Allowed, ", "))
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "; did you mean %q?", e.Hint)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// suggest returns the candidate closest to input, or "" when nothing is
// close enough to be a plausible typo.
func suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	best := ""
	bestDist := -1
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if dist > suggestLimit(len(c)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
