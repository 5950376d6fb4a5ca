package calendar

import (
	"math"
	"strconv"
	"strings"
)

// MaxDay is the largest accepted day number: the largest integer a
// float64 (and so a JSON number) represents exactly.
const MaxDay int64 = 1<<53 - 1

func validateDay(day int64) error {
	if day < 1 || day > MaxDay {
		return &ValidationError{Field: FieldToday, Value: day, Err: ErrInvalidDay}
	}
	return nil
}

// ParseDay parses a day number from text. Whole numbers written with a
// fractional part ("12.0") are accepted; anything else that is not a
// positive safe integer is a ValidationError.
func ParseDay(s string) (int64, error) {
	s = strings.TrimSpace(s)

	if day, err := strconv.ParseInt(s, 10, 64); err == nil {
		if err := validateDay(day); err != nil {
			return 0, err
		}
		return day, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || f < 1 || f > float64(MaxDay) {
		return 0, &ValidationError{Field: FieldToday, Value: s, Err: ErrInvalidDay}
	}
	return int64(f), nil
}
