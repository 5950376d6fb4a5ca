package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

// MaxNameLength bounds world names, which appear in URLs.
const MaxNameLength = 64

// ErrInvalidName is returned for empty, overlong or slash-containing names.
var ErrInvalidName = errors.New("invalid world name")

// World is a saved calendar: a name plus the settings needed to recompute
// its phase and seasons. Settings are embedded so the JSON form is flat.
type World struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	calendar.Settings
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Calendar builds a live calendar from the stored settings.
func (w *World) Calendar() (*calendar.Calendar, error) {
	return calendar.New(w.Settings)
}

// normalize validates the name and settings, trims the name, and replaces
// the settings with their normalized form (defaults filled, DST => RoG).
func (w *World) normalize() error {
	if err := ValidateName(w.Name); err != nil {
		return err
	}
	w.Name = strings.TrimSpace(w.Name)

	cal, err := w.Calendar()
	if err != nil {
		return err
	}
	w.Settings = cal.Settings()
	return nil
}

// ValidateName checks that name is usable as a world name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	case len(name) > MaxNameLength:
		return fmt.Errorf("%w: name must be at most %d bytes", ErrInvalidName, MaxNameLength)
	case strings.ContainsAny(name, "/?#"):
		return fmt.Errorf("%w: name must not contain '/', '?' or '#'", ErrInvalidName)
	}
	return nil
}
