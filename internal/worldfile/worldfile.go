// Package worldfile reads and writes worlds as TOML.
//
// A single world file looks like:
//
//	name = "my world"
//	today = 42
//	rog = true
//	dst = false
//	pace = "default"
//	starting_season = "autumn"
//
// A collection file holds any number of [[world]] tables with the same keys.
package worldfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

// World is one world as written in TOML. Omitted keys take the calendar
// defaults.
type World struct {
	Name           string `toml:"name"`
	Today          int64  `toml:"today"`
	RoG            bool   `toml:"rog"`
	DST            bool   `toml:"dst"`
	Pace           string `toml:"pace,omitempty"`
	StartingSeason string `toml:"starting_season,omitempty"`
}

// Collection is a file of [[world]] tables.
type Collection struct {
	Worlds []World `toml:"world"`
}

// Settings returns the calendar settings the world describes.
func (w World) Settings() calendar.Settings {
	return calendar.Settings{
		Today:          w.Today,
		RoG:            w.RoG,
		DST:            w.DST,
		Pace:           calendar.Pace(w.Pace),
		StartingSeason: calendar.Season(w.StartingSeason),
	}
}

// FromSettings builds a world entry from a name and settings.
func FromSettings(name string, s calendar.Settings) World {
	return World{
		Name:           name,
		Today:          s.Today,
		RoG:            s.RoG,
		DST:            s.DST,
		Pace:           string(s.Pace),
		StartingSeason: string(s.StartingSeason),
	}
}

// Load reads a single-world file and checks that its settings are valid.
func Load(path string) (World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return World{}, fmt.Errorf("reading world file: %w", err)
	}

	var w World
	if err := decodeStrict(data, &w); err != nil {
		return World{}, fmt.Errorf("parsing world file %s: %w", path, err)
	}
	if _, err := calendar.Compute(w.Settings()); err != nil {
		return World{}, fmt.Errorf("world file %s: %w", path, err)
	}
	return w, nil
}

// LoadCollection reads a [[world]] collection. Entries are not validated
// here; importers validate each one as they store it.
func LoadCollection(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, fmt.Errorf("reading world collection: %w", err)
	}

	var c Collection
	if err := decodeStrict(data, &c); err != nil {
		return Collection{}, fmt.Errorf("parsing world collection %s: %w", path, err)
	}
	if len(c.Worlds) == 0 {
		return Collection{}, fmt.Errorf("world collection %s: no [[world]] entries", path)
	}
	return c, nil
}

// Save writes w to path atomically (write temp + rename).
func Save(path string, w World) error {
	data, err := toml.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshaling world: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp world file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming world file: %w", err)
	}
	return nil
}

// decodeStrict rejects keys that do not map to a field, so a typo such as
// "starting_seson" is reported instead of silently ignored.
func decodeStrict(data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return errors.New(strict.String())
	}
	return err
}
