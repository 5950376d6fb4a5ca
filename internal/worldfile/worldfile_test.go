package worldfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
name = "my world"
today = 42
rog = true
dst = false
pace = "default"
starting_season = "autumn"
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := World{Name: "my world", Today: 42, RoG: true, Pace: "default", StartingSeason: "autumn"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	wantSettings := calendar.Settings{
		Today: 42, RoG: true,
		Pace: calendar.PaceDefault, StartingSeason: calendar.SeasonAutumn,
	}
	if got.Settings() != wantSettings {
		t.Errorf("Settings() = %+v, want %+v", got.Settings(), wantSettings)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  error
		contains string
	}{
		{name: "unknown key", content: "today = 1\nstarting_seson = \"winter\"\n", contains: "starting_seson"},
		{name: "bad toml", content: "today = \n", contains: "parsing world file"},
		{name: "missing today", content: "name = \"x\"\n", wantErr: calendar.ErrInvalidDay},
		{name: "spring without rog", content: "today = 3\nstarting_season = \"spring\"\n", wantErr: calendar.ErrInvalidSeason},
		{name: "unimplemented pace", content: "today = 3\npace = \"very long\"\n", wantErr: calendar.ErrPaceNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.contains)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestLoadCollection(t *testing.T) {
	path := writeFile(t, `
[[world]]
name = "base"
today = 1

[[world]]
name = "together"
today = 11
dst = true
`)

	got, err := LoadCollection(path)
	if err != nil {
		t.Fatalf("LoadCollection() error: %v", err)
	}

	want := Collection{Worlds: []World{
		{Name: "base", Today: 1},
		{Name: "together", Today: 11, DST: true},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadCollection() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCollection_Empty(t *testing.T) {
	if _, err := LoadCollection(writeFile(t, "# nothing here\n")); err == nil {
		t.Error("LoadCollection() of an empty file succeeded, want error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.toml")
	settings := calendar.Settings{Today: 73, RoG: true, DST: true, Pace: calendar.PaceDefault, StartingSeason: calendar.SeasonWinter}

	if err := Save(path, FromSettings("cave", settings)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Name != "cave" || got.Settings() != settings {
		t.Errorf("round trip = %+v, want cave %+v", got, settings)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}
