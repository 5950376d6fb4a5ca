package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so every query below
// runs the same way inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Returns the zero time if no known layout matches.
func parseTimestamp(s string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

const worldColumns = `
	id, name, today, is_rog, is_dst, pace, starting_season, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorld(row rowScanner) (*World, error) {
	var w World
	var pace, season, createdAt, updatedAt string

	err := row.Scan(
		&w.ID, &w.Name,
		&w.Today, &w.RoG, &w.DST, &pace, &season,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Pace = calendar.Pace(pace)
	w.StartingSeason = calendar.Season(season)
	w.CreatedAt = parseTimestamp(createdAt)
	w.UpdatedAt = parseTimestamp(updatedAt)
	return &w, nil
}

// =============================================================================
// World Queries
// =============================================================================

func createWorld(ctx context.Context, q querier, w *World) error {
	if err := w.normalize(); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO worlds (name, today, is_rog, is_dst, pace, starting_season)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.Name, w.Today, w.RoG, w.DST, string(w.Pace), string(w.StartingSeason))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: world %q already exists", ErrDuplicate, w.Name)
		}
		return fmt.Errorf("insert world: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	w.ID = id

	// Read back the database-assigned timestamps.
	stored, err := getWorld(ctx, q, w.Name)
	if err != nil {
		return err
	}
	*w = *stored
	return nil
}

func getWorld(ctx context.Context, q querier, name string) (*World, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+worldColumns+` FROM worlds WHERE name = ? COLLATE NOCASE`, name)

	w, err := scanWorld(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: world %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query world: %w", err)
	}
	return w, nil
}

func listWorlds(ctx context.Context, q querier) ([]World, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+worldColumns+` FROM worlds ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("query worlds: %w", err)
	}
	defer rows.Close()

	worlds := []World{}
	for rows.Next() {
		w, err := scanWorld(rows)
		if err != nil {
			return nil, fmt.Errorf("scan world: %w", err)
		}
		worlds = append(worlds, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worlds: %w", err)
	}
	return worlds, nil
}

// saveSettings writes the settings of an existing world back by ID.
func saveSettings(ctx context.Context, q querier, w *World) error {
	result, err := q.ExecContext(ctx, `
		UPDATE worlds
		SET today = ?, is_rog = ?, is_dst = ?, pace = ?, starting_season = ?,
		    updated_at = datetime('now')
		WHERE id = ?
	`, w.Today, w.RoG, w.DST, string(w.Pace), string(w.StartingSeason), w.ID)
	if err != nil {
		return fmt.Errorf("update world: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: world %q", ErrNotFound, w.Name)
	}
	return nil
}

// updateWorld applies ch through the calendar setters, so the stored
// settings get the same cascades and validation as a live calendar.
// On any error nothing is written.
func updateWorld(ctx context.Context, q querier, name string, ch calendar.Change) (*World, error) {
	w, err := getWorld(ctx, q, name)
	if err != nil {
		return nil, err
	}

	cal, err := w.Calendar()
	if err != nil {
		return nil, fmt.Errorf("stored world %q: %w", name, err)
	}
	if err := cal.Update(ch); err != nil {
		return nil, err
	}

	w.Settings = cal.Settings()
	if err := saveSettings(ctx, q, w); err != nil {
		return nil, err
	}
	return getWorld(ctx, q, w.Name)
}

func advanceWorld(ctx context.Context, q querier, name string, days int64) (*World, error) {
	if days < -calendar.MaxDay || days > calendar.MaxDay {
		return nil, &calendar.ValidationError{
			Field: "days",
			Value: days,
			Err:   calendar.ErrInvalidDay,
		}
	}

	w, err := getWorld(ctx, q, name)
	if err != nil {
		return nil, err
	}
	today := w.Today + days
	return updateWorld(ctx, q, name, calendar.Change{Today: &today})
}

func deleteWorld(ctx context.Context, q querier, name string) error {
	result, err := q.ExecContext(ctx, `DELETE FROM worlds WHERE name = ? COLLATE NOCASE`, name)
	if err != nil {
		return fmt.Errorf("delete world: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: world %q", ErrNotFound, name)
	}
	return nil
}

// =============================================================================
// DB methods
// =============================================================================

// CreateWorld validates and inserts a world. The settings are normalized
// before insert and w is updated with the stored row.
// Returns ErrDuplicate if the name (case-insensitively) is taken.
func (db *DB) CreateWorld(ctx context.Context, w *World) error {
	return createWorld(ctx, db.DB, w)
}

// GetWorld looks a world up by name, ignoring case.
// Returns ErrNotFound if there is none.
func (db *DB) GetWorld(ctx context.Context, name string) (*World, error) {
	return getWorld(ctx, db.DB, name)
}

// ListWorlds returns all worlds ordered by name.
func (db *DB) ListWorlds(ctx context.Context) ([]World, error) {
	return listWorlds(ctx, db.DB)
}

// UpdateWorld applies a partial settings change in one transaction.
func (db *DB) UpdateWorld(ctx context.Context, name string, ch calendar.Change) (*World, error) {
	var w *World
	err := db.WithTx(ctx, func(tx *Tx) error {
		var err error
		w, err = tx.UpdateWorld(ctx, name, ch)
		return err
	})
	return w, err
}

// AdvanceWorld moves a world's day forward by days (backward if negative)
// in one transaction. The resulting day must still be valid.
func (db *DB) AdvanceWorld(ctx context.Context, name string, days int64) (*World, error) {
	var w *World
	err := db.WithTx(ctx, func(tx *Tx) error {
		var err error
		w, err = tx.AdvanceWorld(ctx, name, days)
		return err
	})
	return w, err
}

// DeleteWorld removes a world. Returns ErrNotFound if there is none.
func (db *DB) DeleteWorld(ctx context.Context, name string) error {
	return deleteWorld(ctx, db.DB, name)
}

// =============================================================================
// Tx methods
// =============================================================================

func (tx *Tx) CreateWorld(ctx context.Context, w *World) error {
	return createWorld(ctx, tx.Tx, w)
}

func (tx *Tx) GetWorld(ctx context.Context, name string) (*World, error) {
	return getWorld(ctx, tx.Tx, name)
}

func (tx *Tx) UpdateWorld(ctx context.Context, name string, ch calendar.Change) (*World, error) {
	return updateWorld(ctx, tx.Tx, name, ch)
}

func (tx *Tx) AdvanceWorld(ctx context.Context, name string, days int64) (*World, error) {
	return advanceWorld(ctx, tx.Tx, name, days)
}

func (tx *Tx) DeleteWorld(ctx context.Context, name string) error {
	return deleteWorld(ctx, tx.Tx, name)
}
