package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Worlds,
	2: migrationV2WorldNameIndex,
}

// migrationV1Worlds creates the saved-world table.
//
// A world stores only calendar settings; phase and season are always
// recomputed from them, never stored.
//
// The CHECK constraints mirror the calendar rules so that rows written
// outside the API (sqlite3 shell, imports) cannot break them:
//   - today is a positive safe integer (<= 2^53 - 1)
//   - is_dst implies is_rog
const migrationV1Worlds = `
-- ============================================================================
-- Table: worlds
-- ============================================================================
CREATE TABLE IF NOT EXISTS worlds (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Display name, unique, used in URLs
    name TEXT NOT NULL UNIQUE,

    -- Calendar settings
    today INTEGER NOT NULL CHECK (today >= 1 AND today <= 9007199254740991),
    is_rog INTEGER NOT NULL DEFAULT 0 CHECK (is_rog IN (0, 1)),
    is_dst INTEGER NOT NULL DEFAULT 0 CHECK (is_dst IN (0, 1)),
    pace TEXT NOT NULL DEFAULT 'default',
    starting_season TEXT NOT NULL DEFAULT 'summer',

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    CHECK (is_dst = 0 OR is_rog = 1)
);
`

// migrationV2WorldNameIndex makes name lookups case-insensitive.
const migrationV2WorldNameIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_worlds_name_nocase
    ON worlds(name COLLATE NOCASE);
`
