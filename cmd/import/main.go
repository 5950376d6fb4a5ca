// Command import loads a TOML collection of worlds into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -file data/worlds.toml -db data/worlds.db
//
// The file holds [[world]] tables with the same keys as a dstcal world file:
//
//	[[world]]
//	name = "my world"
//	today = 42
//	rog = true
//	starting_season = "autumn"
//
// This tool:
// 1. Parses the TOML file
// 2. Creates/opens the SQLite database
// 3. Runs migrations to ensure schema is current
// 4. Imports all worlds in a single transaction
//
// Any invalid or duplicate world aborts the whole import. With -replace,
// worlds that already exist are overwritten instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/dontstarve-calendar/internal/database"
	"github.com/zapponejosh/dontstarve-calendar/internal/logger"
	"github.com/zapponejosh/dontstarve-calendar/internal/worldfile"
)

func main() {
	filePath := flag.String("file", "data/worlds.toml", "Path to TOML world collection")
	dbPath := flag.String("db", "data/worlds.db", "Path to SQLite database")
	replace := flag.Bool("replace", false, "Overwrite worlds that already exist")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := "info"
	if *verbose {
		logLevel = "debug"
	}
	log := logger.New(os.Stdout, logLevel, "text")

	stats, err := run(context.Background(), *filePath, *dbPath, *replace, log)
	if err != nil {
		log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Worlds created:   %d\n", stats.Created)
	fmt.Printf("Worlds replaced:  %d\n", stats.Replaced)
	fmt.Printf("Worlds in store:  %d\n", stats.Total)
	fmt.Printf("Time elapsed:     %v\n", stats.Elapsed.Round(time.Millisecond))
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Created  int
	Replaced int
	Total    int
	Elapsed  time.Duration
}

func run(ctx context.Context, filePath, dbPath string, replace bool, log *slog.Logger) (ImportStats, error) {
	var stats ImportStats
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse TOML
	// =========================================================================
	log.Info("reading world file", slog.String("path", filePath))

	collection, err := worldfile.LoadCollection(filePath)
	if err != nil {
		return stats, err
	}
	log.Info("parsed world file", slog.Int("worlds", len(collection.Worlds)))

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	log.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), log)
	if err != nil {
		return stats, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return stats, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import worlds in a transaction
	// =========================================================================
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return importWorlds(ctx, tx, collection.Worlds, replace, log, &stats)
	})
	if err != nil {
		return stats, fmt.Errorf("import worlds: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	worlds, err := db.ListWorlds(ctx)
	if err != nil {
		return stats, fmt.Errorf("list worlds: %w", err)
	}
	stats.Total = len(worlds)
	stats.Elapsed = time.Since(startTime)

	log.Info("import verified",
		slog.Int("created", stats.Created),
		slog.Int("replaced", stats.Replaced),
		slog.Int("total", stats.Total),
		slog.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

// importWorlds stores each world, stopping at the first failure so the
// caller's transaction rolls everything back.
func importWorlds(ctx context.Context, tx *database.Tx, worlds []worldfile.World, replace bool, log *slog.Logger, stats *ImportStats) error {
	for i, entry := range worlds {
		existed := false
		if replace {
			err := tx.DeleteWorld(ctx, entry.Name)
			switch {
			case err == nil:
				existed = true
			case !database.IsNotFound(err):
				return fmt.Errorf("replace world %d (%s): %w", i+1, entry.Name, err)
			}
		}

		w := &database.World{Name: entry.Name, Settings: entry.Settings()}
		if err := tx.CreateWorld(ctx, w); err != nil {
			return fmt.Errorf("create world %d (%s): %w", i+1, entry.Name, err)
		}
		if existed {
			stats.Replaced++
		} else {
			stats.Created++
		}

		log.Debug("imported world",
			slog.String("name", w.Name),
			slog.Int64("today", w.Today),
			slog.Bool("rog", w.RoG),
			slog.Bool("dst", w.DST),
		)
	}
	return nil
}
