package database

import (
	"database/sql"
	"fmt"

	"github.com/username/ridecost/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

const createTableStatement = `
CREATE TABLE IF NOT EXISTS ride_imports (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	total_rides INTEGER NOT NULL,
	imported_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rides (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	import_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	route TEXT NOT NULL,
	date TEXT NOT NULL,
	daytype TEXT NOT NULL,
	rides INTEGER NOT NULL,
	year INTEGER,
	FOREIGN KEY(import_id) REFERENCES ride_imports(id),
	UNIQUE(import_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_rides_route ON rides(route);
`

// InitDB opens the SQLite database at databasePath into DB and makes sure the
// ride tables exist.
func InitDB(databasePath string) error {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	logger.L.Info("Checking database migrations", "databasePath", databasePath)
	if err := migrateRidesTable(db); err != nil {
		db.Close()
		return err
	}

	if _, err := db.Exec(createTableStatement); err != nil {
		logger.L.Error("failed to create tables", "error", err)
		db.Close()
		return fmt.Errorf("failed to create tables: %w", err)
	}

	DB = db
	logger.L.Info("Database tables ensured/created.")
	return nil
}

// Close closes DB if it was opened.
func Close() error {
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}

// migrateRidesTable adds columns introduced after the first schema to an
// existing rides table.
func migrateRidesTable(db *sql.DB) error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='rides'").Scan(&tableName)
	if err == sql.ErrNoRows {
		logger.L.Info("rides table does not exist, no migration needed as table will be created.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking for rides table: %w", err)
	}

	columns, err := tableColumns(db, "rides")
	if err != nil {
		return err
	}

	if !columns["year"] {
		if _, err := db.Exec("ALTER TABLE rides ADD COLUMN year INTEGER"); err != nil {
			logger.L.Error("Error adding year column", "error", err)
			return fmt.Errorf("adding year column: %w", err)
		}
		logger.L.Info("Added year column to rides table")
	}
	return nil
}

func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("querying table schema for %s: %w", table, err)
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, notnull, pk int
		var name, dataType string
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scanning column info for %s: %w", table, err)
		}
		columnExists[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column info for %s: %w", table, err)
	}
	return columnExists, nil
}
