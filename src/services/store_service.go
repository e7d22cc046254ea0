// src/services/store_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/username/ridecost/src/logger"
	"github.com/username/ridecost/src/models"
	"github.com/username/ridecost/src/utils"
)

type rideStoreImpl struct {
	db *sql.DB
}

func NewRideStore(db *sql.DB) RideStore {
	return &rideStoreImpl{db: db}
}

// Import writes records as one batch in a single transaction and returns the batch ID.
// Rows keep their file order through seq.
func (s *rideStoreImpl) Import(ctx context.Context, source string, records []models.RideRecord) (uuid.UUID, error) {
	batchID := uuid.New()
	totalRides := 0
	for _, r := range records {
		totalRides += r.Rides
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.ExecContext(ctx,
		`INSERT INTO ride_imports (id, source, row_count, total_rides, imported_at) VALUES (?, ?, ?, ?, ?)`,
		batchID.String(), source, len(records), totalRides, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return uuid.Nil, fmt.Errorf("error inserting import batch: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO rides (import_id, seq, route, date, daytype, rides, year) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var year sql.NullInt64
		if y, err := utils.YearFromDate(r.Date); err == nil {
			year = sql.NullInt64{Int64: int64(y), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, batchID.String(), i, r.Route, r.Date, r.DayType, r.Rides, year); err != nil {
			return uuid.Nil, fmt.Errorf("error inserting ride %d (route %s): %w", i, r.Route, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("error committing rides: %w", err)
	}

	logger.L.Info("Imported rides", "batchID", batchID, "source", source, "rows", len(records))
	return batchID, nil
}

// Load returns the records of one batch in their original order.
func (s *rideStoreImpl) Load(ctx context.Context, batchID uuid.UUID) ([]models.RideRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT route, date, daytype, rides FROM rides WHERE import_id = ? ORDER BY seq`, batchID.String())
	if err != nil {
		return nil, fmt.Errorf("error querying rides for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	records := make([]models.RideRecord, 0)
	for rows.Next() {
		var r models.RideRecord
		if err := rows.Scan(&r.Route, &r.Date, &r.DayType, &r.Rides); err != nil {
			return nil, fmt.Errorf("error scanning ride: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rides: %w", err)
	}
	return records, nil
}

// Batches lists every import, oldest first.
func (s *rideStoreImpl) Batches(ctx context.Context) ([]ImportBatch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, row_count, total_rides, imported_at FROM ride_imports ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("error querying import batches: %w", err)
	}
	defer rows.Close()

	var batches []ImportBatch
	for rows.Next() {
		var b ImportBatch
		var id, importedAt string
		if err := rows.Scan(&id, &b.Source, &b.RowCount, &b.TotalRides, &importedAt); err != nil {
			return nil, fmt.Errorf("error scanning import batch: %w", err)
		}
		if b.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid batch id %q: %w", id, err)
		}
		if b.ImportedAt, err = time.Parse(time.RFC3339Nano, importedAt); err != nil {
			return nil, fmt.Errorf("invalid import time %q: %w", importedAt, err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import batches: %w", err)
	}
	return batches, nil
}
