package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/username/ridecost/src/models"
)

// RideService reads ride files through a cache keyed by file identity and shape.
type RideService interface {
	Read(path string, shape models.Shape) (*models.RideSet, error)
	Invalidate(path string)
}

// CostService computes portfolio totals from validated input files.
type CostService interface {
	TotalCost(path string) (float64, error)
}

// ImportBatch describes one import of a ride file into the store.
type ImportBatch struct {
	ID         uuid.UUID
	Source     string
	RowCount   int
	TotalRides int
	ImportedAt time.Time
}

// RideStore persists ride records in import batches.
type RideStore interface {
	Import(ctx context.Context, source string, records []models.RideRecord) (uuid.UUID, error)
	Load(ctx context.Context, batchID uuid.UUID) ([]models.RideRecord, error)
	Batches(ctx context.Context) ([]ImportBatch, error)
}
