package storage

import (
	"context"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

// Store defines persistence operations for search run outcomes.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	SaveProgress(ctx context.Context, runID string, progress []model.GenerationStats) error
	GetProgress(ctx context.Context, runID string) ([]model.GenerationStats, bool, error)
	SaveTrace(ctx context.Context, runID string, trace []model.TracePoint) error
	GetTrace(ctx context.Context, runID string) ([]model.TracePoint, bool, error)
}
