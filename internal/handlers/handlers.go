package handlers

import (
	"context"

	"github.com/google/uuid"

	"asn2ip/internal/models"
)

// Runner executes a lookup run.
type Runner interface {
	Run(ctx context.Context, org string) (*models.Report, error)
}

// ArtifactReader returns the prefix artifact produced by a run.
type ArtifactReader interface {
	Read(runID uuid.UUID) ([]byte, error)
	LastRun() (uuid.UUID, bool)
}

// HistoryStore lists persisted runs.
type HistoryStore interface {
	ListRecentRuns(ctx context.Context, limit int) ([]models.RunSummary, error)
	GetRun(ctx context.Context, id uuid.UUID) (*models.RunSummary, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
