package jobs

import (
	"context"
	"log/slog"
	"time"
)

// RunPruner deletes history entries older than a cutoff.
type RunPruner interface {
	DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// HistoryPruner periodically removes run history older than the retention window.
type HistoryPruner struct {
	store     RunPruner
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewHistoryPruner creates a new history pruner.
func NewHistoryPruner(store RunPruner, interval, retention time.Duration) *HistoryPruner {
	return &HistoryPruner{
		store:     store,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

// Start begins the background prune loop. It returns when ctx is done.
func (p *HistoryPruner) Start(ctx context.Context) {
	slog.Info("history pruner started", "interval", p.interval, "retention", p.retention)

	// Run immediately on start
	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("history pruner stopped")
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *HistoryPruner) prune(ctx context.Context) {
	cutoff := p.now().Add(-p.retention)
	n, err := p.store.DeleteRunsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("history pruner: failed to delete runs", "error", err)
		return
	}
	if n > 0 {
		slog.Info("history pruner: deleted runs", "count", n, "cutoff", cutoff)
	}
}
