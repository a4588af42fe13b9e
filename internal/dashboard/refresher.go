package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Refresher recomputes the dashboard snapshot on a periodic interval.
// It is stateless: each tick independently rebuilds the full projection set.
type Refresher struct {
	interval time.Duration
	svc      *Service
}

// NewRefresher creates a periodic refresher for the dashboard service.
func NewRefresher(interval time.Duration, svc *Service) *Refresher {
	return &Refresher{
		interval: interval,
		svc:      svc,
	}
}

// Start begins periodic recomputation and runs until the context is
// cancelled. A cancelled in-flight recompute is discarded; no partial
// results are ever published.
func (r *Refresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("[Refresher] Starting dashboard refresher", "interval", r.interval)

	// Initial refresh so the dashboard is populated right after startup.
	r.refreshOnce(ctx)

	for {
		select {
		case <-ticker.C:
			r.refreshOnce(ctx)
		case <-ctx.Done():
			slog.Info("[Refresher] Stopping (context cancelled)")
			return nil
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	if _, err := r.svc.Refresh(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			slog.Info("[Refresher] Refresh discarded by cancellation")
			return
		}
		slog.Error("[Refresher] Refresh failed", "error", err)
	}
}
