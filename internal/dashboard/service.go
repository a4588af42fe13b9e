package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
	"github.com/pulseboard-lab/pulseboard/internal/core/analytics"
	"github.com/pulseboard-lab/pulseboard/internal/core/storage"
	"golang.org/x/sync/singleflight"
)

const (
	snapshotBatchSize     = 5000
	maxSnapshotIterations = 200 // Limit to prevent timeout/OOM on runaway tables
)

// Snapshot is one full recomputation of the dashboard projections over a
// consistent record snapshot. Published atomically: readers always see
// either the previous complete snapshot or the new one, never a partial.
type Snapshot struct {
	Projections analytics.DashboardProjections `json:"projections"`
	RecordCount int                            `json:"record_count"`
	RefreshedAt time.Time                      `json:"refreshed_at"`
}

// Service serves the dashboard read path. Projections are recomputed in
// full from scratch per refresh; there is no incremental state to go stale.
type Service struct {
	store   storage.RecordStore
	builder *analytics.Builder
	nowFn   func() time.Time

	mu     sync.RWMutex
	latest Snapshot

	refreshGroup singleflight.Group // Dedupe concurrent refreshes
}

// NewService creates a dashboard service. The initial snapshot is the
// empty projection set, so reads are well-formed before the first refresh.
func NewService(store storage.RecordStore, builder *analytics.Builder) *Service {
	if builder == nil {
		builder = analytics.NewBuilder(nil, nil, nil)
	}
	return &Service{
		store:   store,
		builder: builder,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		latest: Snapshot{Projections: builder.Build(nil)},
	}
}

// Latest returns the most recently published snapshot.
func (s *Service) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Refresh rebuilds all projections from the full record collection and
// publishes the result. Concurrent callers are deduped onto one
// recomputation via singleflight.
//
// Retrieval failure is fail-soft: the error is logged and the engine is
// invoked with an empty collection, so readers get empty projections
// rather than an error. Context cancellation discards the recompute
// without publishing a partial result.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	result, err, _ := s.refreshGroup.Do("refresh", func() (interface{}, error) {
		records, loadErr := s.loadRecords(ctx)
		if loadErr != nil {
			if ctx.Err() != nil {
				return Snapshot{}, ctx.Err()
			}
			slog.Error("Record retrieval failed, refreshing with empty collection", "error", loadErr)
			records = nil
		}

		snapshot := Snapshot{
			Projections: s.builder.Build(records),
			RecordCount: len(records),
			RefreshedAt: s.nowFn(),
		}

		s.mu.Lock()
		s.latest = snapshot
		s.mu.Unlock()

		slog.Info("Dashboard snapshot refreshed",
			"record_count", snapshot.RecordCount,
			"months", len(snapshot.Projections.FulfillmentsOverTime),
			"matrix_series", len(snapshot.Projections.ItemMonthlyMatrix.Series),
		)

		return snapshot, nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return result.(Snapshot), nil
}

// loadRecords pages through the whole record table in ingest_seq order to
// assemble an immutable full snapshot for one recomputation.
func (s *Service) loadRecords(ctx context.Context) ([]*v1.FulfillmentRecord, error) {
	var (
		records []*v1.FulfillmentRecord
		cursor  int64
	)

	for iterations := 0; ; iterations++ {
		if iterations >= maxSnapshotIterations {
			return nil, fmt.Errorf("snapshot load exceeded maximum iterations (%d batches, %d records total)",
				maxSnapshotIterations, len(records))
		}

		batch, err := s.store.RetrieveRecordsAfterCursor(ctx, cursor, snapshotBatchSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			return records, nil
		}

		records = append(records, batch...)
		cursor = batch[len(batch)-1].IngestSeq

		if len(batch) < snapshotBatchSize {
			return records, nil
		}
	}
}
