package analytics

import (
	"log/slog"

	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
)

// FilterFulfilled returns the subset of records representing a successfully
// completed fulfillment. Malformed records (zero timestamp, negative
// quantity, missing names) are dropped per-record rather than aborting the
// computation. The input is never mutated; the result preserves input order.
func FilterFulfilled(records []*v1.FulfillmentRecord) []*v1.FulfillmentRecord {
	if len(records) == 0 {
		return nil
	}

	out := make([]*v1.FulfillmentRecord, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.Status != v1.StatusSuccess {
			continue
		}
		if err := rec.Validate(); err != nil {
			slog.Warn("Skipping malformed fulfillment record",
				"record_id", rec.ID,
				"error", err,
			)
			continue
		}
		out = append(out, rec)
	}
	return out
}
