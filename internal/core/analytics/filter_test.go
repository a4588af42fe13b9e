package analytics

import (
	"testing"
	"time"

	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func record(item string, qty int64, customer, status string, createdAt time.Time) *v1.FulfillmentRecord {
	return &v1.FulfillmentRecord{
		ID:           item + "-" + customer + "-" + createdAt.Format(time.RFC3339),
		ItemName:     item,
		Quantity:     qty,
		CustomerName: customer,
		Status:       status,
		CreatedAt:    createdAt,
	}
}

func TestFilterFulfilled(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		records   []*v1.FulfillmentRecord
		wantItems []string
	}{
		{
			name:      "nil input yields empty output",
			records:   nil,
			wantItems: nil,
		},
		{
			name: "only success records pass",
			records: []*v1.FulfillmentRecord{
				record("A", 3, "alice", v1.StatusSuccess, now),
				record("B", 5, "bob", v1.StatusPending, now),
				record("C", 2, "carol", v1.StatusFailed, now),
			},
			wantItems: []string{"A"},
		},
		{
			name: "malformed records dropped per-record",
			records: []*v1.FulfillmentRecord{
				record("A", 3, "alice", v1.StatusSuccess, now),
				record("B", -1, "bob", v1.StatusSuccess, now),          // negative quantity
				record("C", 2, "carol", v1.StatusSuccess, time.Time{}), // zero timestamp
				nil,
				record("D", 1, "dave", v1.StatusSuccess, now),
			},
			wantItems: []string{"A", "D"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterFulfilled(tc.records)

			// Output is always a subset of the input, never larger.
			require.LessOrEqual(t, len(got), len(tc.records))

			items := make([]string, 0, len(got))
			for _, rec := range got {
				items = append(items, rec.ItemName)
			}
			require.Equal(t, tc.wantItems, nilIfEmpty(items))
		})
	}
}

func TestFilterFulfilled_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	records := []*v1.FulfillmentRecord{
		record("A", 3, "alice", v1.StatusSuccess, now),
		record("B", 5, "bob", v1.StatusFailed, now),
	}

	before := make([]v1.FulfillmentRecord, len(records))
	for i, rec := range records {
		before[i] = *rec
	}

	FilterFulfilled(records)

	for i, rec := range records {
		require.Equal(t, before[i], *rec)
	}
}

func nilIfEmpty(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return items
}
