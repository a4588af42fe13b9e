package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFulfillmentRecord_Validate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	valid := FulfillmentRecord{
		ID:           "rec-1",
		ItemName:     "Gift Card",
		Quantity:     2,
		CustomerName: "alice",
		Status:       StatusSuccess,
		CreatedAt:    now,
	}

	tests := []struct {
		name    string
		mutate  func(r *FulfillmentRecord)
		wantErr string
	}{
		{
			name:   "valid record",
			mutate: func(_ *FulfillmentRecord) {},
		},
		{
			name:   "zero quantity is allowed",
			mutate: func(r *FulfillmentRecord) { r.Quantity = 0 },
		},
		{
			name:    "missing item name",
			mutate:  func(r *FulfillmentRecord) { r.ItemName = "" },
			wantErr: "item_name is required",
		},
		{
			name:    "missing customer name",
			mutate:  func(r *FulfillmentRecord) { r.CustomerName = "" },
			wantErr: "customer_name is required",
		},
		{
			name:    "unknown status",
			mutate:  func(r *FulfillmentRecord) { r.Status = "Shipped" },
			wantErr: "unknown status",
		},
		{
			name:    "negative quantity",
			mutate:  func(r *FulfillmentRecord) { r.Quantity = -1 },
			wantErr: "quantity must not be negative",
		},
		{
			name:    "zero timestamp",
			mutate:  func(r *FulfillmentRecord) { r.CreatedAt = time.Time{} },
			wantErr: "created_at is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := valid
			tc.mutate(&rec)
			err := rec.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidStatus(t *testing.T) {
	require.True(t, ValidStatus(StatusPending))
	require.True(t, ValidStatus(StatusSuccess))
	require.True(t, ValidStatus(StatusFailed))
	require.False(t, ValidStatus("success"))
	require.False(t, ValidStatus(""))
}
