package v1

import (
	"fmt"
	"time"
)

// FulfillmentStatus is the outcome of a reward fulfillment transaction.
// Only StatusSuccess is counted by the analytics engine.
const (
	StatusPending = "Pending"
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// ValidStatus reports whether s is a recognized fulfillment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// FulfillmentRecord is one transaction representing a reward item delivered
// to a customer. Records are read-only to the analytics engine: every
// projection is a pure function of a record snapshot.
type FulfillmentRecord struct {
	// ID is the unique identifier of the transaction. Assigned by the
	// server on ingestion when the client omits it. Unique per customer
	// to enforce idempotency.
	ID string `json:"id"`

	// ItemName identifies the fulfilled catalog item. Also the primary
	// key of the item/month matrix projection.
	ItemName string `json:"item_name"`

	// Quantity is the number of units fulfilled in this record.
	// Never negative; a negative quantity is rejected at the boundary.
	Quantity int64 `json:"quantity"`

	// CustomerName identifies the requesting customer.
	CustomerName string `json:"customer_name"`

	// Status is the transaction outcome: Pending, Success or Failed.
	Status string `json:"status"`

	// CreatedAt is when the fulfillment occurred (client-side clock).
	CreatedAt time.Time `json:"created_at"`

	// IngestedAt is when the record was received (server-side clock).
	IngestedAt time.Time `json:"ingested_at"`

	// IngestSeq is a monotonic sequence number assigned by the database.
	// Used as the pagination cursor for snapshot loads; not part of the
	// public API.
	IngestSeq int64 `json:"-"`

	// Metadata is a generic key-value store for context (source, campaign, region).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate ensures the record has all required attributes and no malformed
// fields. A record failing validation is excluded from aggregation; it never
// aborts the computation for the rest of the collection.
func (r *FulfillmentRecord) Validate() error {
	if r.ItemName == "" {
		return fmt.Errorf("item_name is required")
	}

	if r.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}

	if !ValidStatus(r.Status) {
		return fmt.Errorf("unknown status %q", r.Status)
	}

	if r.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", r.Quantity)
	}

	if r.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}

	return nil
}
