package storage

import (
	"context"
	"errors"

	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
)

// ErrDuplicate is returned when a record with the same (customer_name, id) already exists.
var ErrDuplicate = errors.New("fulfillment record already exists")

// RecordStore defines the interface for storing and retrieving fulfillment records.
type RecordStore interface {
	SaveRecord(ctx context.Context, record *v1.FulfillmentRecord) error

	// RetrieveRecordsAfterCursor fetches records after a cursor (ingest_seq)
	// in strict total order. The dashboard refresher pages through the whole
	// table with it to assemble a full snapshot without batch boundary loss.
	// cursor=0 means "from the beginning".
	RetrieveRecordsAfterCursor(ctx context.Context, cursor int64, limit int) ([]*v1.FulfillmentRecord, error)
}
