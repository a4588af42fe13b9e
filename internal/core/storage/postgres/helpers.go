package postgres

import (
	"encoding/json"
	"fmt"

	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
)

// marshalRecordMetadata marshals a record's metadata field to JSON.
// Nil or empty metadata produces nil (SQL NULL) rather than a JSON "null" string.
func marshalRecordMetadata(record *v1.FulfillmentRecord) ([]byte, error) {
	if len(record.Metadata) == 0 {
		return nil, nil
	}
	metadataJSON, err := json.Marshal(record.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return metadataJSON, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecordRow scans a database row into a FulfillmentRecord.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanRecordRow(row scanner) (*v1.FulfillmentRecord, error) {
	var rec v1.FulfillmentRecord
	var metadataJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.ItemName,
		&rec.Quantity,
		&rec.CustomerName,
		&rec.Status,
		&rec.CreatedAt,
		&rec.IngestedAt,
		&metadataJSON,
		&rec.IngestSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan record row: %w", err)
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &rec, nil
}
