package postgres

// SQL queries for fulfillment record storage.

const (
	// querySaveRecord inserts a record with per-customer idempotency.
	// Uses composite key (customer_name, id) to prevent duplicate records.
	// RETURNING retrieves the auto-generated ingest_seq for cursor tracking.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveRecord = `
		INSERT INTO fulfillments (
			id, item_name, quantity, customer_name, status,
			created_at, ingested_at, metadata
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (customer_name, id) DO NOTHING
		RETURNING ingest_seq
	`

	// queryRetrieveRecordsAfterCursor fetches records after a cursor
	// (ingest_seq) in strict total order. The monotonic sequence prevents
	// batch boundary data loss while paging through a snapshot.
	queryRetrieveRecordsAfterCursor = `
		SELECT
			id, item_name, quantity, customer_name, status,
			created_at, ingested_at, metadata, ingest_seq
		FROM fulfillments
		WHERE ingest_seq > $1
		ORDER BY ingest_seq ASC
		LIMIT $2
	`
)
