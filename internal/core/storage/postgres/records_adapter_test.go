package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
	"github.com/pulseboard-lab/pulseboard/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func TestAdapter_SaveRecord(t *testing.T) {
	now := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		record     *v1.FulfillmentRecord
		mockResult func(mock sqlmock.Sqlmock, record *v1.FulfillmentRecord)
		assertions func(t *testing.T, record *v1.FulfillmentRecord, err error)
	}{
		{
			name: "success sets ingest seq",
			record: &v1.FulfillmentRecord{
				ID:           "rec-1",
				ItemName:     "Gift Card",
				Quantity:     3,
				CustomerName: "alice",
				Status:       v1.StatusSuccess,
				CreatedAt:    now,
				IngestedAt:   now,
				Metadata:     map[string]string{"source": "api"},
			},
			mockResult: func(mock sqlmock.Sqlmock, record *v1.FulfillmentRecord) {
				mock.ExpectQuery(regexp.QuoteMeta(querySaveRecord)).
					WithArgs(
						record.ID,
						record.ItemName,
						record.Quantity,
						record.CustomerName,
						record.Status,
						record.CreatedAt,
						record.IngestedAt,
						sqlmock.AnyArg(),
					).
					WillReturnRows(sqlmock.NewRows([]string{"ingest_seq"}).AddRow(int64(42)))
			},
			assertions: func(t *testing.T, record *v1.FulfillmentRecord, err error) {
				require.NoError(t, err)
				require.Equal(t, int64(42), record.IngestSeq)
			},
		},
		{
			name: "duplicate maps to ErrDuplicate",
			record: &v1.FulfillmentRecord{
				ID:           "rec-dup",
				ItemName:     "Gift Card",
				Quantity:     1,
				CustomerName: "alice",
				Status:       v1.StatusSuccess,
				CreatedAt:    now,
				IngestedAt:   now,
			},
			mockResult: func(mock sqlmock.Sqlmock, record *v1.FulfillmentRecord) {
				mock.ExpectQuery(regexp.QuoteMeta(querySaveRecord)).
					WithArgs(
						record.ID,
						record.ItemName,
						record.Quantity,
						record.CustomerName,
						record.Status,
						record.CreatedAt,
						record.IngestedAt,
						sqlmock.AnyArg(),
					).
					WillReturnRows(sqlmock.NewRows([]string{"ingest_seq"}))
			},
			assertions: func(t *testing.T, record *v1.FulfillmentRecord, err error) {
				require.ErrorIs(t, err, storage.ErrDuplicate)
				require.Equal(t, int64(0), record.IngestSeq)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			if tc.mockResult != nil {
				tc.mockResult(mock, tc.record)
			}

			err := adapter.SaveRecord(context.Background(), tc.record)
			tc.assertions(t, tc.record, err)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_RetrieveRecordsAfterCursor(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	createdAt := time.Date(2026, 2, 8, 10, 0, 0, 0, time.UTC)
	ingestedAt := createdAt.Add(2 * time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(queryRetrieveRecordsAfterCursor)).
		WithArgs(int64(100), 2).
		WillReturnRows(sqlmock.NewRows(recordRowColumns()).
			AddRow(
				"rec-101",
				"Gift Card",
				int64(3),
				"alice",
				v1.StatusSuccess,
				createdAt,
				ingestedAt,
				[]byte(`{"source":"api"}`),
				int64(101),
			).
			AddRow(
				"rec-102",
				"Headphones",
				int64(1),
				"bob",
				v1.StatusPending,
				createdAt.Add(time.Minute),
				ingestedAt.Add(time.Minute),
				nil,
				int64(102),
			),
		).RowsWillBeClosed()

	records, err := adapter.RetrieveRecordsAfterCursor(context.Background(), 100, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "rec-101", records[0].ID)
	require.Equal(t, int64(101), records[0].IngestSeq)
	require.Equal(t, int64(3), records[0].Quantity)
	require.Equal(t, "api", records[0].Metadata["source"])
	require.Equal(t, "rec-102", records[1].ID)
	require.Equal(t, int64(102), records[1].IngestSeq)
	require.Nil(t, records[1].Metadata)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_RetrieveRecordsAfterCursor_QueryError(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryRetrieveRecordsAfterCursor)).
		WithArgs(int64(0), 500).
		WillReturnError(errors.New("connection reset"))

	_, err := adapter.RetrieveRecordsAfterCursor(context.Background(), 0, 500)
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to query records by cursor")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_CloseReturnsDBCloseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dbCloseErr := errors.New("db close failed")

	mock.ExpectPrepare(regexp.QuoteMeta(querySaveRecord)).WillBeClosed()
	stmtSave, err := db.Prepare(querySaveRecord)
	require.NoError(t, err)

	mock.ExpectPrepare(regexp.QuoteMeta(queryRetrieveRecordsAfterCursor)).WillBeClosed()
	stmtRetrieve, err := db.Prepare(queryRetrieveRecordsAfterCursor)
	require.NoError(t, err)

	mock.ExpectClose().WillReturnError(dbCloseErr)

	adapter := &Adapter{
		db:                      db,
		stmtSaveRecord:          stmtSave,
		stmtRetrieveAfterCursor: stmtRetrieve,
	}

	err = adapter.Close()
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to close database")
	require.ErrorIs(t, err, dbCloseErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	adapter := &Adapter{
		db:                      db,
		stmtSaveRecord:          mustPrepareStmt(t, db, mock, querySaveRecord),
		stmtRetrieveAfterCursor: mustPrepareStmt(t, db, mock, queryRetrieveRecordsAfterCursor),
	}

	return adapter, mock, db
}

func mustPrepareStmt(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock, query string) *sql.Stmt {
	t.Helper()

	mock.ExpectPrepare(regexp.QuoteMeta(query))
	stmt, err := db.Prepare(query)
	require.NoError(t, err)

	return stmt
}

func recordRowColumns() []string {
	return []string{
		"id",
		"item_name",
		"quantity",
		"customer_name",
		"status",
		"created_at",
		"ingested_at",
		"metadata",
		"ingest_seq",
	}
}
