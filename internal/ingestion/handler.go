package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
	httperr "github.com/pulseboard-lab/pulseboard/internal/core/errors"
	"github.com/pulseboard-lab/pulseboard/internal/core/storage"
)

const (
	msgReadBodyFailed  = "Failed to read request body"
	msgInvalidJSON     = "Invalid JSON body"
	msgPersistFailed   = "Failed to persist fulfillment record"
	msgDuplicateRecord = "Fulfillment record already exists"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles HTTP POST requests for fulfillment record ingestion.
func (s *Service) IngestHandler(c *gin.Context) {
	rec, payloadSize, err := s.parseRecord(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.validateRecord(rec); err != nil {
		writeError(c, err)
		return
	}

	slog.Info("Received fulfillment record",
		"record_id", rec.ID,
		"item_name", rec.ItemName,
		"customer_name", rec.CustomerName,
		"status", rec.Status,
		"payload_size", payloadSize)

	if err := s.persistRecord(c.Request.Context(), rec); err != nil {
		writeError(c, err)
		return
	}

	// Record persisted. The dashboard refresher picks it up on the next recompute.
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "id": rec.ID})
}

// parseRecord reads the raw request body and binds it into a FulfillmentRecord.
// Returns the parsed record and the raw payload size (used for structured logging upstream).
func (s *Service) parseRecord(c *gin.Context) (*v1.FulfillmentRecord, int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var rec v1.FulfillmentRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	// Server-assigned identity and ingest clock.
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.IngestedAt = time.Now().UTC()

	return &rec, len(bodyBytes), nil
}

// validateRecord enforces the record envelope: malformed records are
// rejected here at the boundary so they never reach aggregation.
func (s *Service) validateRecord(rec *v1.FulfillmentRecord) *ingestionError {
	if err := rec.Validate(); err != nil {
		slog.Warn("Record validation failed", "error", err, "record_id", rec.ID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRecordError,
			message:    err.Error(),
		}
	}
	return nil
}

// persistRecord saves the record to the backing store.
func (s *Service) persistRecord(ctx context.Context, rec *v1.FulfillmentRecord) *ingestionError {
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			slog.Info("Duplicate record rejected", "record_id", rec.ID, "customer_name", rec.CustomerName)
			return &ingestionError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateRecordError,
				message:    msgDuplicateRecord,
			}
		}

		slog.Error("Failed to persist record", "error", err, "record_id", rec.ID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
