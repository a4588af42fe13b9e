package ingestion

import (
	"github.com/gin-gonic/gin"
	"github.com/pulseboard-lab/pulseboard/internal/core/storage"
)

type Service struct {
	store            storage.RecordStore
	maxBodySizeBytes int
}

func NewService(store storage.RecordStore, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/fulfillments", s.IngestHandler)
}
