package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/pulseboard-lab/pulseboard/internal/core/errors"
)

// RegisterRoutes registers all dashboard API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/dashboard", s.HandleGetDashboard)
	r.POST("/v1/dashboard/refresh", s.HandleRefreshDashboard)
}

// HandleGetDashboard handles GET /v1/dashboard.
// Serves the latest published snapshot; empty projections before the first
// refresh, never an error.
func (s *Service) HandleGetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, s.Latest())
}

// HandleRefreshDashboard handles POST /v1/dashboard/refresh.
// Forces a full recomputation and returns the new snapshot.
func (s *Service) HandleRefreshDashboard(c *gin.Context) {
	snapshot, err := s.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to refresh dashboard",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
