package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dumorro/e-nvites/pkg/database"
	"github.com/Dumorro/e-nvites/pkg/response"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db *database.PostgresDB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles the health check
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, response.Error(response.ErrCodeInternalError, "database unreachable"))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}
