package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-webapp/internal/models"
)

func (h *Handler) Health(c *gin.Context) {
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		h.requestLogger(c).Warn("health check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}
