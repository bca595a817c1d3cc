package handlers

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todo-webapp/internal/middleware"
	"todo-webapp/internal/repository"
)

type Handler struct {
	repo      repository.Repository
	logger    *log.Logger
	staticDir string
}

func New(repo repository.Repository, logger *log.Logger, staticDir string) *Handler {
	return &Handler{repo: repo, logger: logger, staticDir: staticDir}
}

// parseId accepts only ids that fit the int4 id column.
func parseId(id string) (int, error) {
	n, err := strconv.ParseInt(id, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// MethodNotAllowed answers 405 for a path that exists under other methods.
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "method not allowed")
}

// storageFailure answers 500 with the failure message as plain text.
func (h *Handler) storageFailure(c *gin.Context, err error) {
	h.requestLogger(c).Error("storage failure", "err", err)
	c.String(http.StatusInternalServerError, err.Error())
}

func (h *Handler) requestLogger(c *gin.Context) *log.Logger {
	if v, ok := c.Get(middleware.LoggerKey); ok {
		if logger, ok := v.(*log.Logger); ok {
			return logger
		}
	}
	return h.logger
}
