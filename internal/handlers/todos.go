package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.storageFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}

// GetTodo answers 200 with a JSON null when the id does not exist.
func (h *Handler) GetTodo(c *gin.Context) {
	todoId, err := parseId(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid id")
		return
	}

	todo, err := h.repo.Get(c.Request.Context(), todoId)
	if err != nil {
		h.storageFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// CreateTodo takes the raw request body as the new title.
func (h *Handler) CreateTodo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.repo.Create(c.Request.Context(), string(body))
	if err != nil {
		h.storageFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	todoId, err := parseId(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid id")
		return
	}

	request, status, err := bindUpdateTodo(c)
	if err != nil {
		c.String(status, err.Error())
		return
	}

	todo, err := h.repo.Update(c.Request.Context(), todoId, request)
	if err != nil {
		h.storageFailure(c, err)
		return
	}
	if todo == nil {
		c.String(http.StatusNotFound, fmt.Sprintf("no todo item exists with id `%d`", todoId))
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	todoId, err := parseId(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid id")
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), todoId)
	if err != nil {
		h.storageFailure(c, err)
		return
	}
	if !deleted {
		c.String(http.StatusNotFound, fmt.Sprintf("no todo item exists with id `%d` or it could not be deleted", todoId))
		return
	}

	c.Status(http.StatusOK)
}
