// Package router binds the HTTP surface: the todo API, the health probe and
// the static front-end fallback.
package router

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"todo-webapp/internal/handlers"
	"todo-webapp/internal/middleware"
)

// RouteTodo registers the todo endpoints on r.
func RouteTodo(r gin.IRouter, h *handlers.Handler) {
	todo := r.Group("/api/todo")
	todo.GET("/list", h.ListTodos)
	// "list" is not an id
	todo.PUT("/list", h.MethodNotAllowed)
	todo.DELETE("/list", h.MethodNotAllowed)
	todo.GET("/:id", h.GetTodo)
	todo.POST("/create", h.CreateTodo)
	todo.PUT("/:id", h.UpdateTodo)
	todo.DELETE("/:id", h.DeleteTodo)
}

// New builds the engine. The static fallback is installed last so it only
// sees requests no API route matched.
func New(h *handlers.Handler, logger *log.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	RouteTodo(router, h)
	router.GET("/api/health", h.Health)

	router.NoMethod(h.MethodNotAllowed)
	router.NoRoute(h.Static)

	return router
}
