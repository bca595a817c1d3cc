package models

type Todo struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
}

// UpdateTodo is a partial update. A nil field is left unchanged.
type UpdateTodo struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status,omitempty"`
}
