package api

import (
	"github.com/anjaya02/task-based-web-app/modules/tasks"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserPayload is the outbound wire shape of a user. The password hash
// never leaves the auth module.
type UserPayload struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Message      string      `json:"message"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int64       `json:"expiresIn"`
	User         UserPayload `json:"user"`
}

// TokenResponse is returned from token refresh.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// ProfileResponse wraps the authenticated user's profile.
type ProfileResponse struct {
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
}

// CreateTaskBody is the POST /api/tasks request body. DueDate is a
// pointer so "omitted" and "null" read identically.
type CreateTaskBody struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTaskBody is the PUT /api/tasks/:id request body; every field is
// optional.
type UpdateTaskBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// TaskEnvelope wraps a single task response.
type TaskEnvelope struct {
	Message string        `json:"message"`
	Task    tasks.TaskDTO `json:"task"`
}

// ListTasksEnvelope wraps one page of tasks.
type ListTasksEnvelope struct {
	Message    string           `json:"message"`
	Tasks      []tasks.TaskDTO  `json:"tasks"`
	Pagination tasks.Pagination `json:"pagination"`
}

// StatsEnvelope wraps aggregate task counts.
type StatsEnvelope struct {
	Message string                  `json:"message"`
	Stats   tasks.TaskStatsResponse `json:"stats"`
}

// MessageResponse is a bare message body (deletes, 404s, 500s).
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse is a 400 with per-field failures.
type ValidationErrorResponse struct {
	Message string             `json:"message"`
	Errors  []tasks.FieldError `json:"errors"`
}

// ErrorResponse represents an error response from the auth endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
