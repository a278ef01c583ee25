package api

import (
	"encoding/json"
	"log"
	"strings"

	domain "github.com/anjaya02/task-based-web-app/domain/user"
	"github.com/anjaya02/task-based-web-app/modules/auth"
	"github.com/anjaya02/task-based-web-app/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	taskAdapter   tasks.TaskPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer mono.ServiceContainer, authAdapter auth.AuthPort, taskAdapter tasks.TaskPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		taskAdapter:   taskAdapter,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "Name, email and password are required")
	}

	authReq := auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Message:      "User registered successfully",
		Token:        resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User: UserPayload{
			ID:    resp.ID,
			Name:  resp.Name,
			Email: resp.Email,
		},
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Message:      "Login successful",
		Token:        resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User: UserPayload{
			ID:    resp.ID,
			Name:  resp.Name,
			Email: resp.Email,
		},
	})
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	authReq := auth.RefreshRequest{
		RefreshToken: req.RefreshToken,
	}
	var resp auth.RefreshResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"refresh-token",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		Token:        resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	})
}

// Profile handles getting the current user's profile.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		Message: "Profile retrieved successfully",
		User: UserPayload{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

// ListTasks handles GET /api/tasks with filtering, sorting, and pagination.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return unauthorized(c)
	}

	resp, err := h.taskAdapter.List(c.UserContext(), tasks.ListTasksRequest{
		OwnerID:  ownerID,
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		SortBy:   c.Query("sortBy"),
		Page:     c.QueryInt("page", 0),
		Limit:    c.QueryInt("limit", 0),
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ListTasksEnvelope{
		Message:    "Tasks retrieved successfully",
		Tasks:      resp.Tasks,
		Pagination: resp.Pagination,
	})
}

// CreateTask handles POST /api/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return unauthorized(c)
	}

	var body CreateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.taskAdapter.Create(c.UserContext(), tasks.CreateTaskRequest{
		OwnerID:     ownerID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(TaskEnvelope{
		Message: "Task created successfully",
		Task:    resp.Task,
	})
}

// GetTask handles GET /api/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return unauthorized(c)
	}

	resp, err := h.taskAdapter.Get(c.UserContext(), tasks.GetTaskRequest{
		ID:      c.Params("id"),
		OwnerID: ownerID,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TaskEnvelope{
		Message: "Task retrieved successfully",
		Task:    resp.Task,
	})
}

// UpdateTask handles PUT /api/tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return unauthorized(c)
	}

	var body UpdateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.taskAdapter.Update(c.UserContext(), tasks.UpdateTaskRequest{
		ID:          c.Params("id"),
		OwnerID:     ownerID,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		DueDate:     body.DueDate,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TaskEnvelope{
		Message: "Task updated successfully",
		Task:    resp.Task,
	})
}

// DeleteTask handles DELETE /api/tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return unauthorized(c)
	}

	if _, err := h.taskAdapter.Delete(c.UserContext(), tasks.DeleteTaskRequest{
		ID:      c.Params("id"),
		OwnerID: ownerID,
	}); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Task deleted successfully",
	})
}

// TaskStats handles GET /api/tasks/stats.
func (h *Handlers) TaskStats(c *fiber.Ctx) error {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.taskAdapter.Stats(c.UserContext(), ownerID)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(StatsEnvelope{
		Message: "Task statistics retrieved successfully",
		Stats:   *stats,
	})
}

// ownerID extracts the authenticated user's id set by the middleware.
func (h *Handlers) ownerID(c *fiber.Ctx) (string, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

// handleTaskError translates task service errors into HTTP responses.
// Errors cross the service container as messages, so known conditions
// are matched by their text.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "validation failed:"):
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			Message: "Validation error",
			Errors:  parseFieldErrors(errStr),
		})
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(MessageResponse{
			Message: "Task not found",
		})
	case strings.Contains(errStr, "invalid query"):
		return c.Status(fiber.StatusBadRequest).JSON(MessageResponse{
			Message: queryErrorMessage(errStr),
		})
	default:
		return serverError(c, err)
	}
}

// parseFieldErrors rebuilds the per-field list from a ValidationErrors
// message ("validation failed: field: msg; field: msg").
func parseFieldErrors(errStr string) []tasks.FieldError {
	_, rest, ok := strings.Cut(errStr, "validation failed: ")
	if !ok {
		return nil
	}

	parts := strings.Split(rest, "; ")
	out := make([]tasks.FieldError, 0, len(parts))
	for _, part := range parts {
		field, msg, ok := strings.Cut(part, ": ")
		if !ok {
			continue
		}
		out = append(out, tasks.FieldError{Field: field, Message: msg})
	}
	return out
}

// queryErrorMessage extracts the "invalid query..." portion of an error
// chain for the response body.
func queryErrorMessage(errStr string) string {
	if i := strings.Index(errStr, "invalid query"); i >= 0 {
		return strings.ToUpper(errStr[i:i+1]) + errStr[i+1:]
	}
	return "Invalid query"
}

// handleAuthError handles authentication errors and returns appropriate
// responses without exposing internals.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "invalid email format"),
		strings.Contains(errStr, "name must be"),
		strings.Contains(errStr, "password must be"):
		return badRequest(c, upperFirst(trimRequestFailed(errStr)))
	default:
		return serverError(c, err)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func serverError(c *fiber.Ctx, err error) error {
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(MessageResponse{
		Message: "Server error",
	})
}

// trimRequestFailed drops the request-reply wrapping from an error
// message so only the service's own text reaches the client.
func trimRequestFailed(errStr string) string {
	for _, marker := range []string{"invalid email format", "name must be", "password must be"} {
		if i := strings.Index(errStr, marker); i >= 0 {
			return errStr[i:]
		}
	}
	return errStr
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
