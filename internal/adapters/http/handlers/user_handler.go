package handlers

import (
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints (admin)
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create creates a user
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req services.CreateUserInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userService.Create(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to create user")
	}

	return response.Created(c, "User created successfully", user)
}

// List lists users
// @Summary List users
// @Description Paginated list; search by name or email, filter.type=$eq:ADMIN, filter.email=$ilike:foo
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param sortBy query string false "column:ASC|DESC"
// @Param search query string false "Search term"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, repositories.UserPagination)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := h.userService.List(c.Context(), q)
	if err != nil {
		return handleError(c, err, "Failed to list users")
	}

	return paginated(c, "Users retrieved successfully", page)
}

// GetByID gets a user
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// Update updates a user
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateUserInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userService.Update(c.Context(), id, &req)
	if err != nil {
		return handleError(c, err, "Failed to update user")
	}

	return response.Success(c, "User updated successfully", user)
}

// Delete deletes a user
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to delete user")
	}

	return response.Success(c, "User deleted successfully", nil)
}
