package handlers

import (
	"strings"

	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles user registration
// @Summary Register new user
// @Description Create an account with a name, email, password and type
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignupInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	req.Email = strings.TrimSpace(req.Email)

	user, err := h.authService.Signup(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to register user")
	}

	return response.Created(c, "User registered successfully", user)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and receive an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	req.Email = strings.TrimSpace(req.Email)

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to login")
	}

	return response.Success(c, "Login successful", result)
}

// Me returns the current user
// @Summary Get current user
// @Description Returns the authenticated user's account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.Me(c.Context(), userID)
	if err != nil {
		return handleError(c, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// UpdateMe updates the current user
// @Summary Update current user
// @Description Change the authenticated user's name, email or password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateSelfInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/me [patch]
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.UpdateSelfInput
	if err := bind(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.authService.UpdateSelf(c.Context(), userID, &req)
	if err != nil {
		return handleError(c, err, "Failed to update user")
	}

	return response.Success(c, "User updated successfully", user)
}
