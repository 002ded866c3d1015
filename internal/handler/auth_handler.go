package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/model"
	"shopapi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterResponse represents a successful registration.
type RegisterResponse struct {
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User created successfully",
		User:    user.Public(),
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginInput
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "User logged in successfully",
		Token:   token,
	})
}
