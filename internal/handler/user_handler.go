package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/model"
	"shopapi/internal/service"
)

// UserHandler bundles account endpoints. Every route sits behind the
// access guard.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UsersResponse wraps a user list.
type UsersResponse struct {
	Users []model.PublicUser `json:"users"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User model.PublicUser `json:"user"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UsersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	users, err := h.svc.ListUsers(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UsersResponse{Users: model.PublicUsers(users)})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id, parseID(c))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, UserResponse{User: user.Public()})
}

// UpdateUser godoc
// @Summary Update email and password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body service.UpdateUserInput true "New credentials"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	target := parseID(c)
	if err := h.svc.AuthorizeUpdate(id, target); err != nil {
		return errorResponse(err)
	}
	var req service.UpdateUserInput
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if err := h.svc.UpdateUser(c.Request().Context(), id, target, req); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User updated successfully"})
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id, parseID(c)); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
