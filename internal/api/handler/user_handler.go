package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cropbank/banking-system/internal/core/domain"
	"github.com/cropbank/banking-system/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type statusUpdateResponse struct {
	Message string `json:"message"`
	User    struct {
		ID     string `json:"id"`
		Active bool   `json:"active"`
	} `json:"user"`
}

// ListUsers returns all identities in the sanitized admin view.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserSummary
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateStatus toggles a user's activation flag.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "User id"
// @Param        active  query     bool    true  "New activation state"
// @Success      200     {object}  statusUpdateResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/admin/users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	active, err := strconv.ParseBool(c.QueryParam("active"))
	if err != nil {
		return &domain.ValidationError{Fields: map[string]string{
			"active": "active must be true or false",
		}}
	}

	user, err := h.userService.UpdateStatus(c.Request().Context(), c.Param("id"), active)
	if err != nil {
		return err
	}

	var resp statusUpdateResponse
	if active {
		resp.Message = "user activated successfully"
	} else {
		resp.Message = "user deactivated successfully"
	}
	resp.User.ID = user.ID
	resp.User.Active = user.Active
	return c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated caller's own identity.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
