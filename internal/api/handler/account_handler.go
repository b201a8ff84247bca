package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acme/account-service/internal/core/ports"
	"github.com/acme/account-service/internal/metrics"
)

// AccountHandler handles HTTP requests for account lifecycle operations.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Signup handles POST /api/auth/signup.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      200   {object}  ports.UserView
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Lastname: req.Lastname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, view)
}

// ChangePass handles POST /api/auth/changepass. The acting principal
// changes their own password.
//
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      changePassRequest  true  "New password"
// @Success      200   {object}  changePassResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/changepass [post]
func (h *AccountHandler) ChangePass(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email, err := h.service.ChangePassword(c.Request().Context(), user.Email, req.NewPassword)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, changePassResponse{
		Email:  email,
		Status: "The password has been updated successfully",
	})
}

// ChangeRole handles PUT /api/admin/user/role.
//
// @Summary      Grant or remove a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      changeRoleRequest  true  "Role change"
// @Success      200   {object}  ports.UserView
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/user/role [put]
func (h *AccountHandler) ChangeRole(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.ChangeRole(c.Request().Context(), ports.ChangeRoleInput{
		Email:     req.User,
		Role:      req.Role,
		Operation: req.Operation,
		Actor:     actor.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// ChangeAccess handles PUT /api/admin/user/access.
//
// @Summary      Lock or unlock a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      changeAccessRequest  true  "Access change"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/user/access [put]
func (h *AccountHandler) ChangeAccess(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changeAccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := h.service.ChangeAccess(c.Request().Context(), ports.ChangeAccessInput{
		Email:     req.User,
		Operation: req.Operation,
		Actor:     actor.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: status})
}

// Delete handles DELETE /api/admin/user/:email.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BasicAuth
// @Param        email  path      string  true  "Email of the user to delete"
// @Success      200    {object}  deleteUserResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/admin/user/{email} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	email := c.Param("email")
	if err := h.service.DeleteUser(c.Request().Context(), email, actor.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteUserResponse{
		User:   email,
		Status: "Deleted successfully!",
	})
}

// List handles GET /api/admin/user/.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   ports.UserView
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/user/ [get]
func (h *AccountHandler) List(c echo.Context) error {
	views, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}
