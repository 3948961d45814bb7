package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// Me returns the authenticated caller's identity snapshot, exactly as carried
// in the token.
//
// @Summary      Get authenticated user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  token.Claims
// @Router       /api/user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.Identity(c))
}

// List returns a page of users. Admin only (enforced at the route).
//
// @Summary      List users
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int     false  "Page number"
// @Param        limit  query  int     false  "Page size"
// @Param        name   query  string  false  "Name filter, * matches all"
// @Success      200  {object}  ports.UserListPage
// @Failure      403  {object}  map[string]string
// @Router       /api/user [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.userService.List(c.Request().Context(), page, limit, c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Update modifies a user's own profile; admins may update anyone. A fresh
// token is returned because the identity snapshot changed.
//
// @Summary      Update user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string             true  "User id"
// @Param        body    body  updateUserRequest  true  "Fields to update"
// @Success      200  {object}  authResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/user/{userId} [put]
func (h *UserHandler) Update(c echo.Context) error {
	caller := middleware.Identity(c)
	userID := c.Param("userId")
	if caller.UserID != userID && !caller.HasRole(domain.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, tok, err := h.userService.Update(c.Request().Context(), userID, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{User: user, Token: tok})
}

// Delete removes an account. Admin only; self-deletion is rejected.
//
// @Summary      Delete a user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/user/{userId} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), middleware.Identity(c), c.Param("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
