package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

type FranchiseHandler struct {
	franchiseService ports.FranchiseService
}

func NewFranchiseHandler(franchiseService ports.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{franchiseService: franchiseService}
}

type franchiseAdminRef struct {
	Email string `json:"email" validate:"required,email"`
}

type createFranchiseRequest struct {
	Name   string              `json:"name" validate:"required"`
	Admins []franchiseAdminRef `json:"admins" validate:"required,min=1,dive"`
}

type createStoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// List returns a page of franchises. Public.
//
// @Summary      List the franchises
// @Tags         franchise
// @Produce      json
// @Param        page   query  int     false  "Page number"
// @Param        limit  query  int     false  "Page size"
// @Param        name   query  string  false  "Name filter, * matches all"
// @Success      200  {object}  ports.FranchiseListPage
// @Router       /api/franchise [get]
func (h *FranchiseHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.franchiseService.List(c.Request().Context(), page, limit, c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ForUser returns the franchises a user administers. Callers asking about
// anyone but themselves get an empty list unless they are admins.
//
// @Summary      List a user's franchises
// @Tags         franchise
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  string  true  "User id"
// @Success      200  {array}  domain.Franchise
// @Router       /api/franchise/{userId} [get]
func (h *FranchiseHandler) ForUser(c echo.Context) error {
	caller := middleware.Identity(c)
	userID := c.Param("userId")
	if caller.UserID != userID && !caller.HasRole(domain.RoleAdmin) {
		return c.JSON(http.StatusOK, []domain.Franchise{})
	}

	franchises, err := h.franchiseService.ForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if franchises == nil {
		franchises = []domain.Franchise{}
	}
	return c.JSON(http.StatusOK, franchises)
}

// Create registers a new franchise. Admin only.
//
// @Summary      Create a franchise
// @Tags         franchise
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  createFranchiseRequest  true  "Franchise and its admins"
// @Success      200  {object}  domain.Franchise
// @Failure      403  {object}  map[string]string
// @Router       /api/franchise [post]
func (h *FranchiseHandler) Create(c echo.Context) error {
	var req createFranchiseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	emails := make([]string, 0, len(req.Admins))
	for _, a := range req.Admins {
		emails = append(emails, a.Email)
	}

	franchise, err := h.franchiseService.Create(c.Request().Context(), req.Name, emails)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, franchise)
}

// Delete removes a franchise. Admin only.
//
// @Summary      Delete a franchise
// @Tags         franchise
// @Produce      json
// @Security     BearerAuth
// @Param        franchiseId  path  string  true  "Franchise id"
// @Success      200  {object}  messageResponse
// @Router       /api/franchise/{franchiseId} [delete]
func (h *FranchiseHandler) Delete(c echo.Context) error {
	if err := h.franchiseService.Delete(c.Request().Context(), c.Param("franchiseId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "franchise deleted"})
}

// CreateStore adds a store to a franchise. Allowed for admins and that
// franchise's franchisees; the service enforces the policy.
//
// @Summary      Create a new franchise store
// @Tags         franchise
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        franchiseId  path  string              true  "Franchise id"
// @Param        body         body  createStoreRequest  true  "Store details"
// @Success      200  {object}  domain.Store
// @Failure      403  {object}  map[string]string
// @Router       /api/franchise/{franchiseId}/store [post]
func (h *FranchiseHandler) CreateStore(c echo.Context) error {
	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.franchiseService.CreateStore(c.Request().Context(), middleware.Identity(c), c.Param("franchiseId"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// DeleteStore removes a store under the same policy as CreateStore.
//
// @Summary      Delete a franchise store
// @Tags         franchise
// @Produce      json
// @Security     BearerAuth
// @Param        franchiseId  path  string  true  "Franchise id"
// @Param        storeId      path  string  true  "Store id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/franchise/{franchiseId}/store/{storeId} [delete]
func (h *FranchiseHandler) DeleteStore(c echo.Context) error {
	err := h.franchiseService.DeleteStore(c.Request().Context(), middleware.Identity(c), c.Param("franchiseId"), c.Param("storeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "store deleted"})
}
