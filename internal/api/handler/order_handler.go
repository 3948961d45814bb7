package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type addMenuItemRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type orderItemRequest struct {
	MenuID      string  `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type createOrderRequest struct {
	FranchiseID string             `json:"franchiseId"`
	StoreID     string             `json:"storeId"`
	Items       []orderItemRequest `json:"items" validate:"required,min=1"`
}

type createOrderResponse struct {
	Order                *domain.Order `json:"order"`
	JWT                  string        `json:"jwt,omitempty"`
	FollowLinkToEndChaos string        `json:"followLinkToEndChaos,omitempty"`
}

type orderFailureResponse struct {
	Message              string `json:"message"`
	FollowLinkToEndChaos string `json:"followLinkToEndChaos,omitempty"`
}

// Menu returns the public pizza menu. No authentication required.
//
// @Summary      Get the pizza menu
// @Tags         order
// @Produce      json
// @Success      200  {array}  domain.MenuItem
// @Router       /api/order/menu [get]
func (h *OrderHandler) Menu(c echo.Context) error {
	menu, err := h.orderService.Menu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// AddMenuItem adds an item and returns the full updated menu. Admin only.
//
// @Summary      Add an item to the menu
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  addMenuItemRequest  true  "New menu item"
// @Success      200  {array}   domain.MenuItem
// @Failure      403  {object}  map[string]string
// @Router       /api/order/menu [put]
func (h *OrderHandler) AddMenuItem(c echo.Context) error {
	var req addMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	menu, err := h.orderService.AddMenuItem(c.Request().Context(), &domain.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// Orders returns one page of the caller's order history.
//
// @Summary      Get the orders for the authenticated user
// @Tags         order
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number"
// @Success      200  {object}  ports.OrderPage
// @Router       /api/order [get]
func (h *OrderHandler) Orders(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.orderService.Orders(c.Request().Context(), middleware.Identity(c), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Create places an order and submits it to the factory. A factory rejection
// surfaces as a 500 carrying the factory's chaos report link.
//
// @Summary      Create an order for the authenticated user
// @Tags         order
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  createOrderRequest  true  "Order contents"
// @Success      200  {object}  createOrderResponse
// @Failure      500  {object}  orderFailureResponse
// @Router       /api/order [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{MenuID: it.MenuID, Description: it.Description, Price: it.Price})
	}

	receipt, err := h.orderService.Create(c.Request().Context(), middleware.Identity(c), ports.CreateOrderInput{
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
		Items:       items,
	})
	if err != nil {
		return err
	}

	if !receipt.Fulfilled {
		return c.JSON(http.StatusInternalServerError, orderFailureResponse{
			Message:              "failed to fulfill order at factory",
			FollowLinkToEndChaos: receipt.ReportURL,
		})
	}

	return c.JSON(http.StatusOK, createOrderResponse{
		Order:                receipt.Order,
		JWT:                  receipt.JWT,
		FollowLinkToEndChaos: receipt.ReportURL,
	})
}
