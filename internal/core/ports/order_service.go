package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

// CreateOrderInput is a new order as submitted by a diner.
type CreateOrderInput struct {
	FranchiseID string
	StoreID     string
	Items       []domain.OrderItem
}

// OrderPage is one page of a diner's order history.
type OrderPage struct {
	DinerID string         `json:"dinerId"`
	Orders  []domain.Order `json:"orders"`
	Page    int            `json:"page"`
}

// OrderReceipt is the outcome of placing an order, including the factory's
// verification JWT and chaos report link when present.
type OrderReceipt struct {
	Order     *domain.Order
	Fulfilled bool
	JWT       string
	ReportURL string
	Message   string
}

type OrderService interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, item *domain.MenuItem) ([]domain.MenuItem, error)
	Orders(ctx context.Context, caller *token.Claims, page int) (*OrderPage, error)
	Create(ctx context.Context, caller *token.Claims, in CreateOrderInput) (*OrderReceipt, error)
}
