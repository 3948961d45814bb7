package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// OrderRepository defines the persistence contract for diner orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindByDiner returns one page of a diner's orders, newest first.
	FindByDiner(ctx context.Context, dinerID string, page, limit int) ([]domain.Order, error)
}
