package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// MenuRepository defines the persistence contract for the pizza menu.
type MenuRepository interface {
	GetMenu(ctx context.Context) ([]domain.MenuItem, error)
	AddItem(ctx context.Context, item *domain.MenuItem) error
}
