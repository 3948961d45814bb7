package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// FranchiseRepository defines the persistence contract for franchises and
// their stores.
type FranchiseRepository interface {
	Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error)
	FindByID(ctx context.Context, id string) (*domain.Franchise, error)
	// List returns one page of franchises filtered by name ("*" matches all)
	// and reports whether more pages follow.
	List(ctx context.Context, page, limit int, name string) ([]domain.Franchise, bool, error)
	FindByAdmin(ctx context.Context, userID string) ([]domain.Franchise, error)
	Delete(ctx context.Context, id string) error
	AddStore(ctx context.Context, franchiseID string, store *domain.Store) (*domain.Store, error)
	RemoveStore(ctx context.Context, franchiseID, storeID string) error
}
