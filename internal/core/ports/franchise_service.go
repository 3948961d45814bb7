package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

// FranchiseListPage is one page of the public franchise listing.
type FranchiseListPage struct {
	Franchises []domain.Franchise `json:"franchises"`
	More       bool               `json:"more"`
}

type FranchiseService interface {
	List(ctx context.Context, page, limit int, name string) (*FranchiseListPage, error)
	// ForUser returns the franchises a user administers.
	ForUser(ctx context.Context, userID string) ([]domain.Franchise, error)
	// Create registers a franchise and grants the franchisee role to the
	// named admin emails.
	Create(ctx context.Context, name string, adminEmails []string) (*domain.Franchise, error)
	Delete(ctx context.Context, franchiseID string) error
	// CreateStore requires the caller to be an admin or a franchisee of the
	// target franchise.
	CreateStore(ctx context.Context, caller *token.Claims, franchiseID, name string) (*domain.Store, error)
	DeleteStore(ctx context.Context, caller *token.Claims, franchiseID, storeID string) error
}
