package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns one page of users filtered by name ("*" matches all) and
	// reports whether more pages follow.
	List(ctx context.Context, page, limit int, name string) ([]*domain.User, bool, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
