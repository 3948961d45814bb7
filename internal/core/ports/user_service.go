package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

// UpdateUserInput carries a partial profile update; empty fields are left
// unchanged.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserListPage is one page of the admin user listing.
type UserListPage struct {
	Users []*domain.User `json:"users"`
	More  bool           `json:"more"`
}

type UserService interface {
	List(ctx context.Context, page, limit int, name string) (*UserListPage, error)
	// Update applies a partial update and re-issues a session token carrying
	// the fresh identity snapshot.
	Update(ctx context.Context, userID string, in UpdateUserInput) (*domain.User, string, error)
	// Delete removes an account. caller may not delete itself.
	Delete(ctx context.Context, caller *token.Claims, userID string) error
}
