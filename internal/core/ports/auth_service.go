package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// AuthService implements registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, raw string) error
}
