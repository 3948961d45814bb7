package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

// UserService implements account listing, profile updates and deletion.
type UserService struct {
	users    ports.UserRepository
	sessions ports.SessionService
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, sessions ports.SessionService, logger zerolog.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, logger: logger}
}

// List returns one page of users. Role gating happens at the route.
func (s *UserService) List(ctx context.Context, page, limit int, name string) (*ports.UserListPage, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	if name == "" {
		name = "*"
	}

	users, more, err := s.users.List(ctx, page, limit, name)
	if err != nil {
		return nil, err
	}
	return &ports.UserListPage{Users: users, More: more}, nil
}

// Update applies a partial profile update and re-issues a session token so
// the caller's identity snapshot reflects the change immediately. The old
// token is revoked by the overwrite of the active marker.
func (s *UserService) Update(ctx context.Context, userID string, in ports.UpdateUserInput) (*domain.User, string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, "", err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, "", err
	}

	tok, err := s.sessions.StartSession(ctx, updated)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, tok, nil
}

// Delete removes an account. Admins may not delete themselves.
func (s *UserService) Delete(ctx context.Context, caller *token.Claims, userID string) error {
	if caller != nil && caller.UserID == userID {
		return domain.ErrCannotDeleteSelf
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}
