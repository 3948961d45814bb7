package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

// AuthService implements registration, login and logout on top of the
// credential store and session authorizer.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionService
	metrics  ports.MetricsSink
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionService, metrics ports.MetricsSink, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, metrics: metrics, logger: logger}
}

// Register creates a new diner account and opens its first session.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", domain.ErrIncompleteRegistration
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []domain.RoleRef{{Role: domain.RoleDiner}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	tok, err := s.sessions.StartSession(ctx, created)
	if err != nil {
		return nil, "", err
	}

	s.metrics.AuthAttempt(true)
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, tok, nil
}

// Login authenticates by email and password and opens a session, replacing
// any session the user already had.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		s.metrics.AuthAttempt(false)
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.metrics.AuthAttempt(false)
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.metrics.AuthAttempt(false)
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := s.sessions.StartSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.metrics.AuthAttempt(true)
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, tok, nil
}

// Logout revokes the presented token's session.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if err := s.sessions.EndSession(ctx, raw); err != nil {
		return err
	}
	s.metrics.Logout()
	return nil
}
