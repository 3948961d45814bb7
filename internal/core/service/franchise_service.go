package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

// FranchiseService implements franchise administration: creation, listing and
// store management.
type FranchiseService struct {
	franchises ports.FranchiseRepository
	users      ports.UserRepository
	logger     zerolog.Logger
}

func NewFranchiseService(franchises ports.FranchiseRepository, users ports.UserRepository, logger zerolog.Logger) *FranchiseService {
	return &FranchiseService{franchises: franchises, users: users, logger: logger}
}

func (s *FranchiseService) List(ctx context.Context, page, limit int, name string) (*ports.FranchiseListPage, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 0 {
		page = 0
	}
	if name == "" {
		name = "*"
	}

	franchises, more, err := s.franchises.List(ctx, page, limit, name)
	if err != nil {
		return nil, err
	}
	return &ports.FranchiseListPage{Franchises: franchises, More: more}, nil
}

func (s *FranchiseService) ForUser(ctx context.Context, userID string) ([]domain.Franchise, error) {
	return s.franchises.FindByAdmin(ctx, userID)
}

// Create registers a franchise. Each admin email must belong to an existing
// user; those users are recorded as the franchise's admins and gain the
// franchisee role on their next login (role snapshots in already-issued
// tokens are unaffected).
func (s *FranchiseService) Create(ctx context.Context, name string, adminEmails []string) (*domain.Franchise, error) {
	franchise := &domain.Franchise{Name: name, Stores: []domain.Store{}}

	admins := make([]*domain.User, 0, len(adminEmails))
	for _, email := range adminEmails {
		user, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		franchise.Admins = append(franchise.Admins, domain.FranchiseAdmin{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
		admins = append(admins, user)
	}

	created, err := s.franchises.Create(ctx, franchise)
	if err != nil {
		return nil, err
	}

	for _, user := range admins {
		if !hasFranchiseeRole(user, created.ID) {
			user.Roles = append(user.Roles, domain.RoleRef{Role: domain.RoleFranchisee, ObjectID: created.ID})
			if _, err := s.users.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info().Str("franchise_id", created.ID).Str("name", created.Name).Msg("franchise created")
	return created, nil
}

func (s *FranchiseService) Delete(ctx context.Context, franchiseID string) error {
	if err := s.franchises.Delete(ctx, franchiseID); err != nil {
		return err
	}
	s.logger.Info().Str("franchise_id", franchiseID).Msg("franchise deleted")
	return nil
}

// CreateStore adds a store. Allowed for admins and for franchisees of this
// franchise; the franchisee check uses the caller's snapshotted roles.
func (s *FranchiseService) CreateStore(ctx context.Context, caller *token.Claims, franchiseID, name string) (*domain.Store, error) {
	franchise, err := s.franchises.FindByID(ctx, franchiseID)
	if err != nil {
		return nil, err
	}

	if !mayAdminister(caller, franchise) {
		return nil, domain.ErrForbidden
	}

	store, err := s.franchises.AddStore(ctx, franchiseID, &domain.Store{Name: name})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("franchise_id", franchiseID).Str("store_id", store.ID).Msg("store created")
	return store, nil
}

// DeleteStore removes a store under the same policy as CreateStore.
func (s *FranchiseService) DeleteStore(ctx context.Context, caller *token.Claims, franchiseID, storeID string) error {
	franchise, err := s.franchises.FindByID(ctx, franchiseID)
	if err != nil {
		return err
	}

	if !mayAdminister(caller, franchise) {
		return domain.ErrForbidden
	}

	if err := s.franchises.RemoveStore(ctx, franchiseID, storeID); err != nil {
		return err
	}

	s.logger.Info().Str("franchise_id", franchiseID).Str("store_id", storeID).Msg("store deleted")
	return nil
}

func mayAdminister(caller *token.Claims, franchise *domain.Franchise) bool {
	if caller == nil {
		return false
	}
	if caller.HasRole(domain.RoleAdmin) {
		return true
	}
	for _, id := range caller.FranchiseIDs() {
		if id == franchise.ID {
			return true
		}
	}
	return false
}

func hasFranchiseeRole(user *domain.User, franchiseID string) bool {
	for _, r := range user.Roles {
		if r.Role == domain.RoleFranchisee && r.ObjectID == franchiseID {
			return true
		}
	}
	return false
}
