package service

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

type stubFranchiseRepo struct {
	byID   map[string]*domain.Franchise
	nextID int
}

func newStubFranchiseRepo() *stubFranchiseRepo {
	return &stubFranchiseRepo{byID: make(map[string]*domain.Franchise)}
}

func cloneFranchise(f *domain.Franchise) *domain.Franchise {
	clone := *f
	clone.Admins = append([]domain.FranchiseAdmin(nil), f.Admins...)
	clone.Stores = append([]domain.Store(nil), f.Stores...)
	return &clone
}

func (r *stubFranchiseRepo) Create(_ context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	r.nextID++
	created := cloneFranchise(franchise)
	created.ID = "f" + strconv.Itoa(r.nextID)
	r.byID[created.ID] = cloneFranchise(created)
	return created, nil
}

func (r *stubFranchiseRepo) FindByID(_ context.Context, id string) (*domain.Franchise, error) {
	if f, ok := r.byID[id]; ok {
		return cloneFranchise(f), nil
	}
	return nil, domain.ErrFranchiseNotFound
}

func (r *stubFranchiseRepo) List(_ context.Context, page, limit int, name string) ([]domain.Franchise, bool, error) {
	var all []domain.Franchise
	for _, f := range r.byID {
		if name == "*" || strings.Contains(strings.ToLower(f.Name), strings.ToLower(name)) {
			all = append(all, *cloneFranchise(f))
		}
	}
	start := page * limit
	if start >= len(all) {
		return nil, false, nil
	}
	end := start + limit
	more := end < len(all)
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], more, nil
}

func (r *stubFranchiseRepo) FindByAdmin(_ context.Context, userID string) ([]domain.Franchise, error) {
	var out []domain.Franchise
	for _, f := range r.byID {
		if f.AdministeredBy(userID) {
			out = append(out, *cloneFranchise(f))
		}
	}
	return out, nil
}

func (r *stubFranchiseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrFranchiseNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubFranchiseRepo) AddStore(_ context.Context, franchiseID string, store *domain.Store) (*domain.Store, error) {
	f, ok := r.byID[franchiseID]
	if !ok {
		return nil, domain.ErrFranchiseNotFound
	}
	created := domain.Store{ID: "s" + strconv.Itoa(len(f.Stores)+1), Name: store.Name}
	f.Stores = append(f.Stores, created)
	return &created, nil
}

func (r *stubFranchiseRepo) RemoveStore(_ context.Context, franchiseID, storeID string) error {
	f, ok := r.byID[franchiseID]
	if !ok {
		return domain.ErrFranchiseNotFound
	}
	for i, s := range f.Stores {
		if s.ID == storeID {
			f.Stores = append(f.Stores[:i], f.Stores[i+1:]...)
			return nil
		}
	}
	return domain.ErrStoreNotFound
}

func newFranchiseFixture() (*FranchiseService, *stubFranchiseRepo, *stubUserRepo) {
	franchises := newStubFranchiseRepo()
	users := newStubUserRepo()
	return NewFranchiseService(franchises, users, zerolog.Nop()), franchises, users
}

func adminClaims() *token.Claims {
	return &token.Claims{UserID: "admin", Roles: []domain.RoleRef{{Role: domain.RoleAdmin}}}
}

func TestFranchiseService_Create_GrantsFranchiseeRole(t *testing.T) {
	svc, _, users := newFranchiseFixture()
	ctx := context.Background()
	owner := seedUser(t, users, "owner", "o@x.com", domain.RoleDiner)

	franchise, err := svc.Create(ctx, "pizzaPocket", []string{"o@x.com"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !franchise.AdministeredBy(owner.ID) {
		t.Fatalf("owner not recorded as franchise admin: %+v", franchise.Admins)
	}

	stored, err := users.FindByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	found := false
	for _, r := range stored.Roles {
		if r.Role == domain.RoleFranchisee && r.ObjectID == franchise.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("franchisee role not granted: %+v", stored.Roles)
	}
}

func TestFranchiseService_Create_UnknownAdmin(t *testing.T) {
	svc, _, _ := newFranchiseFixture()

	if _, err := svc.Create(context.Background(), "pizzaPocket", []string{"ghost@x.com"}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFranchiseService_CreateStore_Policy(t *testing.T) {
	svc, _, users := newFranchiseFixture()
	ctx := context.Background()
	owner := seedUser(t, users, "owner", "o@x.com", domain.RoleDiner)

	franchise, err := svc.Create(ctx, "pizzaPocket", []string{"o@x.com"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	franchisee := &token.Claims{
		UserID: owner.ID,
		Roles:  []domain.RoleRef{{Role: domain.RoleFranchisee, ObjectID: franchise.ID}},
	}
	store, err := svc.CreateStore(ctx, franchisee, franchise.ID, "SLC")
	if err != nil {
		t.Fatalf("CreateStore by franchisee returned error: %v", err)
	}
	if store.ID == "" || store.Name != "SLC" {
		t.Fatalf("unexpected store: %+v", store)
	}

	if _, err := svc.CreateStore(ctx, adminClaims(), franchise.ID, "NYC"); err != nil {
		t.Fatalf("CreateStore by admin returned error: %v", err)
	}

	stranger := &token.Claims{UserID: "u999", Roles: []domain.RoleRef{{Role: domain.RoleDiner}}}
	if _, err := svc.CreateStore(ctx, stranger, franchise.ID, "LA"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	// Franchisee of a different franchise is treated like a stranger.
	other := &token.Claims{UserID: "u998", Roles: []domain.RoleRef{{Role: domain.RoleFranchisee, ObjectID: "f999"}}}
	if _, err := svc.CreateStore(ctx, other, franchise.ID, "SF"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign franchisee, got %v", err)
	}
}

func TestFranchiseService_DeleteStore(t *testing.T) {
	svc, franchises, users := newFranchiseFixture()
	ctx := context.Background()
	seedUser(t, users, "owner", "o@x.com", domain.RoleDiner)

	franchise, err := svc.Create(ctx, "pizzaPocket", []string{"o@x.com"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	store, err := svc.CreateStore(ctx, adminClaims(), franchise.ID, "SLC")
	if err != nil {
		t.Fatalf("CreateStore returned error: %v", err)
	}

	if err := svc.DeleteStore(ctx, adminClaims(), franchise.ID, store.ID); err != nil {
		t.Fatalf("DeleteStore returned error: %v", err)
	}
	stored, _ := franchises.FindByID(ctx, franchise.ID)
	if len(stored.Stores) != 0 {
		t.Fatalf("store still present: %+v", stored.Stores)
	}

	if err := svc.DeleteStore(ctx, adminClaims(), franchise.ID, store.ID); err != domain.ErrStoreNotFound {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestFranchiseService_ForUser(t *testing.T) {
	svc, _, users := newFranchiseFixture()
	ctx := context.Background()
	owner := seedUser(t, users, "owner", "o@x.com", domain.RoleDiner)

	if _, err := svc.Create(ctx, "pizzaPocket", []string{"o@x.com"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	mine, err := svc.ForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ForUser returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "pizzaPocket" {
		t.Fatalf("unexpected franchises: %+v", mine)
	}

	none, err := svc.ForUser(ctx, "someone-else")
	if err != nil {
		t.Fatalf("ForUser returned error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no franchises, got %+v", none)
	}
}
