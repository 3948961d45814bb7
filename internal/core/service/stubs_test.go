package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

var errStoreDown = errors.New("store down")

// memSessionStore is an in-memory ports.SessionStore with switchable failure
// injection.
type memSessionStore struct {
	bySig  map[string]string
	byUser map[string]string
	fail   bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{bySig: make(map[string]string), byUser: make(map[string]string)}
}

func (m *memSessionStore) RecordActive(_ context.Context, userID, signature string) error {
	if m.fail {
		return errStoreDown
	}
	if old, ok := m.byUser[userID]; ok {
		delete(m.bySig, old)
	}
	m.byUser[userID] = signature
	m.bySig[signature] = userID
	return nil
}

func (m *memSessionStore) ClearActive(_ context.Context, signature string) error {
	if m.fail {
		return errStoreDown
	}
	if userID, ok := m.bySig[signature]; ok {
		delete(m.bySig, signature)
		if m.byUser[userID] == signature {
			delete(m.byUser, userID)
		}
	}
	return nil
}

func (m *memSessionStore) IsActive(_ context.Context, signature string) (bool, error) {
	if m.fail {
		return false, errStoreDown
	}
	_, ok := m.bySig[signature]
	return ok, nil
}

// stubUserRepo is an in-memory ports.UserRepository.
type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.RoleRef(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "u" + strconv.Itoa(r.nextID)
	r.byID[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int, name string) ([]*domain.User, bool, error) {
	var all []*domain.User
	for _, u := range r.byID {
		if name == "*" || strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			all = append(all, cloneUser(u))
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

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// countMetrics records business events for assertions.
type countMetrics struct {
	authSuccess int
	authFailure int
	logouts     int
	sold        int
	failed      int
	revenue     float64
}

func (m *countMetrics) AuthAttempt(success bool) {
	if success {
		m.authSuccess++
	} else {
		m.authFailure++
	}
}

func (m *countMetrics) Logout() { m.logouts++ }

func (m *countMetrics) PizzaPurchase(success bool, _ time.Duration, revenue float64) {
	if success {
		m.sold++
		m.revenue += revenue
	} else {
		m.failed++
	}
}
