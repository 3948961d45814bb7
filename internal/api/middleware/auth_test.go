package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

// stubSessions resolves a fixed set of tokens and records what it was asked.
type stubSessions struct {
	byToken map[string]*token.Claims
	asked   []string
}

func (s *stubSessions) Resolve(_ context.Context, raw string) *token.Claims {
	s.asked = append(s.asked, raw)
	return s.byToken[raw]
}

func (s *stubSessions) StartSession(context.Context, *domain.User) (string, error) { return "", nil }
func (s *stubSessions) EndSession(context.Context, string) error                   { return nil }

func dinerIdentity() *token.Claims {
	return &token.Claims{UserID: "u1", Roles: []domain.RoleRef{{Role: domain.RoleDiner}}}
}

func invoke(t *testing.T, sessions *stubSessions, authHeader string, handler echo.HandlerFunc, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		chain = mw[i](chain)
	}
	chain = SetUser(sessions)(chain)
	return rec, chain(c)
}

func TestSetUser_ResolvesIdentity(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*token.Claims{"tok": dinerIdentity()}}

	var got *token.Claims
	var raw string
	_, err := invoke(t, sessions, "Bearer tok", func(c echo.Context) error {
		got = Identity(c)
		raw = RawToken(c)
		return nil
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got == nil || got.UserID != "u1" {
		t.Fatalf("identity not injected: %+v", got)
	}
	if raw != "tok" {
		t.Fatalf("raw token not preserved: %q", raw)
	}
}

func TestSetUser_AnonymousPassesThrough(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"unknown token", "Bearer revoked"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sessions := &stubSessions{byToken: map[string]*token.Claims{}}
			called := false
			_, err := invoke(t, sessions, tc.header, func(c echo.Context) error {
				called = true
				if Identity(c) != nil {
					t.Fatalf("expected anonymous request")
				}
				return nil
			})
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !called {
				t.Fatalf("handler not reached")
			}
		})
	}
}

func TestSetUser_CaseInsensitiveScheme(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*token.Claims{"tok": dinerIdentity()}}

	_, err := invoke(t, sessions, "bearer tok", func(c echo.Context) error {
		if Identity(c) == nil {
			t.Fatalf("lowercase scheme rejected")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
}

func TestRequireAuth(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*token.Claims{"tok": dinerIdentity()}}

	_, err := invoke(t, sessions, "", func(c echo.Context) error { return nil }, RequireAuth)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous request, got %v", err)
	}

	if _, err := invoke(t, sessions, "Bearer tok", func(c echo.Context) error { return nil }, RequireAuth); err != nil {
		t.Fatalf("authenticated request rejected: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*token.Claims{"tok": dinerIdentity()}}
	gate := RequireRole(domain.RoleAdmin)

	_, err := invoke(t, sessions, "", func(c echo.Context) error { return nil }, gate)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous request, got %v", err)
	}

	_, err = invoke(t, sessions, "Bearer tok", func(c echo.Context) error { return nil }, gate)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for diner, got %v", err)
	}

	sessions.byToken["admintok"] = &token.Claims{UserID: "a1", Roles: []domain.RoleRef{{Role: domain.RoleAdmin}}}
	if _, err := invoke(t, sessions, "Bearer admintok", func(c echo.Context) error { return nil }, gate); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
}

// The resolver sees exactly the bearer token, never the scheme prefix.
func TestSetUser_PassesBareToken(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*token.Claims{}}

	_, err := invoke(t, sessions, "Bearer abc.def.ghi", func(c echo.Context) error { return nil })
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(sessions.asked) != 1 || sessions.asked[0] != "abc.def.ghi" {
		t.Fatalf("unexpected resolver input: %v", sessions.asked)
	}
}
