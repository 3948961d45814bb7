package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/core/token"
)

const (
	identityKey = "auth_identity"
	rawTokenKey = "auth_raw_token"
)

// SetUser resolves the caller's identity from the Authorization header and
// injects it into the request context. It never rejects: routes that need an
// identity gate on it with RequireAuth or RequireRole. Malformed, revoked and
// never-issued tokens all leave the request anonymous, indistinguishably.
func SetUser(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := readBearerToken(c)
			if raw != "" {
				c.Set(rawTokenKey, raw)
				if claims := sessions.Resolve(c.Request().Context(), raw); claims != nil {
					c.Set(identityKey, claims)
				}
			}
			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Identity(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return next(c)
	}
}

// RequireRole rejects anonymous requests with 401 and authenticated requests
// lacking the role with 403. Membership is checked against the role snapshot
// taken when the token was issued.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Identity(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if !claims.HasRole(role) {
				return echo.NewHTTPError(http.StatusForbidden, "unauthorized")
			}
			return next(c)
		}
	}
}

// Identity returns the resolved claims for the request, or nil.
func Identity(c echo.Context) *token.Claims {
	claims, _ := c.Get(identityKey).(*token.Claims)
	return claims
}

// RawToken returns the bearer token presented on the request, verbatim.
func RawToken(c echo.Context) string {
	raw, _ := c.Get(rawTokenKey).(string)
	return raw
}

func readBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
