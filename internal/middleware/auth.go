// Package middleware holds the per-route access checks: API key, bearer
// token and role. Each check rejects with the error envelope and stops the
// chain.
package middleware

import (
	"context"
	"crypto/subtle"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"warehouse/internal/auth"
	"warehouse/internal/errors"
	"warehouse/internal/model"
)

const (
	// HeaderAPIKey carries the shared API key.
	HeaderAPIKey = "X-API-Key"
	// ClaimsKey is the echo context key holding *auth.Claims.
	ClaimsKey = "user"
)

// Authenticator verifies a raw bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// APIKey rejects requests whose X-API-Key header is absent or wrong.
func APIKey(expected string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderAPIKey)
			if key == "" {
				return errors.APIKeyMissing()
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
				return errors.InvalidAPIKey()
			}
			return next(c)
		}
	}
}

// JWT reads "Authorization: Bearer <token>" and stores the verified claims
// under ClaimsKey.
func JWT(authenticator Authenticator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ClaimsKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authenticator.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Debugf("token rejected: %v", err)
			return errors.InvalidToken()
		},
	})
}

// RequireRole lets through only tokens whose role is in allowed.
func RequireRole(allowed model.RoleSet) echo.MiddlewareFunc {
	required := make([]string, 0, 3)
	for _, r := range allowed.Roles() {
		required = append(required, string(r))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || !allowed.Allows(claims.Role) {
				return errors.InsufficientPermissions(required)
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by JWT.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
