package middleware

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/auth"
	"warehouse/internal/errors"
	"warehouse/internal/model"
)

// mockAuthenticator implements Authenticator for testing.
type mockAuthenticator struct {
	authenticateFunc func(ctx context.Context, token string) (*auth.Claims, error)
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, token)
	}
	return nil, stderrors.New("not implemented")
}

func tokenFor(role model.Role) *mockAuthenticator {
	return &mockAuthenticator{
		authenticateFunc: func(_ context.Context, token string) (*auth.Claims, error) {
			if token != "good" {
				return nil, auth.ErrInvalidToken
			}
			return &auth.Claims{UserID: 1, Username: "someone", Role: role}, nil
		},
	}
}

func newTestEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = errors.HTTPErrorHandler
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, mw...)
	return e
}

func serve(e *echo.Echo, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errors.ErrorBody {
	t.Helper()
	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		expectedStatus int
		expectedCode   string
	}{
		{name: "missing key", key: "", expectedStatus: http.StatusUnauthorized, expectedCode: "API_KEY_MISSING"},
		{name: "wrong key", key: "654321", expectedStatus: http.StatusUnauthorized, expectedCode: "INVALID_API_KEY"},
		{name: "prefix of key", key: "1234", expectedStatus: http.StatusUnauthorized, expectedCode: "INVALID_API_KEY"},
		{name: "valid key", key: "123456", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(APIKey("123456"))
			headers := map[string]string{}
			if tt.key != "" {
				headers[HeaderAPIKey] = tt.key
			}

			rec := serve(e, headers)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				body := decodeError(t, rec)
				assert.Equal(t, tt.expectedCode, body.Code)
				assert.Equal(t, "/test", body.Path)
				assert.Empty(t, body.Details)
			}
		})
	}
}

func TestJWT(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{name: "missing authorization header", authHeader: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic good", expectedStatus: http.StatusUnauthorized},
		{name: "invalid token", authHeader: "Bearer bad", expectedStatus: http.StatusUnauthorized},
		{name: "valid token", authHeader: "Bearer good", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(JWT(tokenFor(model.RoleViewer)))
			headers := map[string]string{}
			if tt.authHeader != "" {
				headers[echo.HeaderAuthorization] = tt.authHeader
			}

			rec := serve(e, headers)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				body := decodeError(t, rec)
				assert.Equal(t, "INVALID_TOKEN", body.Code)
				assert.Equal(t, "Invalid or expired token", body.Message)
			}
		})
	}
}

func TestJWT_StoresClaims(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = errors.HTTPErrorHandler

	var got *auth.Claims
	e.GET("/test", func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		got = claims
		return c.NoContent(http.StatusNoContent)
	}, JWT(tokenFor(model.RoleEditor)))

	rec := serve(e, map[string]string{echo.HeaderAuthorization: "Bearer good"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, model.RoleEditor, got.Role)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		role           model.Role
		allowed        model.RoleSet
		expectedStatus int
		expectedRoles  []interface{}
	}{
		{name: "viewer cannot write", role: model.RoleViewer, allowed: model.WriterRoles, expectedStatus: http.StatusForbidden, expectedRoles: []interface{}{"editor", "admin"}},
		{name: "editor can write", role: model.RoleEditor, allowed: model.WriterRoles, expectedStatus: http.StatusOK},
		{name: "admin can write", role: model.RoleAdmin, allowed: model.WriterRoles, expectedStatus: http.StatusOK},
		{name: "editor cannot delete", role: model.RoleEditor, allowed: model.AdminRoles, expectedStatus: http.StatusForbidden, expectedRoles: []interface{}{"admin"}},
		{name: "admin can delete", role: model.RoleAdmin, allowed: model.AdminRoles, expectedStatus: http.StatusOK},
		{name: "unknown role", role: model.Role("root"), allowed: model.AdminRoles, expectedStatus: http.StatusForbidden, expectedRoles: []interface{}{"admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(JWT(tokenFor(tt.role)), RequireRole(tt.allowed))

			rec := serve(e, map[string]string{echo.HeaderAuthorization: "Bearer good"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusForbidden {
				body := decodeError(t, rec)
				assert.Equal(t, "INSUFFICIENT_PERMISSIONS", body.Code)
				assert.Equal(t, tt.expectedRoles, body.Details["requiredRoles"])
			}
		})
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	e := newTestEcho(RequireRole(model.WriterRoles))

	rec := serve(e, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", decodeError(t, rec).Code)
}
