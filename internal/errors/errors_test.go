package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilDetailsBecomesEmptyObject(t *testing.T) {
	e := New("X", http.StatusTeapot, "x", nil)
	b, err := json.Marshal(e.ToErrorResponse("/p"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"details":{}`)
}

func TestMapErrorToHTTP(t *testing.T) {
	notFound := ProductNotFound(7)
	wrapped := fmt.Errorf("lookup: %w", notFound)
	assert.Same(t, notFound, MapErrorToHTTP(wrapped, "ignored"))

	cause := stderrors.New("disk full")
	internal := MapErrorToHTTP(cause, "Error creating product")
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", internal.Code)
	assert.Equal(t, "Error creating product", internal.Message)
	assert.Equal(t, "disk full", internal.Details["error"])
	assert.ErrorIs(t, internal, cause)
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error passes through", InvalidAPIKey(), http.StatusUnauthorized, "INVALID_API_KEY"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"echo method not allowed", echo.ErrMethodNotAllowed, http.StatusNotFound, "NOT_FOUND"},
		{"echo payload too large", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "REQUEST_ENTITY_TOO_LARGE"},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/x?y=1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			HTTPErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, "/api/x?y=1", body.Error.Path)
			assert.NotEmpty(t, body.Error.Timestamp)
		})
	}
}

func TestHTTPErrorHandler_FallbackDetails(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/productos", nil)
	rec := httptest.NewRecorder()

	HTTPErrorHandler(fmt.Errorf("kaboom"), e.NewContext(req, rec))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "POST", body.Error.Details["method"])
	assert.Equal(t, "/api/productos", body.Error.Details["url"])
	assert.Equal(t, "kaboom", body.Error.Details["error"])
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", statusCode(http.StatusBadRequest))
	assert.Equal(t, "HTTP_ERROR", statusCode(999))
}
