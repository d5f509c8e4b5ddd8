package errors

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// TimestampLayout is ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp returns the current UTC time in TimestampLayout.
func Timestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// ErrorBody is the inner object of an error envelope.
type ErrorBody struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details"`
	Timestamp string                 `json:"timestamp"`
	Path      string                 `json:"path"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// SuccessResponse is the success envelope.
type SuccessResponse struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
	Path      string      `json:"path"`
}

// ToErrorResponse renders e as an envelope for the given request path.
func (e *APIError) ToErrorResponse(path string) ErrorResponse {
	details := e.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Details:   details,
			Timestamp: Timestamp(),
			Path:      path,
		},
	}
}

// HTTPErrorHandler is installed as echo's error handler so that route
// failures, unmatched routes and panics all share the error envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	req := c.Request()
	apiErr := fromEcho(err, c)

	var writeErr error
	if req.Method == http.MethodHead {
		writeErr = c.NoContent(apiErr.Status)
	} else {
		writeErr = c.JSON(apiErr.Status, apiErr.ToErrorResponse(req.URL.RequestURI()))
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

func fromEcho(err error, c echo.Context) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var he *echo.HTTPError
	if stderrors.As(err, &he) && he.Code != http.StatusInternalServerError {
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			return RouteNotFound()
		}
		return New(statusCode(he.Code), he.Code, http.StatusText(he.Code), nil).Wrap(he)
	}

	req := c.Request()
	return New("INTERNAL_SERVER_ERROR", http.StatusInternalServerError, "Internal server error", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.RequestURI(),
		"error":  err.Error(),
	})
}

// statusCode turns "Request Entity Too Large" into "REQUEST_ENTITY_TOO_LARGE".
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "HTTP_ERROR"
	}
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			out = append(out, ch-'a'+'A')
		case ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
			out = append(out, ch)
		default:
			if len(out) > 0 && out[len(out)-1] != '_' {
				out = append(out, '_')
			}
		}
	}
	return string(out)
}
