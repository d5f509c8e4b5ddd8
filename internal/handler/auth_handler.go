package handler

import (
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"warehouse/internal/errors"
	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/service"
)

var loginFields = []string{"username", "password", "apiKey"}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"min=3" example:"admin"`
	Password string `json:"password" validate:"min=6" example:"admin123"`
	APIKey   string `json:"apiKey" example:"123456"`
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	Token string         `json:"token"`
	User  model.UserView `json:"user"`
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} errors.SuccessResponse{data=LoginResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /usuarios/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	body, err := decodeObject(c)
	if err != nil {
		return err
	}

	provided := make(map[string]bool, len(loginFields))
	complete := true
	for _, f := range loginFields {
		provided[f] = truthy(body[f])
		complete = complete && provided[f]
	}
	if !complete {
		return errors.MissingLoginFields(provided)
	}

	types := make(map[string]string, len(loginFields))
	allStrings := true
	for _, f := range loginFields {
		v, present := body[f]
		types[f] = typeOf(v, present)
		allStrings = allStrings && types[f] == "string"
	}
	if !allStrings {
		return errors.InvalidDataTypes("Username, password and apiKey must be strings", types)
	}

	req := LoginRequest{
		Username: body["username"].(string),
		Password: body["password"].(string),
		APIKey:   body["apiKey"].(string),
	}
	if err := c.Validate(req); err != nil {
		return errors.InvalidFieldLength(utf8.RuneCountInString(req.Username), utf8.RuneCountInString(req.Password))
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errors.MapErrorToHTTP(err, "Internal server error during authentication")
	}

	return respond(c, http.StatusOK, "LOGIN_SUCCESS", "Login successful", LoginResponse{
		Token: token,
		User:  user.View(),
	})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the presented token until it expires.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /usuarios/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return errors.InvalidToken()
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return errors.MapErrorToHTTP(err, "Error revoking token")
	}
	return respond(c, http.StatusOK, "LOGOUT_SUCCESS", "Logout successful", map[string]string{
		"username": claims.Username,
	})
}
