package service

import (
	"context"
	"fmt"

	"warehouse/internal/auth"
	"warehouse/internal/errors"
	"warehouse/internal/model"
	"warehouse/internal/store"
)

// AuthService handles login, logout and token verification.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

type authService struct {
	users      store.Document[model.User]
	jwtService *auth.JWTService
	tokenStore auth.TokenStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(users store.Document[model.User], jwtService *auth.JWTService, tokenStore auth.TokenStore) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login looks the user up by username and issues a token on a password match.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	var found *model.User
	users := s.users.Load(ctx)
	for i := range users {
		if users[i].Username == username {
			found = &users[i]
			break
		}
	}
	if found == nil || !auth.CheckPassword(found.Password, password) {
		return "", nil, errors.InvalidCredentials()
	}

	token, _, err := s.jwtService.GenerateToken(*found)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, found, nil
}

// Logout revokes the token the claims were read from.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return errors.InvalidToken()
	}
	if err := s.tokenStore.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Authenticate verifies token and rejects revoked ones.
func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.ID != "" && s.tokenStore.IsRevoked(ctx, claims.ID) {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}
