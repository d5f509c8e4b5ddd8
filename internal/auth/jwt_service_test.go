package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := model.User{ID: 4, Username: "editor1", Role: model.RoleEditor, Password: "secret1"}

	token, issued, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, issued.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 4, claims.UserID)
	assert.Equal(t, "editor1", claims.Username)
	assert.Equal(t, model.RoleEditor, claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.RemainingTTL().Seconds(), 5)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}

	otherKey, _, err := NewJWTService("other-secret", time.Hour).GenerateToken(user)
	require.NoError(t, err)

	expired, _, err := NewJWTService("test-secret", -time.Minute).GenerateToken(user)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Role: model.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{UserID: 1, Role: model.RoleAdmin}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", otherKey},
		{"expired", expired},
		{"alg none", none},
		{"unexpected hmac variant", hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestClaims_RemainingTTL(t *testing.T) {
	assert.Zero(t, (&Claims{}).RemainingTTL())

	past := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}}
	assert.Zero(t, past.RemainingTTL())
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.True(t, IsHashed(hash))

	tests := []struct {
		name   string
		stored string
		given  string
		want   bool
	}{
		{"plaintext match", "admin123", "admin123", true},
		{"plaintext mismatch", "admin123", "admin124", false},
		{"plaintext is case sensitive", "Admin123", "admin123", false},
		{"bcrypt match", hash, "admin123", true},
		{"bcrypt mismatch", hash, "wrong-password", false},
		{"hash text itself is not the password", hash, hash, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.stored, tt.given))
		})
	}
}

func TestRedisTokenStore_NilCacheNeverRevokes(t *testing.T) {
	s := NewTokenStore(nil)
	ctx := t.Context()

	assert.NoError(t, s.Revoke(ctx, "jti", time.Minute))
	assert.False(t, s.IsRevoked(ctx, "jti"))
}
