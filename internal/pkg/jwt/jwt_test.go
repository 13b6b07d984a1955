//go:build unit

package jwt

import (
	"testing"
	"time"

	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/pkg/clock"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(t0)
	svc := NewService("secret", time.Hour, WithClock(clk))
	id := uuid.New()

	t.Run("発行したトークンを検証できる", func(t *testing.T) {
		token, err := svc.GenerateToken(id, user.RoleOperator)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, id, claims.UserID)
		assert.Equal(t, "operator", claims.Role)
		assert.Equal(t, Issuer, claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("期限切れ", func(t *testing.T) {
		issuer := NewService("secret", time.Minute, WithClock(clock.NewMockClock(t0.Add(-2*time.Hour))))
		token, err := issuer.GenerateToken(id, user.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("leeway absorbs small clock skew", func(t *testing.T) {
		issuer := NewService("secret", time.Minute, WithClock(clock.NewMockClock(t0.Add(-70*time.Second))))
		token, err := issuer.GenerateToken(id, user.RoleViewer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, ErrExpiredToken)

		lenient := NewService("secret", time.Hour, WithClock(clk), WithLeeway(30*time.Second))
		_, err = lenient.ValidateToken(token)
		require.NoError(t, err)
	})

	t.Run("別の鍵で署名されたトークンは無効", func(t *testing.T) {
		other := NewService("other", time.Hour, WithClock(clk))
		token, err := other.GenerateToken(id, user.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("invalid claims", func(t *testing.T) {
		sign := func(t *testing.T, c Claims) string {
			token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, c).SignedString([]byte("secret"))
			require.NoError(t, err)
			return token
		}
		exp := gojwt.NewNumericDate(t0.Add(time.Hour))

		tests := []struct {
			name   string
			claims Claims
		}{
			{name: "発行者が違う", claims: Claims{UserID: id, Role: "admin", RegisteredClaims: gojwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: exp}}},
			{name: "no expiry", claims: Claims{UserID: id, Role: "admin", RegisteredClaims: gojwt.RegisteredClaims{Issuer: Issuer}}},
			{name: "nil user id", claims: Claims{Role: "admin", RegisteredClaims: gojwt.RegisteredClaims{Issuer: Issuer, ExpiresAt: exp}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.ValidateToken(sign(t, tt.claims))
				require.ErrorIs(t, err, ErrInvalidToken)
			})
		}
	})

	t.Run("HS256以外のアルゴリズムは拒否", func(t *testing.T) {
		claims := Claims{UserID: id, Role: "admin", RegisteredClaims: gojwt.RegisteredClaims{Issuer: Issuer, ExpiresAt: gojwt.NewNumericDate(t0.Add(time.Hour))}}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
