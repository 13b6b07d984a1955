//go:build e2e

package helper

import (
	"testing"

	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/pkg/config"
	"gear-ledger/tests/common/authtest"
	"gear-ledger/tests/common/dbtest"

	"github.com/google/uuid"
)

// Session is a persisted user plus a bearer token that acts as them.
type Session struct {
	UserID uuid.UUID
	Token  string
}

type JWTTestHelper struct {
	tokens *authtest.JWTHelper
}

func NewJWTTestHelper(cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{tokens: authtest.NewJWTHelper(cfg)}
}

// CreateSession inserts a user with role and signs a token for them. Identity
// is owned by an upstream service, so there is no login round trip.
func (h *JWTTestHelper) CreateSession(t *testing.T, db dbtest.DBLike, name string, role user.Role) Session {
	t.Helper()
	id := dbtest.CreateTestUser(t, db, name, role.String())
	return Session{UserID: id, Token: h.tokens.GenerateToken(t, id, role)}
}
