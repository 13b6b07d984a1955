//go:build unit

package api_test

import (
	"net/http"
	"time"

	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/handler/middleware"
	"gear-ledger/internal/usecase/queries"
	"gear-ledger/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const bearer = "bearer-token"

var t0 = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

// fakeAuth stands in for RequireAuth: any bearer token resolves to actor.
func fakeAuth(actor shared.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetActor(c, actor)
		c.Next()
	}
}

func newActor(role user.Role) shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: role}
}

func transactionView(id, assetID uuid.UUID) *queries.TransactionView {
	holder := uuid.New()
	name := "Olive Operator"
	return &queries.TransactionView{
		ID:         id,
		AssetID:    assetID,
		AssetName:  "Sony FX3",
		UserID:     &holder,
		UserName:   &name,
		Type:       "CHECK_OUT",
		Status:     "ACTIVE",
		CheckoutAt: t0,
		CreatedBy:  holder,
		CreatedAt:  t0,
		UpdatedAt:  t0,
	}
}
