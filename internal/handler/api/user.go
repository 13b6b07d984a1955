package api

import (
	"net/http"

	reqdto "gear-ledger/internal/handler/dto/request"
	resdto "gear-ledger/internal/handler/dto/response"
	"gear-ledger/internal/handler/httperr"
	"gear-ledger/internal/usecase/commands"
	"gear-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	transfers commands.TransferCommands
	q         queries.TransactionQueries
}

func NewUserHandler(transfers commands.TransferCommands, q queries.TransactionQueries) *UserHandler {
	return &UserHandler{transfers: transfers, q: q}
}

// @Summary Transfer custody
// @Description Move every active checkout of a user to another user, all or nothing (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Source user ID"
// @Param request body reqdto.TransferRequest true "Transfer target"
// @Success 200 {object} resdto.TransferResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /users/{id}/transfer [post]
func (h *UserHandler) Transfer(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	fromID, ok := pathUUID(c, "id", "Invalid user id")
	if !ok {
		return
	}
	var req reqdto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.transfers.TransferCheckouts(c.Request.Context(), fromID, req.ToUserID, actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Transfer failed")
		return
	}
	res, err := resdto.FromTransferResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render transfer", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Active checkouts of a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} resdto.UserCheckoutsResponse
// @Failure 400 {object} httperr.Response
// @Router /users/{id}/checkouts [get]
func (h *UserHandler) Checkouts(c *gin.Context) {
	userID, ok := pathUUID(c, "id", "Invalid user id")
	if !ok {
		return
	}
	views, err := h.q.ListActiveByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load checkouts")
		return
	}
	items, err := resdto.FromTransactionViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render checkouts", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.UserCheckoutsResponse{Checkouts: items})
}
