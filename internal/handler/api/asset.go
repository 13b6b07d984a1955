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

type AssetHandler struct {
	cmds commands.AssetCommands
	q    queries.AssetQueries
}

func NewAssetHandler(cmds commands.AssetCommands, q queries.AssetQueries) *AssetHandler {
	return &AssetHandler{cmds: cmds, q: q}
}

// @Summary Register asset
// @Description Register a new asset in AVAILABLE status (operator or admin)
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAssetRequest true "Create asset request"
// @Success 201 {object} resdto.AssetResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	created, err := h.cmds.RegisterAsset(c.Request.Context(), req.ToParams(), actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Create asset failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), created.ID())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load asset", nil)
		return
	}
	res, err := resdto.FromAssetView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render asset", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Get asset
// @Description Get an asset with its current holder
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Success 200 {object} resdto.AssetResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /assets/{id} [get]
func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id", "Invalid asset id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load asset")
		return
	}
	res, err := resdto.FromAssetView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render asset", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Asset history
// @Description List an asset's ledger, newest first, with keyset pagination
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.AssetHistoryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /assets/{id}/transactions [get]
func (h *AssetHandler) History(c *gin.Context) {
	id, ok := pathUUID(c, "id", "Invalid asset id")
	if !ok {
		return
	}
	views, next, err := h.q.History(c.Request.Context(), id, c.Query("after"), queryLimit(c))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load history")
		return
	}
	items, err := resdto.FromTransactionViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render history", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AssetHistoryResponse{Transactions: items, NextCursor: next})
}
