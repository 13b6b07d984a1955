package api

import (
	"net/http"

	"gear-ledger/internal/domain/asset"
	reqdto "gear-ledger/internal/handler/dto/request"
	resdto "gear-ledger/internal/handler/dto/response"
	"gear-ledger/internal/handler/httperr"
	"gear-ledger/internal/handler/middleware"
	"gear-ledger/internal/usecase/commands"
	"gear-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	cmds commands.TransactionCommands
	q    queries.TransactionQueries
}

func NewTransactionHandler(cmds commands.TransactionCommands, q queries.TransactionQueries) *TransactionHandler {
	return &TransactionHandler{cmds: cmds, q: q}
}

// @Summary Check out or check in one asset
// @Description Apply a CHECK_OUT or CHECK_IN to a single asset atomically
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProcessTransactionRequest true "Transaction request"
// @Success 201 {object} resdto.TransactionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /transactions [post]
func (h *TransactionHandler) Process(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.ProcessTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Process(c.Request.Context(), req.ToCommand(), actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Transaction failed")
		return
	}
	// The write has committed; a failed read-back must not turn it into a 500.
	view, err := h.q.GetByID(c.Request.Context(), result.Transaction.ID())
	if err != nil {
		middleware.LoggerFrom(c.Request.Context()).Warn("transaction read-back failed, rendering from command result",
			"transaction_id", result.Transaction.ID().String(),
			"error", err.Error())
		c.JSON(http.StatusCreated, resdto.FromProcessResult(result))
		return
	}
	res, err := resdto.FromTransactionView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render transaction", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Process a batch of transactions
// @Description Each item commits on its own; the report is returned with 200 even when some items fail
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BatchTransactionRequest true "Batch request"
// @Success 200 {object} resdto.BatchReportResponse
// @Failure 400 {object} httperr.Response
// @Router /transactions/batch [post]
func (h *TransactionHandler) ProcessBatch(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.BatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	report, err := h.cmds.ProcessBatch(c.Request.Context(), req.ToCommand(), actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Batch failed")
		return
	}
	res, err := resdto.FromBatchReport(report)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render report", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id", "Invalid transaction id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to load transaction")
		return
	}
	res, err := resdto.FromTransactionView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render transaction", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Preflight a cart
// @Description Dry-run the state machine for every asset; nothing is written
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PreflightRequest true "Preflight request"
// @Success 200 {object} resdto.PreflightResponse
// @Failure 400 {object} httperr.Response
// @Router /transactions/preflight [post]
func (h *TransactionHandler) Preflight(c *gin.Context) {
	var req reqdto.PreflightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	results, err := h.q.Preflight(c.Request.Context(), asset.Action(req.Action), req.AssetIDs)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Preflight failed")
		return
	}
	res, err := resdto.FromPreflight(results)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render preflight", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
