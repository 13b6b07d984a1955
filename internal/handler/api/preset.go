package api

import (
	"errors"
	"net/http"

	reqdto "gear-ledger/internal/handler/dto/request"
	resdto "gear-ledger/internal/handler/dto/response"
	"gear-ledger/internal/handler/httperr"
	"gear-ledger/internal/usecase/commands"
	"gear-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errPresetIDMismatch = errors.New("presetId in body does not match path")

type PresetHandler struct {
	cmds commands.PresetCommands
	q    queries.PresetQueries
}

func NewPresetHandler(cmds commands.PresetCommands, q queries.PresetQueries) *PresetHandler {
	return &PresetHandler{cmds: cmds, q: q}
}

// @Summary List presets
// @Description Active presets with their items and substitution edges
// @Tags presets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PresetResponse
// @Router /presets [get]
func (h *PresetHandler) List(c *gin.Context) {
	presets, err := h.q.ListActive(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Failed to list presets")
		return
	}
	res, err := resdto.FromPresets(presets)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render presets", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": res})
}

// @Summary Create preset
// @Tags presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePresetRequest true "Create preset request"
// @Success 201 {object} resdto.PresetResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /presets [post]
func (h *PresetHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	p, err := h.cmds.CreatePreset(c.Request.Context(), req.ToCommand(), actor)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Create preset failed")
		return
	}
	res, err := resdto.FromPreset(p)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render preset", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Detect presets
// @Description Score scanned assets against every active preset
// @Tags presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DetectRequest true "Scanned asset ids"
// @Success 200 {object} resdto.DetectResponse
// @Failure 400 {object} httperr.Response
// @Router /presets/detect [post]
func (h *PresetHandler) Detect(c *gin.Context) {
	var req reqdto.DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	matches, err := h.q.Detect(c.Request.Context(), req.AssetIDs)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Detection failed")
		return
	}
	res, err := resdto.FromMatches(matches)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render matches", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Validate substitutions
// @Description Keep the substitutions that are declared for the item and currently available
// @Tags presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID"
// @Param request body reqdto.ValidateSubstitutionsRequest true "Item to substitute mapping"
// @Success 200 {object} resdto.ValidateSubstitutionsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /presets/{id}/substitutions/validate [post]
func (h *PresetHandler) ValidateSubstitutions(c *gin.Context) {
	id, ok := pathUUID(c, "id", "Invalid preset id")
	if !ok {
		return
	}
	var req reqdto.ValidateSubstitutionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if req.PresetID != nil && *req.PresetID != id {
		httperr.AbortWithError(c, http.StatusBadRequest, errPresetIDMismatch, errPresetIDMismatch.Error(), nil)
		return
	}
	resolution, err := h.q.ValidateSubstitutions(c.Request.Context(), id, req.Substitutions)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err, "Validation failed")
		return
	}
	res, err := resdto.FromResolution(resolution)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render substitutions", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
