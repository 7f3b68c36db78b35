package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NameRequest selects a catalog entry by name.
type NameRequest struct {
	Name string `json:"name" binding:"required" example:"Dairy"`
}

// @Summary      Edit draft fields
// @Description  Sets one or more raw draft values. Each edited field is validated inline.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]string  true  "field name to raw value"
// @Success      200   {object}  map[string]interface{}  "status, state"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/draft/fields [patch]
func (h *Handler) editFields(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNoFields})
		return
	}
	st, err := h.services.Wizard.EditFields(c.Request.Context(), fields)
	h.respondState(c, st, err, "draft_edit_failed")
}

// @Summary      Select storage type
// @Description  Fills storage type, temperature range and max humidity from the catalog.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body      NameRequest  true  "storage type"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/draft/storage-type [post]
func (h *Handler) selectStorageType(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Wizard.SelectStorageType(c.Request.Context(), req.Name)
	h.respondState(c, st, err, "draft_storage_type_failed")
}

// @Summary      Apply temperature preset
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body      NameRequest  true  "preset"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/draft/preset [post]
func (h *Handler) selectPreset(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Wizard.SelectTemperaturePreset(c.Request.Context(), req.Name)
	h.respondState(c, st, err, "draft_preset_failed")
}

// @Summary      Next wizard step
// @Tags         draft
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string  "current step incomplete"
// @Router       /api/v1/draft/next [post]
func (h *Handler) nextStep(c *gin.Context) {
	st, err := h.services.Wizard.Next(c.Request.Context())
	h.respondState(c, st, err, "draft_next_failed")
}

// @Summary      Previous wizard step
// @Tags         draft
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/draft/prev [post]
func (h *Handler) prevStep(c *gin.Context) {
	st, err := h.services.Wizard.Prev(c.Request.Context())
	h.respondState(c, st, err, "draft_prev_failed")
}

// @Summary      Submit configuration
// @Description  Posts the draft to the write endpoint. Only available on the review step.
// @Tags         draft
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]interface{}  "validation errors"
// @Failure      429  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/draft/submit [post]
func (h *Handler) submit(c *gin.Context) {
	st, err := h.services.Wizard.Submit(c.Request.Context())
	h.respondState(c, st, err, "config_submit_failed")
}

// @Summary      Dismiss banner message
// @Tags         state
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/message [delete]
func (h *Handler) dismissMessage(c *gin.Context) {
	st := h.services.Wizard.DismissMessage(c.Request.Context())
	h.respondState(c, st, nil, "")
}
