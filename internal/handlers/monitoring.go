package handlers

import (
	"net/http"

	"cryosure/internal/dashboard"

	"github.com/gin-gonic/gin"
)

// ViewRequest switches the active screen.
type ViewRequest struct {
	// Allowed: config, monitoring
	View string `json:"view" binding:"required" example:"monitoring"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get view model
// @Tags         state
// @Produce      json
// @Success      200  {object}  dashboard.State
// @Router       /api/v1/state [get]
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.GetState(c.Request.Context()))
}

// @Summary      Switch view
// @Description  Entering monitoring starts polling; leaving it stops polling.
// @Tags         state
// @Accept       json
// @Produce      json
// @Param        body  body      ViewRequest  true  "view"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/view [post]
func (h *Handler) switchView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Monitoring.SwitchView(c.Request.Context(), dashboard.View(req.View))
	h.respondState(c, st, err, "view_switch_failed")
}

// @Summary      Get monitoring data
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "readings, snapshot, lastDataFetch, fetchError, loadingLiveData"
// @Router       /api/v1/monitoring [get]
func (h *Handler) getMonitoring(c *gin.Context) {
	st := h.services.Monitoring.GetState(c.Request.Context())
	c.JSON(http.StatusOK, monitoringView(st))
}

// @Summary      Refresh sensor data now
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/monitoring/refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	st, err := h.services.Monitoring.Refresh(c.Request.Context())
	if err != nil {
		h.respondState(c, st, err, "monitoring_refresh_failed")
		return
	}
	c.JSON(http.StatusOK, monitoringView(st))
}

func monitoringView(st dashboard.State) gin.H {
	return gin.H{
		"readings":        st.Readings,
		"count":           len(st.Readings),
		"snapshot":        st.Snapshot,
		"lastDataFetch":   st.LastDataFetch,
		"fetchError":      st.FetchError,
		"loadingLiveData": st.LoadingLiveData,
	}
}

// @Summary      Recent notifications
// @Tags         state
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, notifications"
// @Router       /api/v1/notifications [get]
func (h *Handler) getNotifications(c *gin.Context) {
	st := h.services.Monitoring.GetState(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"count":         len(st.Notifications),
		"notifications": st.Notifications,
	})
}

// @Summary      Storage type catalog
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  models.StorageTypePreset
// @Router       /api/v1/catalog/storage-types [get]
func (h *Handler) getStorageTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Catalog.StorageTypes())
}

// @Summary      Temperature preset catalog
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  models.TemperaturePreset
// @Router       /api/v1/catalog/temperature-presets [get]
func (h *Handler) getTemperaturePresets(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Catalog.TemperaturePresets())
}
