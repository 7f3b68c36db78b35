package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cryosure/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRangeInvalid = "'from' must be <= 'to'"
	errListConfigs  = "failed to load configurations"
	errLoadActive   = "failed to load active configuration"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List saved configurations
// @Description  Most recent first. If 'to' is date-only it is treated as end-of-day inclusive.
// @Tags         configs
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        type  query   string  false  "Storage type, case-insensitive"  example(Dairy)
// @Success      200   {object}  map[string]interface{}  "count, configs"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/configs [get]
func (h *Handler) getConfigs(c *gin.Context) {
	var (
		from, to    time.Time
		storageType = strings.TrimSpace(c.Query("type"))
		err         error
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errRangeInvalid})
		return
	}

	configs, err := h.services.History.List(c.Request.Context(), service.ConfigFilter{
		From:        from,
		To:          to,
		StorageType: storageType,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListConfigs, "configs_list_failed", err,
			"from", from, "to", to, "type", storageType)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(configs),
		"configs": configs,
	})
}

// @Summary      Active thresholds
// @Tags         configs
// @Produce      json
// @Success      200  {object}  models.ActiveThresholds
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/configs/active [get]
func (h *Handler) getActiveConfig(c *gin.Context) {
	active, err := h.services.History.Active(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveConfig) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadActive, "configs_active_failed", err)
		return
	}
	c.JSON(http.StatusOK, active)
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
