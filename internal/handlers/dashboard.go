package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetSnapshot = "failed to load dashboard"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
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

// @Summary      Dashboard snapshot
// @Description  Latest reading, gauges, drinkability, TDS trend, connectivity and filter status.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	snap, err := h.services.Monitoring.GetSnapshot(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSnapshot, "dashboard_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// dashboardPage renders the server-side HTML view of the current snapshot.
func (h *Handler) dashboardPage(c *gin.Context) {
	snap, err := h.services.Monitoring.GetSnapshot(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("dashboard_page_failed", "err", err)
		}
		c.String(http.StatusInternalServerError, errGetSnapshot)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := renderDashboard(c.Writer, snap); err != nil && h.log != nil {
		h.log.Errorw("dashboard_render_failed", "err", err)
	}
}
