package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sanisip/internal/models"
	"sanisip/internal/service"

	"github.com/gin-gonic/gin"
)

const layoutDateTime = "2006-01-02 15:04:05"

var queryLayouts = []string{time.RFC3339, layoutDateTime, models.DateLayout}

// badQueryError carries a message safe to return to the client.
type badQueryError struct{ msg string }

func (e *badQueryError) Error() string { return e.msg }

func badQuery(format string, args ...any) error {
	return &badQueryError{msg: fmt.Sprintf(format, args...)}
}

// parseLogQuery builds a LogFilter from the from, to and type query params.
// A date-only 'to' covers that whole day.
func parseLogQuery(c *gin.Context) (service.LogFilter, error) {
	var f service.LogFilter
	if raw := c.Query("from"); raw != "" {
		t, ok := parseQueryTime(raw)
		if !ok {
			return f, badQuery("invalid 'from' time; use RFC3339 or YYYY-MM-DD")
		}
		f.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, ok := parseQueryTime(raw)
		if !ok {
			return f, badQuery("invalid 'to' time; use RFC3339 or YYYY-MM-DD")
		}
		if !strings.ContainsAny(raw, "T ") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, badQuery("'from' must be <= 'to'")
	}
	f.Type = strings.ToUpper(strings.TrimSpace(c.Query("type")))
	if f.Type != "" && !models.IsEventType(f.Type) {
		return f, badQuery("unknown event type %q", f.Type)
	}
	return f, nil
}

func parseQueryTime(s string) (time.Time, bool) {
	for _, layout := range queryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// @Summary      List logs
// @Description  Filter logs by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2026-03-01)
// @Param        to    query   string  false  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day."  example(2026-03-31)
// @Param        type  query   string  false  "Event type"  Enums(FILTER_START_DATE,FILTER_RESET,ONLINE,OFFLINE,DRINK_STATUS)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	f, err := parseLogQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	events, err := h.services.EventLog.List(c.Request.Context(), f)
	switch {
	case errors.Is(err, service.ErrInvalidTimeRange), errors.Is(err, service.ErrUnknownEventType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		if h.log != nil {
			h.log.Errorw("logs_list_failed", "err", err, "from", f.From, "to", f.To, "type", f.Type)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}
