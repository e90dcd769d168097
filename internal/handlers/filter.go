package handlers

import (
	"errors"
	"net/http"

	"sanisip/internal/models"
	"sanisip/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusStartDateSet = "start_date_set"
	statusReset        = "reset"

	errGetFilter       = "failed to load filter status"
	errFilterWrite     = "failed to update filter, please try again"
	errInvalidBodyPref = "invalid body: "
)

// Request DTO for setting the start date.
type startDateRequest struct {
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
}

// Request DTO for resetting days used.
type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// SetStartDateRequest is an exported model for Swagger docs of the start-date payload.
type SetStartDateRequest struct {
	// Filter installation date
	StartDate string `json:"start_date" example:"2026-03-01"`
}

// ResetRequest is an exported model for Swagger docs of the reset payload.
type ResetRequest struct {
	// Must be true; the reset cannot be undone
	Confirm bool `json:"confirm" example:"true"`
}

// Respond with a status and include the current filter status (best-effort).
func (h *Handler) respondWithFilter(c *gin.Context, status string) {
	resp := gin.H{"status": status}
	if fs, err := h.services.Filter.Status(c.Request.Context()); err == nil {
		resp["filter"] = fs
	}
	c.JSON(http.StatusOK, resp)
}

// filterWriteError maps service errors to user-visible responses.
func (h *Handler) filterWriteError(c *gin.Context, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrConfirmationRequired), errors.Is(err, service.ErrInvalidStartDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrWriteInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrWriteFailed):
		h.logAndJSONError(c, http.StatusBadGateway, errFilterWrite, logKey, err)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errFilterWrite, logKey, err)
	}
}

// @Summary      Filter status
// @Tags         filter
// @Produce      json
// @Success      200  {object}  models.FilterStatus
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/filter [get]
func (h *Handler) getFilter(c *gin.Context) {
	fs, err := h.services.Filter.Status(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetFilter, "filter_get_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, fs)
}

// @Summary      Set filter start date
// @Description  Replaces the filter document with the new date and zero days used.
// @Tags         filter
// @Accept       json
// @Produce      json
// @Param        body  body      SetStartDateRequest  true  "Start date payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/filter/start-date [post]
func (h *Handler) setStartDate(c *gin.Context) {
	var req startDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	date, ok := models.ParseDate(req.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidStartDate.Error()})
		return
	}
	if err := h.services.Filter.SetStartDate(c.Request.Context(), date); err != nil {
		h.filterWriteError(c, "filter_set_start_date_failed", err)
		return
	}
	h.respondWithFilter(c, statusStartDateSet)
}

// @Summary      Reset filter days used
// @Description  Sets FilterDaysUsed to 0 and keeps the start date. Requires confirm=true.
// @Tags         filter
// @Accept       json
// @Produce      json
// @Param        body  body      ResetRequest  true  "Confirmation"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/filter/reset [post]
func (h *Handler) resetDaysUsed(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Filter.ResetDaysUsed(c.Request.Context(), req.Confirm); err != nil {
		h.filterWriteError(c, "filter_reset_failed", err)
		return
	}
	h.respondWithFilter(c, statusReset)
}
