package handlers

import (
	"net/http"
	"strconv"

	"bizhub/services/availability"
	"bizhub/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves free dates and slots of a business.
type AvailabilityHandler struct {
	Availability availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: svc}
}

// OverviewHandler handles ?startDate&endDate&duration&eventId.
func (h *AvailabilityHandler) OverviewHandler(c *gin.Context) {
	start, end := c.Query("startDate"), c.Query("endDate")
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "startDate and endDate are required", "")
		return
	}
	duration, ok := durationQuery(c)
	if !ok {
		return
	}
	overview, err := h.Availability.Overview(c.Request.Context(), c.Param("businessID"), start, end, duration, c.Query("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// SlotsHandler handles ?date&duration.
func (h *AvailabilityHandler) SlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date is required", "")
		return
	}
	duration, ok := durationQuery(c)
	if !ok {
		return
	}
	slots, err := h.Availability.Slots(c.Request.Context(), c.Param("businessID"), date, duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availableSlots": slots})
}

func durationQuery(c *gin.Context) (int, bool) {
	raw := c.Query("duration")
	if raw == "" {
		return 0, true
	}
	d, err := strconv.Atoi(raw)
	if err != nil || d < 0 {
		utils.JSONError(c, http.StatusBadRequest, "duration must be a positive number of minutes", "")
		return 0, false
	}
	return d, true
}
