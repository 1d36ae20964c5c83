package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	slots   *availability.GetSlots
	replace *availability.ReplaceAvailability
}

func NewAvailabilityHandler(slots *availability.GetSlots, replace *availability.ReplaceAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{slots: slots, replace: replace}
}

// Slots answers GET /availability/:expertId?month=YYYY-MM&serviceId=&hideBooked=.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	expertID, ok := paramID(c, "expertId")
	if !ok {
		return
	}

	q := availability.SlotQuery{Month: c.Query("month")}

	if raw := c.Query("serviceId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "serviceId must be a positive integer.")
			return
		}
		q.ServiceID = uint(id)
	}
	if raw := c.Query("hideBooked"); raw != "" {
		hide, err := strconv.ParseBool(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_hide_booked", "hideBooked must be true or false.")
			return
		}
		q.HideBooked = hide
	}

	days, err := h.slots.Execute(c.Request.Context(), expertID, q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *AvailabilityHandler) Replace(c *gin.Context) {
	expertID, ok := paramID(c, "expertId")
	if !ok {
		return
	}

	var req availability.ReplaceAvailabilityInput
	if !bindJSON(c, &req) {
		return
	}

	rows, err := h.replace.Execute(c.Request.Context(), middleware.ActorFrom(c), expertID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"availabilities": rows})
}
