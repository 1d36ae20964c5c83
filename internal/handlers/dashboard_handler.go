package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/usecase/dashboard"
)

type DashboardHandler struct {
	stats *dashboard.Stats
}

func NewDashboardHandler(stats *dashboard.Stats) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

func (h *DashboardHandler) Expert(c *gin.Context) {
	expertID, ok := paramID(c, "expertId")
	if !ok {
		return
	}

	out, err := h.stats.ForExpert(c.Request.Context(), middleware.ActorFrom(c), expertID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) Client(c *gin.Context) {
	clientID, ok := paramID(c, "clientId")
	if !ok {
		return
	}

	out, err := h.stats.ForClient(c.Request.Context(), middleware.ActorFrom(c), clientID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
