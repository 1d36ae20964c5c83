package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/usecase/catalog"
)

type ClientHandler struct {
	list *catalog.ListClients
}

func NewClientHandler(list *catalog.ListClients) *ClientHandler {
	return &ClientHandler{list: list}
}

// ======================================================
// LIST CLIENTS (EXPERT)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	expertID, ok := paramID(c, "expertId")
	if !ok {
		return
	}

	clients, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c), expertID, c.Query("query"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients)
}
