package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/usecase/catalog"
)

type ReviewHandler struct {
	reviews *catalog.Reviews
}

func NewReviewHandler(reviews *catalog.Reviews) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	expertID, ok := paramID(c, "expertId")
	if !ok {
		return
	}

	var req catalog.CreateReviewInput
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.reviews.Create(c.Request.Context(), middleware.ActorFrom(c), expertID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

func (h *ReviewHandler) List(c *gin.Context) {
	expertID, ok := paramID(c, "expertId")
	if !ok {
		return
	}

	reviews, err := h.reviews.List(c.Request.Context(), expertID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, reviews)
}
