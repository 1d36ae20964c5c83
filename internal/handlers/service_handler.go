package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/storage"
	"github.com/BruksfildServices01/expert-scheduler/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *catalog.Services
}

func NewServiceHandler(services *catalog.Services) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	expertID, ok := paramID(c, "expertId")
	if !ok {
		return
	}

	services, err := h.services.List(c.Request.Context(), expertID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req catalog.CreateServiceInput
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Create(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateServiceInput
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Update(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage accepts either a multipart "image" field or a raw image body.
func (h *ServiceHandler) UploadImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var body io.Reader = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadSize+1)
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Could not read the uploaded file.")
			return
		}
		defer f.Close()
		body = f
	}

	svc, err := h.services.UploadImage(c.Request.Context(), middleware.ActorFrom(c), id, body)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, svc)
}
