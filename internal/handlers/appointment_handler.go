package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *appointment.CreateAppointment
	multi    *appointment.CreateMultiAppointments
	get      *appointment.GetAppointment
	list     *appointment.ListAppointments
	update   *appointment.UpdateAppointment
	cancel   *appointment.CancelAppointment
	complete *appointment.CompleteAppointment
	remove   *appointment.DeleteAppointment
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	multi *appointment.CreateMultiAppointments,
	get *appointment.GetAppointment,
	list *appointment.ListAppointments,
	update *appointment.UpdateAppointment,
	cancel *appointment.CancelAppointment,
	complete *appointment.CompleteAppointment,
	remove *appointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		multi:    multi,
		get:      get,
		list:     list,
		update:   update,
		cancel:   cancel,
		complete: complete,
		remove:   remove,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BasketRequest struct {
	Basket []appointment.BasketItem `json:"basket"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appointment.CreateAppointmentInput
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// CreateMulti books a basket. The body lists both committed appointments
// and per-item failures; the status is 400 only when nothing was booked.
func (h *AppointmentHandler) CreateMulti(c *gin.Context) {
	var req BasketRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.multi.Execute(c.Request.Context(), middleware.ActorFrom(c), req.Basket)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	status := http.StatusCreated
	if !res.AnySucceeded() {
		status = http.StatusBadRequest
	}
	c.JSON(status, res)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) ListForClient(c *gin.Context) {
	clientID, ok := paramID(c, "clientId")
	if !ok {
		return
	}

	rows, err := h.list.ForClient(c.Request.Context(), middleware.ActorFrom(c), clientID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *AppointmentHandler) ListForExpert(c *gin.Context) {
	expertID, ok := paramID(c, "expertId")
	if !ok {
		return
	}

	rows, err := h.list.ForExpert(c.Request.Context(), middleware.ActorFrom(c), expertID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req appointment.UpdateAppointmentInput
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
