package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/payment"
	"github.com/BruksfildServices01/expert-scheduler/internal/usecase/checkout"
)

type PaymentHandler struct {
	initialize *checkout.InitializePayment
}

func NewPaymentHandler(initialize *checkout.InitializePayment) *PaymentHandler {
	return &PaymentHandler{initialize: initialize}
}

// Initialize answers with the provider result. A decline keeps the result
// in the body next to the error code.
func (h *PaymentHandler) Initialize(c *gin.Context) {
	var req checkout.InitializePaymentInput
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.initialize.Execute(c.Request.Context(), middleware.ActorFrom(c), req)
	if errors.Is(err, payment.ErrDeclined) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "payment_declined",
			"kind":       httperr.KindValidation,
			"message":    "The payment was declined.",
			"payment":    res,
		})
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
