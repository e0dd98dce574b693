package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gutoberny/BernyFlow/internal/dto"
	"github.com/gutoberny/BernyFlow/internal/middleware"
	"github.com/gutoberny/BernyFlow/internal/service"
)

type SubscriptionHandler struct{ svc service.SubscriptionService }

func NewSubscriptionHandler(svc service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	resp, err := h.svc.Checkout(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	resp, err := h.svc.Status(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook receives Mercado Pago payment notifications. It always answers
// 200 on processable input so the gateway stops retrying; failures talking
// back to the gateway surface as 500 and will be redelivered.
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	var n dto.WebhookNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		// Unknown notification shapes are acknowledged, not rejected.
		c.Status(http.StatusOK)
		return
	}
	if err := h.svc.HandleWebhook(c.Request.Context(), n); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
