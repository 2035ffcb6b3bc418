package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
)

type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{BaseHandler: base, subscriptionService: subscriptionService}
}

// CreatePreference - POST /api/subscriptions/preference
func (h *SubscriptionHandler) CreatePreference(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.CreatePreference(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Webhook - POST /api/subscriptions/webhook (без авторизации; провайдер).
// Провайдеру всегда отвечаем 200 на принятые уведомления, иначе он
// будет ретраить до бесконечности; 5xx только при реальном сбое.
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	var req dto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := h.subscriptionService.ProcessWebhook(c.Request.Context(), h.GetDB(c), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Cancel - POST /api/subscriptions/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.CancelSubscription(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Status - GET /api/subscriptions/status
func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.GetStatus(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
