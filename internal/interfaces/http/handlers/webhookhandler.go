package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"finderads/internal/application/billing/usecases"
	"finderads/internal/infrastructure/billing"
	"finderads/internal/shared/logger"
	"finderads/internal/shared/utils"
)

// maxWebhookBodyBytes caps how much of a webhook payload is read.
const maxWebhookBodyBytes = 1 << 20

// WebhookHandler receives Stripe webhook deliveries. The raw body must be
// read before any JSON binding because the signature covers the exact bytes.
type WebhookHandler struct {
	verifier        *billing.WebhookVerifier
	handleWebhookUC *usecases.HandleWebhookUseCase
	logger          logger.Interface
}

func NewWebhookHandler(
	verifier *billing.WebhookVerifier,
	handleWebhookUC *usecases.HandleWebhookUseCase,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:        verifier,
		handleWebhookUC: handleWebhookUC,
		logger:          logger.NewLogger(),
	}
}

// HandleStripeWebhook verifies the Stripe-Signature header and dispatches the
// event. Processing failures return 5xx so Stripe retries; redeliveries of an
// already-applied event succeed without side effects.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	event, err := h.verifier.Verify(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Warnw("webhook signature verification failed",
			"client_ip", c.ClientIP(),
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	if err := h.handleWebhookUC.Execute(c.Request.Context(), event); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"received": true})
}
