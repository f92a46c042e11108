package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smsforge/campaign-service/internal/models"
	"github.com/smsforge/campaign-service/internal/service"
)

// signatureHeader carries the hex-encoded HMAC-SHA256 of the raw body
const signatureHeader = "X-Webhook-Signature"

// WebhookHandler handles inbound carrier webhooks. Its wire contract is
// fixed by the external caller: {"status": "processed"} on success and
// {"error": "..."} on failure, so it does not use the API error envelope.
type WebhookHandler struct {
	webhookService service.WebhookService
	logger         *slog.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookService service.WebhookService, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		logger:         logger,
	}
}

// HandleInbound handles POST /webhooks/{id}/inbound. The campaign id is
// passed through raw; the service validates it after authentication so a
// malformed id on an unauthenticated request still yields 401.
func (h *WebhookHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	// The signature covers the exact raw bytes, so the body must be read
	// before any JSON decoding.
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to read request body"})
		return
	}

	signature := r.Header.Get(signatureHeader)

	if err := h.webhookService.HandleInbound(r.Context(), chi.URLParam(r, "id"), signature, payload); err != nil {
		h.respondWebhookError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}

func (h *WebhookHandler) respondWebhookError(w http.ResponseWriter, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "UNAUTHORIZED":
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": appErr.Message})
			return
		case "INVALID_INPUT":
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": appErr.Message})
			return
		case "MISCONFIGURED":
			respondJSON(w, http.StatusInternalServerError, map[string]string{"error": appErr.Message})
			return
		}
	}

	h.logger.Error("webhook processing failed", slog.String("error", err.Error()))
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
