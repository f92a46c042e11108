package handler

import (
	"log/slog"
	"net/http"

	"github.com/smsforge/campaign-service/internal/service"
)

// MessageHandler handles the send trigger and stats HTTP requests
type MessageHandler struct {
	campaignService service.CampaignService
	logger          *slog.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(campaignService service.CampaignService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		campaignService: campaignService,
		logger:          logger,
	}
}

// SendMessages handles POST /campaigns/{id}/messages/send. The response is
// an acknowledgment that dispatch requests were queued; processing and
// delivery happen asynchronously.
func (h *MessageHandler) SendMessages(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	campaignID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid campaign ID")
		return
	}

	if _, err := h.campaignService.Send(r.Context(), user.AccountID, campaignID); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondAccepted(w, map[string]string{"message": "Messages queued for sending"})
}

// GetStats handles GET /campaigns/{id}/messages/stats
func (h *MessageHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	campaignID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid campaign ID")
		return
	}

	stats, err := h.campaignService.Stats(r.Context(), user.AccountID, campaignID)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, stats)
}
