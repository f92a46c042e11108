package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/smsforge/campaign-service/internal/models"
	"github.com/smsforge/campaign-service/internal/repository"
)

// stopKeyword is the only inbound keyword with an effect: it suppresses
// further sends to the contact. Matching is case-insensitive after trimming.
const stopKeyword = "stop"

// WebhookService processes inbound carrier events for a campaign.
// The campaign id arrives as the raw path segment: authentication happens
// first, so a malformed id on an unsigned request is still unauthorized.
type WebhookService interface {
	HandleInbound(ctx context.Context, campaignID string, signature string, payload []byte) error
}

type webhookService struct {
	contactRepo repository.ContactRepository
	secret      string
	logger      *slog.Logger
}

// NewWebhookService creates a new webhook service. An empty secret is
// allowed at construction; every inbound call then fails as misconfigured.
func NewWebhookService(contactRepo repository.ContactRepository, secret string, logger *slog.Logger) WebhookService {
	return &webhookService{
		contactRepo: contactRepo,
		secret:      secret,
		logger:      logger,
	}
}

// inboundEvent is the wire payload of an inbound message webhook.
// Message is a pointer so a missing field is distinguishable from an
// empty string, which is valid traffic.
type inboundEvent struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Message *string `json:"message"`
}

// HandleInbound authenticates an inbound event against the shared secret
// and applies the opt-out effect when the message is the stop keyword.
// The checks run in a fixed order: signature presence, secret, HMAC, then
// campaign id and payload shape, so authentication failures always win.
// Unknown senders are a no-op: the caller cannot distinguish a processed
// stop from an ignored message, which prevents contact enumeration.
func (s *webhookService) HandleInbound(ctx context.Context, campaignID string, signature string, payload []byte) error {
	if signature == "" {
		return models.ErrUnauthorized("missing webhook signature")
	}

	if s.secret == "" {
		s.logger.Error("webhook secret not configured")
		return models.ErrMisconfigured("webhook not configured")
	}

	if !verifySignature(payload, signature, s.secret) {
		return models.ErrUnauthorized("invalid webhook signature")
	}

	id, err := strconv.ParseInt(campaignID, 10, 64)
	if err != nil {
		return models.ErrInvalidInput("invalid campaign ID")
	}

	var event inboundEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return models.ErrInvalidInput("invalid JSON payload")
	}

	if event.From == "" || event.To == "" || event.Message == nil {
		return models.ErrInvalidInput("missing required fields: from, to, message")
	}

	contact, err := s.contactRepo.GetByCampaignAndPhone(ctx, id, event.From)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Unknown senders are expected traffic, not an error.
			return nil
		}
		return fmt.Errorf("failed to look up contact: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(*event.Message), stopKeyword) {
		if err := s.contactRepo.SetCanSend(ctx, contact.ID, false); err != nil {
			return fmt.Errorf("failed to suppress contact: %w", err)
		}

		s.logger.Info("contact opted out",
			slog.Int64("campaign_id", id),
			slog.Int64("contact_id", contact.ID),
		)
	}

	return nil
}

// verifySignature checks a hex-encoded HMAC-SHA256 signature over the raw
// payload using a constant-time comparison.
func verifySignature(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}

// SignPayload computes the hex-encoded HMAC-SHA256 signature callers must
// send with an inbound webhook payload.
func SignPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
