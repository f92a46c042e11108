package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smsforge/campaign-service/internal/models"
	"github.com/smsforge/campaign-service/internal/repository"
)

// MessageService is the message ledger: it owns message creation, status
// resolution, and the per-campaign aggregates derived from them.
type MessageService interface {
	Create(ctx context.Context, campaignID, contactID int64, body string) (*models.Message, error)
	ResolveStatus(ctx context.Context, messageID, status string) error
	StatsByCampaign(ctx context.Context, campaignID int64) (*models.CampaignStats, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	logger      *slog.Logger
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo repository.MessageRepository, logger *slog.Logger) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// Create allocates a globally unique message id and persists a pending
// record for the dispatch attempt.
func (s *messageService) Create(ctx context.Context, campaignID, contactID int64, body string) (*models.Message, error) {
	message := &models.Message{
		MessageID:  uuid.NewString(),
		CampaignID: campaignID,
		ContactID:  contactID,
		Body:       body,
		Status:     models.MessageStatusPending,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.logger.Debug("message created",
		slog.String("message_id", message.MessageID),
		slog.Int64("campaign_id", campaignID),
		slog.Int64("contact_id", contactID),
	)

	return message, nil
}

// ResolveStatus transitions a message to a terminal status. Resolving a
// message that is already terminal is an anomaly worth logging, but the
// write still goes through (last write wins).
func (s *messageService) ResolveStatus(ctx context.Context, messageID, status string) error {
	if !models.IsTerminalStatus(status) {
		return models.ErrInvalidInput(fmt.Sprintf("invalid terminal status: %s", status))
	}

	message, err := s.messageRepo.GetByMessageID(ctx, messageID)
	if err != nil {
		return err
	}

	if models.IsTerminalStatus(message.Status) {
		s.logger.Warn("message already resolved, overwriting status",
			slog.String("message_id", messageID),
			slog.String("current_status", message.Status),
			slog.String("new_status", status),
		)
	}

	if err := s.messageRepo.UpdateStatus(ctx, messageID, status); err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}

	s.logger.Debug("message status updated",
		slog.String("message_id", messageID),
		slog.String("status", status),
	)

	return nil
}

// StatsByCampaign returns the campaign's message counts grouped by status,
// computed from the ledger at query time.
func (s *messageService) StatsByCampaign(ctx context.Context, campaignID int64) (*models.CampaignStats, error) {
	stats, err := s.messageRepo.StatsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign stats: %w", err)
	}

	return stats, nil
}
