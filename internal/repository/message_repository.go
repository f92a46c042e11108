package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/smsforge/campaign-service/internal/models"
)

// MessageRepository defines the interface for message ledger data access.
// Messages are addressed by their globally unique message_id token, never
// by the database row id.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByMessageID(ctx context.Context, messageID string) (*models.Message, error)
	UpdateStatus(ctx context.Context, messageID, status string) error
	StatsByCampaign(ctx context.Context, campaignID int64) (*models.CampaignStats, error)
}

// pqUniqueViolation is the Postgres error code for unique constraint violations
const pqUniqueViolation = "23505"

// messageRepository implements MessageRepository using PostgreSQL
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new message record. A collision on the generated
// message_id surfaces as a DUPLICATE_ID error.
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (message_id, campaign_id, contact_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		message.MessageID,
		message.CampaignID,
		message.ContactID,
		message.Body,
		message.Status,
	).Scan(&message.ID, &message.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return models.ErrDuplicateIDWithMsg(fmt.Sprintf("message id %s already exists", message.MessageID))
	}
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetByMessageID retrieves a message by its unique token
func (r *messageRepository) GetByMessageID(ctx context.Context, messageID string) (*models.Message, error) {
	query := `
		SELECT id, message_id, campaign_id, contact_id, message, status, created_at
		FROM messages
		WHERE message_id = $1`

	message := &models.Message{}
	err := r.db.QueryRowContext(ctx, query, messageID).Scan(
		&message.ID,
		&message.MessageID,
		&message.CampaignID,
		&message.ContactID,
		&message.Body,
		&message.Status,
		&message.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("message %s not found", messageID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return message, nil
}

// UpdateStatus sets the status of a message. Last write wins.
func (r *messageRepository) UpdateStatus(ctx context.Context, messageID, status string) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE messages SET status = $1 WHERE message_id = $2`,
		status,
		messageID,
	)
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("message %s not found", messageID))
	}

	return nil
}

// StatsByCampaign groups the campaign's messages by status. A campaign with
// no messages yields all-zero counts.
func (r *messageRepository) StatsByCampaign(ctx context.Context, campaignID int64) (*models.CampaignStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'success') AS success,
			COUNT(*) FILTER (WHERE status = 'undeliverable') AS undeliverable,
			COUNT(*) FILTER (WHERE status = 'blocked') AS blocked
		FROM messages
		WHERE campaign_id = $1`

	var pending, success, undeliverable, blocked int64
	err := r.db.QueryRowContext(ctx, query, campaignID).Scan(
		&pending,
		&success,
		&undeliverable,
		&blocked,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign stats: %w", err)
	}

	stats := models.NewCampaignStats(pending, success, undeliverable, blocked)
	return &stats, nil
}
