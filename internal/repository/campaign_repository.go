package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smsforge/campaign-service/internal/models"
)

// CampaignRepository defines the interface for campaign data access.
// Read and write paths that serve the API are scoped by account id so
// ownership is enforced at the query level.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByIDAndAccount(ctx context.Context, id, accountID int64) (*models.Campaign, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id int64) error
}

// campaignRepository implements CampaignRepository using PostgreSQL
type campaignRepository struct {
	db *sql.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// Create inserts a new campaign
func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (account_id, name, message, phone_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		campaign.AccountID,
		campaign.Name,
		campaign.Message,
		campaign.PhoneNumber,
	).Scan(&campaign.ID, &campaign.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// GetByIDAndAccount retrieves a campaign owned by the given account
func (r *campaignRepository) GetByIDAndAccount(ctx context.Context, id, accountID int64) (*models.Campaign, error) {
	query := `
		SELECT id, account_id, name, message, phone_number, created_at
		FROM campaigns
		WHERE id = $1 AND account_id = $2`

	campaign := &models.Campaign{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).Scan(
		&campaign.ID,
		&campaign.AccountID,
		&campaign.Name,
		&campaign.Message,
		&campaign.PhoneNumber,
		&campaign.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("campaign with ID %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return campaign, nil
}

// ListByAccount retrieves all campaigns owned by an account
func (r *campaignRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Campaign, error) {
	query := `
		SELECT id, account_id, name, message, phone_number, created_at
		FROM campaigns
		WHERE account_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*models.Campaign{}
	for rows.Next() {
		campaign := &models.Campaign{}
		err := rows.Scan(
			&campaign.ID,
			&campaign.AccountID,
			&campaign.Name,
			&campaign.Message,
			&campaign.PhoneNumber,
			&campaign.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}

	return campaigns, nil
}

// Update updates an existing campaign
func (r *campaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $1, message = $2, phone_number = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(
		ctx,
		query,
		campaign.Name,
		campaign.Message,
		campaign.PhoneNumber,
		campaign.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("campaign with ID %d not found", campaign.ID))
	}

	return nil
}

// Delete removes a campaign and, via cascade, its contacts and messages
func (r *campaignRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("campaign with ID %d not found", id))
	}

	return nil
}
