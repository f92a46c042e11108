package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smsforge/campaign-service/internal/models"
)

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	GetByIDAndAccount(ctx context.Context, id, accountID int64) (*models.Contact, error)
	GetByCampaignAndPhone(ctx context.Context, campaignID int64, phone string) (*models.Contact, error)
	GetDispatchInfo(ctx context.Context, contactID int64) (*models.DispatchContact, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]*models.Contact, error)
	ListEligible(ctx context.Context, campaignID int64) ([]*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	SetCanSend(ctx context.Context, id int64, canSend bool) error
	Delete(ctx context.Context, id int64) error
}

// contactRepository implements ContactRepository using PostgreSQL
type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = "id, campaign_id, phone_number, first_name, last_name, can_send, created_at"

// Create inserts a new contact
func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (campaign_id, phone_number, first_name, last_name, can_send)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		contact.CampaignID,
		contact.PhoneNumber,
		contact.FirstName,
		contact.LastName,
		contact.CanSend,
	).Scan(&contact.ID, &contact.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// GetByID retrieves a contact by ID
func (r *contactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDAndAccount retrieves a contact whose campaign is owned by the
// given account.
func (r *contactRepository) GetByIDAndAccount(ctx context.Context, id, accountID int64) (*models.Contact, error) {
	query := `
		SELECT c.id, c.campaign_id, c.phone_number, c.first_name, c.last_name, c.can_send, c.created_at
		FROM contacts c
		JOIN campaigns cam ON cam.id = c.campaign_id
		WHERE c.id = $1 AND cam.account_id = $2`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id, accountID))
}

// GetByCampaignAndPhone retrieves the contact registered for a phone number
// within one campaign. A contact with the same number in a sibling campaign
// does not match.
func (r *contactRepository) GetByCampaignAndPhone(ctx context.Context, campaignID int64, phone string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE campaign_id = $1 AND phone_number = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, campaignID, phone))
}

// GetDispatchInfo retrieves a contact together with its campaign's message
// template in a single query.
func (r *contactRepository) GetDispatchInfo(ctx context.Context, contactID int64) (*models.DispatchContact, error) {
	query := `
		SELECT c.id, c.campaign_id, c.phone_number, c.first_name, c.last_name, c.can_send, c.created_at,
		       cam.message
		FROM contacts c
		JOIN campaigns cam ON cam.id = c.campaign_id
		WHERE c.id = $1`

	info := &models.DispatchContact{}
	err := r.db.QueryRowContext(ctx, query, contactID).Scan(
		&info.Contact.ID,
		&info.Contact.CampaignID,
		&info.Contact.PhoneNumber,
		&info.Contact.FirstName,
		&info.Contact.LastName,
		&info.Contact.CanSend,
		&info.Contact.CreatedAt,
		&info.Template,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("contact with ID %d not found", contactID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch info: %w", err)
	}

	return info, nil
}

// ListByCampaign retrieves all contacts of a campaign
func (r *contactRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE campaign_id = $1 ORDER BY id`
	return r.list(ctx, query, campaignID)
}

// ListEligible retrieves the contacts of a campaign with can_send = true
func (r *contactRepository) ListEligible(ctx context.Context, campaignID int64) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE campaign_id = $1 AND can_send = TRUE ORDER BY id`
	return r.list(ctx, query, campaignID)
}

// Update updates an existing contact
func (r *contactRepository) Update(ctx context.Context, contact *models.Contact) error {
	query := `
		UPDATE contacts
		SET phone_number = $1, first_name = $2, last_name = $3, can_send = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(
		ctx,
		query,
		contact.PhoneNumber,
		contact.FirstName,
		contact.LastName,
		contact.CanSend,
		contact.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("contact with ID %d not found", contact.ID))
	}

	return nil
}

// SetCanSend updates only the send-eligibility flag of a contact
func (r *contactRepository) SetCanSend(ctx context.Context, id int64, canSend bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE contacts SET can_send = $1 WHERE id = $2`, canSend, id)
	if err != nil {
		return fmt.Errorf("failed to update contact eligibility: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("contact with ID %d not found", id))
	}

	return nil
}

// Delete removes a contact
func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("contact with ID %d not found", id))
	}

	return nil
}

func (r *contactRepository) scanOne(row *sql.Row) (*models.Contact, error) {
	contact := &models.Contact{}
	err := row.Scan(
		&contact.ID,
		&contact.CampaignID,
		&contact.PhoneNumber,
		&contact.FirstName,
		&contact.LastName,
		&contact.CanSend,
		&contact.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg("contact not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

func (r *contactRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Contact, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*models.Contact{}
	for rows.Next() {
		contact := &models.Contact{}
		err := rows.Scan(
			&contact.ID,
			&contact.CampaignID,
			&contact.PhoneNumber,
			&contact.FirstName,
			&contact.LastName,
			&contact.CanSend,
			&contact.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}
