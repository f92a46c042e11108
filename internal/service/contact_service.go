package service

import (
	"context"
	"log/slog"

	"github.com/smsforge/campaign-service/internal/models"
	"github.com/smsforge/campaign-service/internal/repository"
)

// ContactService handles contact business logic with account-ownership
// checks through the owning campaign.
type ContactService interface {
	Create(ctx context.Context, accountID, campaignID int64, req *CreateContactRequest) (*models.Contact, error)
	GetByID(ctx context.Context, accountID, id int64) (*models.Contact, error)
	ListByCampaign(ctx context.Context, accountID, campaignID int64) ([]*models.Contact, error)
	Update(ctx context.Context, accountID, id int64, req *UpdateContactRequest) (*models.Contact, error)
	Delete(ctx context.Context, accountID, id int64) error
}

type contactService struct {
	contactRepo  repository.ContactRepository
	campaignRepo repository.CampaignRepository
	logger       *slog.Logger
}

// NewContactService creates a new contact service
func NewContactService(
	contactRepo repository.ContactRepository,
	campaignRepo repository.CampaignRepository,
	logger *slog.Logger,
) ContactService {
	return &contactService{
		contactRepo:  contactRepo,
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

// Create adds a contact to a campaign owned by the account
func (s *contactService) Create(ctx context.Context, accountID, campaignID int64, req *CreateContactRequest) (*models.Contact, error) {
	if _, err := s.campaignRepo.GetByIDAndAccount(ctx, campaignID, accountID); err != nil {
		return nil, err
	}

	canSend := true
	if req.CanSend != nil {
		canSend = *req.CanSend
	}

	contact := &models.Contact{
		CampaignID:  campaignID,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CanSend:     canSend,
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		s.logger.Error("failed to create contact",
			slog.Int64("campaign_id", campaignID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return contact, nil
}

// GetByID retrieves a contact whose campaign is owned by the account
func (s *contactService) GetByID(ctx context.Context, accountID, id int64) (*models.Contact, error) {
	return s.contactRepo.GetByIDAndAccount(ctx, id, accountID)
}

// ListByCampaign retrieves the contacts of a campaign owned by the account
func (s *contactService) ListByCampaign(ctx context.Context, accountID, campaignID int64) ([]*models.Contact, error) {
	if _, err := s.campaignRepo.GetByIDAndAccount(ctx, campaignID, accountID); err != nil {
		return nil, err
	}

	return s.contactRepo.ListByCampaign(ctx, campaignID)
}

// Update applies a partial update to a contact owned by the account
func (s *contactService) Update(ctx context.Context, accountID, id int64, req *UpdateContactRequest) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByIDAndAccount(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	if req.PhoneNumber != nil {
		contact.PhoneNumber = *req.PhoneNumber
	}
	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.CanSend != nil {
		contact.CanSend = *req.CanSend
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// Delete removes a contact owned by the account
func (s *contactService) Delete(ctx context.Context, accountID, id int64) error {
	if _, err := s.contactRepo.GetByIDAndAccount(ctx, id, accountID); err != nil {
		return err
	}

	return s.contactRepo.Delete(ctx, id)
}

// CreateContactRequest represents a request to add a contact to a campaign
type CreateContactRequest struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CanSend     *bool  `json:"can_send,omitempty"`
}

// UpdateContactRequest represents a partial contact update. Nil fields are
// left unchanged.
type UpdateContactRequest struct {
	PhoneNumber *string `json:"phone_number,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	CanSend     *bool   `json:"can_send,omitempty"`
}
