package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smsforge/campaign-service/internal/models"
	"github.com/smsforge/campaign-service/internal/repository"
)

// Dispatcher accepts dispatch requests for asynchronous processing.
// Submission never blocks and carries no result: dispatch is fire-and-forget.
type Dispatcher interface {
	Submit(campaignID, contactID int64)
}

// CampaignService handles campaign business logic scoped to an account
type CampaignService interface {
	Create(ctx context.Context, accountID int64, req *CreateCampaignRequest) (*models.Campaign, error)
	GetByID(ctx context.Context, accountID, id int64) (*models.Campaign, error)
	List(ctx context.Context, accountID int64) ([]*models.Campaign, error)
	Update(ctx context.Context, accountID, id int64, req *UpdateCampaignRequest) (*models.Campaign, error)
	Delete(ctx context.Context, accountID, id int64) error
	Send(ctx context.Context, accountID, id int64) (int, error)
	Stats(ctx context.Context, accountID, id int64) (*models.CampaignStats, error)
}

type campaignService struct {
	campaignRepo repository.CampaignRepository
	contactRepo  repository.ContactRepository
	messageSvc   MessageService
	dispatcher   Dispatcher
	logger       *slog.Logger
}

// NewCampaignService creates a new campaign service
func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	contactRepo repository.ContactRepository,
	messageSvc MessageService,
	dispatcher Dispatcher,
	logger *slog.Logger,
) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		contactRepo:  contactRepo,
		messageSvc:   messageSvc,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// Create creates a new campaign for the account
func (s *campaignService) Create(ctx context.Context, accountID int64, req *CreateCampaignRequest) (*models.Campaign, error) {
	campaign := &models.Campaign{
		AccountID:   accountID,
		Name:        req.Name,
		Message:     req.Message,
		PhoneNumber: req.PhoneNumber,
	}

	if err := campaign.Validate(); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		s.logger.Error("failed to create campaign",
			slog.Int64("account_id", accountID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("campaign created",
		slog.Int64("campaign_id", campaign.ID),
		slog.Int64("account_id", accountID),
	)

	return campaign, nil
}

// GetByID retrieves a campaign owned by the account
func (s *campaignService) GetByID(ctx context.Context, accountID, id int64) (*models.Campaign, error) {
	return s.campaignRepo.GetByIDAndAccount(ctx, id, accountID)
}

// List retrieves all campaigns of the account
func (s *campaignService) List(ctx context.Context, accountID int64) ([]*models.Campaign, error) {
	return s.campaignRepo.ListByAccount(ctx, accountID)
}

// Update applies a partial update to a campaign owned by the account
func (s *campaignService) Update(ctx context.Context, accountID, id int64, req *UpdateCampaignRequest) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByIDAndAccount(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Message != nil {
		campaign.Message = *req.Message
	}
	if req.PhoneNumber != nil {
		campaign.PhoneNumber = *req.PhoneNumber
	}

	if err := campaign.Validate(); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	return campaign, nil
}

// Delete removes a campaign owned by the account
func (s *campaignService) Delete(ctx context.Context, accountID, id int64) error {
	if _, err := s.campaignRepo.GetByIDAndAccount(ctx, id, accountID); err != nil {
		return err
	}

	return s.campaignRepo.Delete(ctx, id)
}

// Send submits one dispatch request per eligible contact of the campaign
// and returns the number of submissions. Eligibility is evaluated here, at
// submission time; the dispatch queue trusts its input set.
func (s *campaignService) Send(ctx context.Context, accountID, id int64) (int, error) {
	campaign, err := s.campaignRepo.GetByIDAndAccount(ctx, id, accountID)
	if err != nil {
		return 0, err
	}

	contacts, err := s.contactRepo.ListEligible(ctx, campaign.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list eligible contacts: %w", err)
	}

	for _, contact := range contacts {
		s.dispatcher.Submit(campaign.ID, contact.ID)
	}

	s.logger.Info("campaign send triggered",
		slog.Int64("campaign_id", campaign.ID),
		slog.Int("contacts_queued", len(contacts)),
	)

	return len(contacts), nil
}

// Stats returns the campaign's message counts grouped by status
func (s *campaignService) Stats(ctx context.Context, accountID, id int64) (*models.CampaignStats, error) {
	campaign, err := s.campaignRepo.GetByIDAndAccount(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	return s.messageSvc.StatsByCampaign(ctx, campaign.ID)
}

// CreateCampaignRequest represents a request to create a campaign
type CreateCampaignRequest struct {
	Name        string `json:"name"`
	Message     string `json:"message"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateCampaignRequest represents a partial campaign update. Nil fields
// are left unchanged.
type UpdateCampaignRequest struct {
	Name        *string `json:"name,omitempty"`
	Message     *string `json:"message,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}
