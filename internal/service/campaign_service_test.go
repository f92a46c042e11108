package service

import (
	"context"
	"testing"

	"github.com/smsforge/campaign-service/internal/models"
)

// mockCampaignRepo is an in-memory CampaignRepository for the service tests.
type mockCampaignRepo struct {
	campaigns map[int64]*models.Campaign
	nextID    int64
}

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{campaigns: make(map[int64]*models.Campaign)}
}

func (m *mockCampaignRepo) add(campaign models.Campaign) *models.Campaign {
	m.nextID++
	campaign.ID = m.nextID
	m.campaigns[campaign.ID] = &campaign
	return &campaign
}

func (m *mockCampaignRepo) Create(ctx context.Context, campaign *models.Campaign) error {
	m.nextID++
	campaign.ID = m.nextID
	m.campaigns[campaign.ID] = campaign
	return nil
}

func (m *mockCampaignRepo) GetByIDAndAccount(ctx context.Context, id, accountID int64) (*models.Campaign, error) {
	campaign, ok := m.campaigns[id]
	if !ok || campaign.AccountID != accountID {
		return nil, models.ErrNotFoundWithMsg("campaign not found")
	}
	return campaign, nil
}

func (m *mockCampaignRepo) ListByAccount(ctx context.Context, accountID int64) ([]*models.Campaign, error) {
	campaigns := []*models.Campaign{}
	for id := int64(1); id <= m.nextID; id++ {
		if campaign, ok := m.campaigns[id]; ok && campaign.AccountID == accountID {
			campaigns = append(campaigns, campaign)
		}
	}
	return campaigns, nil
}

func (m *mockCampaignRepo) Update(ctx context.Context, campaign *models.Campaign) error {
	if _, ok := m.campaigns[campaign.ID]; !ok {
		return models.ErrNotFoundWithMsg("campaign not found")
	}
	m.campaigns[campaign.ID] = campaign
	return nil
}

func (m *mockCampaignRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.campaigns[id]; !ok {
		return models.ErrNotFoundWithMsg("campaign not found")
	}
	delete(m.campaigns, id)
	return nil
}

// fakeDispatcher records submissions instead of processing them.
type fakeDispatcher struct {
	submitted []models.DispatchRequest
}

func (f *fakeDispatcher) Submit(campaignID, contactID int64) {
	f.submitted = append(f.submitted, models.DispatchRequest{
		CampaignID: campaignID,
		ContactID:  contactID,
	})
}

func newCampaignFixture() (*mockCampaignRepo, *mockContactRepo, *fakeDispatcher, CampaignService) {
	campaignRepo := newMockCampaignRepo()
	contactRepo := newMockContactRepo()
	dispatcher := &fakeDispatcher{}
	messageSvc := NewMessageService(newMockMessageRepo(), testLogger())
	svc := NewCampaignService(campaignRepo, contactRepo, messageSvc, dispatcher, testLogger())
	return campaignRepo, contactRepo, dispatcher, svc
}

func TestCampaignService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCampaignRequest
		wantErr bool
	}{
		{
			name: "valid campaign",
			req:  CreateCampaignRequest{Name: "Spring Sale", Message: "Hi {first_name}!", PhoneNumber: "+15550100001"},
		},
		{
			name:    "missing name",
			req:     CreateCampaignRequest{Message: "Hi!", PhoneNumber: "+15550100001"},
			wantErr: true,
		},
		{
			name:    "missing message",
			req:     CreateCampaignRequest{Name: "Spring Sale", PhoneNumber: "+15550100001"},
			wantErr: true,
		},
		{
			name:    "phone without plus prefix",
			req:     CreateCampaignRequest{Name: "Spring Sale", Message: "Hi!", PhoneNumber: "15550100001"},
			wantErr: true,
		},
		{
			name:    "phone with letters",
			req:     CreateCampaignRequest{Name: "Spring Sale", Message: "Hi!", PhoneNumber: "+1555ABC0001"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, svc := newCampaignFixture()

			campaign, err := svc.Create(context.Background(), 1, &tt.req)
			if tt.wantErr {
				assertAppErrorCode(t, err, "INVALID_INPUT")
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if campaign.ID == 0 {
				t.Error("Create() did not assign an id")
			}
			if campaign.AccountID != 1 {
				t.Errorf("AccountID = %d, want 1", campaign.AccountID)
			}
		})
	}
}

func TestCampaignService_OwnershipScoping(t *testing.T) {
	campaignRepo, _, _, svc := newCampaignFixture()
	campaign := campaignRepo.add(models.Campaign{
		AccountID:   1,
		Name:        "Spring Sale",
		Message:     "Hi {first_name}!",
		PhoneNumber: "+15550100001",
	})

	if _, err := svc.GetByID(context.Background(), 1, campaign.ID); err != nil {
		t.Fatalf("GetByID() by owner error = %v", err)
	}

	_, err := svc.GetByID(context.Background(), 2, campaign.ID)
	assertAppErrorCode(t, err, "NOT_FOUND")

	_, err = svc.Send(context.Background(), 2, campaign.ID)
	assertAppErrorCode(t, err, "NOT_FOUND")

	err = svc.Delete(context.Background(), 2, campaign.ID)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestCampaignService_Update_PartialFields(t *testing.T) {
	campaignRepo, _, _, svc := newCampaignFixture()
	campaign := campaignRepo.add(models.Campaign{
		AccountID:   1,
		Name:        "Spring Sale",
		Message:     "Hi {first_name}!",
		PhoneNumber: "+15550100001",
	})

	newName := "Summer Sale"
	updated, err := svc.Update(context.Background(), 1, campaign.ID, &UpdateCampaignRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Name != newName {
		t.Errorf("Name = %q, want %q", updated.Name, newName)
	}
	if updated.Message != "Hi {first_name}!" {
		t.Errorf("Message changed unexpectedly: %q", updated.Message)
	}

	badPhone := "not-a-phone"
	_, err = svc.Update(context.Background(), 1, campaign.ID, &UpdateCampaignRequest{PhoneNumber: &badPhone})
	assertAppErrorCode(t, err, "INVALID_INPUT")
}

func TestCampaignService_Send_SubmitsOnlyEligible(t *testing.T) {
	campaignRepo, contactRepo, dispatcher, svc := newCampaignFixture()
	campaign := campaignRepo.add(models.Campaign{
		AccountID:   1,
		Name:        "Spring Sale",
		Message:     "Hi {first_name}!",
		PhoneNumber: "+15550100001",
	})

	eligibleA := contactRepo.add(models.Contact{CampaignID: campaign.ID, PhoneNumber: "+254712345001", CanSend: true})
	contactRepo.add(models.Contact{CampaignID: campaign.ID, PhoneNumber: "+254712345002", CanSend: false})
	eligibleB := contactRepo.add(models.Contact{CampaignID: campaign.ID, PhoneNumber: "+254712345003", CanSend: true})
	contactRepo.add(models.Contact{CampaignID: 999, PhoneNumber: "+254712345004", CanSend: true})

	count, err := svc.Send(context.Background(), 1, campaign.ID)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if count != 2 {
		t.Fatalf("Send() count = %d, want 2", count)
	}
	if len(dispatcher.submitted) != 2 {
		t.Fatalf("dispatcher received %d submissions, want 2", len(dispatcher.submitted))
	}

	want := []int64{eligibleA.ID, eligibleB.ID}
	for i, req := range dispatcher.submitted {
		if req.CampaignID != campaign.ID {
			t.Errorf("submission %d campaign = %d, want %d", i, req.CampaignID, campaign.ID)
		}
		if req.ContactID != want[i] {
			t.Errorf("submission %d contact = %d, want %d", i, req.ContactID, want[i])
		}
	}
}

func TestCampaignService_Send_NoEligibleContacts(t *testing.T) {
	campaignRepo, _, dispatcher, svc := newCampaignFixture()
	campaign := campaignRepo.add(models.Campaign{
		AccountID:   1,
		Name:        "Spring Sale",
		Message:     "Hi {first_name}!",
		PhoneNumber: "+15550100001",
	})

	count, err := svc.Send(context.Background(), 1, campaign.ID)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Send() count = %d, want 0", count)
	}
	if len(dispatcher.submitted) != 0 {
		t.Errorf("dispatcher received %d submissions, want 0", len(dispatcher.submitted))
	}
}
