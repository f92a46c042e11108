package service

import (
	"context"
	"testing"

	"github.com/smsforge/campaign-service/internal/models"
)

// mockMessageRepo is an in-memory MessageRepository keyed by message_id.
type mockMessageRepo struct {
	messages map[string]*models.Message
	order    []string
	nextID   int64
}

func newMockMessageRepo() *mockMessageRepo {
	return &mockMessageRepo{messages: make(map[string]*models.Message)}
}

func (m *mockMessageRepo) Create(ctx context.Context, message *models.Message) error {
	if _, ok := m.messages[message.MessageID]; ok {
		return models.ErrDuplicateIDWithMsg("message id already exists")
	}
	m.nextID++
	message.ID = m.nextID
	stored := *message
	m.messages[message.MessageID] = &stored
	m.order = append(m.order, message.MessageID)
	return nil
}

func (m *mockMessageRepo) GetByMessageID(ctx context.Context, messageID string) (*models.Message, error) {
	message, ok := m.messages[messageID]
	if !ok {
		return nil, models.ErrNotFoundWithMsg("message not found")
	}
	copied := *message
	return &copied, nil
}

func (m *mockMessageRepo) UpdateStatus(ctx context.Context, messageID, status string) error {
	message, ok := m.messages[messageID]
	if !ok {
		return models.ErrNotFoundWithMsg("message not found")
	}
	message.Status = status
	return nil
}

func (m *mockMessageRepo) StatsByCampaign(ctx context.Context, campaignID int64) (*models.CampaignStats, error) {
	var pending, success, undeliverable, blocked int64
	for _, message := range m.messages {
		if message.CampaignID != campaignID {
			continue
		}
		switch message.Status {
		case models.MessageStatusPending:
			pending++
		case models.MessageStatusSuccess:
			success++
		case models.MessageStatusUndeliverable:
			undeliverable++
		case models.MessageStatusBlocked:
			blocked++
		}
	}
	stats := models.NewCampaignStats(pending, success, undeliverable, blocked)
	return &stats, nil
}

func TestMessageService_Create(t *testing.T) {
	repo := newMockMessageRepo()
	svc := NewMessageService(repo, testLogger())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		message, err := svc.Create(context.Background(), 1, int64(i+1), "Hi Alice")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if message.MessageID == "" {
			t.Fatal("Create() returned empty message id")
		}
		if seen[message.MessageID] {
			t.Fatalf("Create() generated duplicate message id %s", message.MessageID)
		}
		seen[message.MessageID] = true

		if message.Status != models.MessageStatusPending {
			t.Errorf("Create() status = %s, want %s", message.Status, models.MessageStatusPending)
		}
	}
}

func TestMessageService_ResolveStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{name: "success", status: models.MessageStatusSuccess},
		{name: "undeliverable", status: models.MessageStatusUndeliverable},
		{name: "blocked", status: models.MessageStatusBlocked},
		{name: "pending is not terminal", status: models.MessageStatusPending, wantErr: true},
		{name: "unknown status", status: "delivered", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockMessageRepo()
			svc := NewMessageService(repo, testLogger())

			message, err := svc.Create(context.Background(), 1, 1, "body")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			err = svc.ResolveStatus(context.Background(), message.MessageID, tt.status)
			if tt.wantErr {
				assertAppErrorCode(t, err, "INVALID_INPUT")
				return
			}
			if err != nil {
				t.Fatalf("ResolveStatus() error = %v", err)
			}

			stored, _ := repo.GetByMessageID(context.Background(), message.MessageID)
			if stored.Status != tt.status {
				t.Errorf("stored status = %s, want %s", stored.Status, tt.status)
			}
		})
	}
}

func TestMessageService_ResolveStatus_LastWriteWins(t *testing.T) {
	repo := newMockMessageRepo()
	svc := NewMessageService(repo, testLogger())

	message, err := svc.Create(context.Background(), 1, 1, "body")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.ResolveStatus(context.Background(), message.MessageID, models.MessageStatusSuccess); err != nil {
		t.Fatalf("first ResolveStatus() error = %v", err)
	}
	if err := svc.ResolveStatus(context.Background(), message.MessageID, models.MessageStatusBlocked); err != nil {
		t.Fatalf("second ResolveStatus() error = %v", err)
	}

	stored, _ := repo.GetByMessageID(context.Background(), message.MessageID)
	if stored.Status != models.MessageStatusBlocked {
		t.Errorf("stored status = %s, want %s", stored.Status, models.MessageStatusBlocked)
	}
}

func TestMessageService_ResolveStatus_UnknownMessage(t *testing.T) {
	repo := newMockMessageRepo()
	svc := NewMessageService(repo, testLogger())

	err := svc.ResolveStatus(context.Background(), "no-such-id", models.MessageStatusSuccess)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestMessageService_StatsByCampaign(t *testing.T) {
	repo := newMockMessageRepo()
	svc := NewMessageService(repo, testLogger())

	resolve := []string{
		models.MessageStatusSuccess,
		models.MessageStatusSuccess,
		models.MessageStatusUndeliverable,
		models.MessageStatusBlocked,
		"", // stays pending
	}
	for i, status := range resolve {
		message, err := svc.Create(context.Background(), 1, int64(i+1), "body")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if status != "" {
			if err := svc.ResolveStatus(context.Background(), message.MessageID, status); err != nil {
				t.Fatalf("ResolveStatus() error = %v", err)
			}
		}
	}

	// A message in another campaign must not leak into the counts.
	if _, err := svc.Create(context.Background(), 2, 99, "body"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	stats, err := svc.StatsByCampaign(context.Background(), 1)
	if err != nil {
		t.Fatalf("StatsByCampaign() error = %v", err)
	}

	if stats.Total != 5 {
		t.Errorf("Total = %d, want 5", stats.Total)
	}
	if stats.Pending != 1 {
		t.Errorf("Pending = %d, want 1", stats.Pending)
	}
	if stats.Success != 2 {
		t.Errorf("Success = %d, want 2", stats.Success)
	}
	if stats.Undeliverable != 1 {
		t.Errorf("Undeliverable = %d, want 1", stats.Undeliverable)
	}
	if stats.Blocked != 1 {
		t.Errorf("Blocked = %d, want 1", stats.Blocked)
	}
	if stats.Failed != 2 {
		t.Errorf("Failed = %d, want 2", stats.Failed)
	}
}
