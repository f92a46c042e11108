package models

import "time"

// Message status constants
const (
	MessageStatusPending       = "pending"
	MessageStatusSuccess       = "success"
	MessageStatusUndeliverable = "undeliverable"
	MessageStatusBlocked       = "blocked"
)

// Message represents one outbound SMS recorded by the ledger.
// MessageID is a system-generated globally unique token, distinct from the
// database row id. Once created only Status mutates.
type Message struct {
	ID         int64     `json:"id"`
	MessageID  string    `json:"message_id"`
	CampaignID int64     `json:"campaign_id"`
	ContactID  int64     `json:"contact_id"`
	Body       string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"timestamp"`
}

// DispatchRequest is an ephemeral instruction to send one message to one
// contact. It lives only in the dispatch queue and is never persisted.
type DispatchRequest struct {
	CampaignID int64
	ContactID  int64
}

// CampaignStats holds per-status message counts for a campaign.
// Total and Failed are derived: Total is the sum of all statuses and
// Failed is undeliverable + blocked.
type CampaignStats struct {
	Total         int64 `json:"total"`
	Pending       int64 `json:"pending"`
	Success       int64 `json:"success"`
	Failed        int64 `json:"failed"`
	Undeliverable int64 `json:"undeliverable"`
	Blocked       int64 `json:"blocked"`
}

// NewCampaignStats builds campaign stats from raw per-status counts
func NewCampaignStats(pending, success, undeliverable, blocked int64) CampaignStats {
	return CampaignStats{
		Total:         pending + success + undeliverable + blocked,
		Pending:       pending,
		Success:       success,
		Failed:        undeliverable + blocked,
		Undeliverable: undeliverable,
		Blocked:       blocked,
	}
}

// IsValidMessageStatus checks if the message status is valid
func IsValidMessageStatus(status string) bool {
	switch status {
	case MessageStatusPending, MessageStatusSuccess, MessageStatusUndeliverable, MessageStatusBlocked:
		return true
	default:
		return false
	}
}

// IsTerminalStatus reports whether no further automatic transition occurs
// from the given status.
func IsTerminalStatus(status string) bool {
	switch status {
	case MessageStatusSuccess, MessageStatusUndeliverable, MessageStatusBlocked:
		return true
	default:
		return false
	}
}
