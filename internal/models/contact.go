package models

import "time"

// Contact represents a recipient attached to a campaign.
// CanSend gates dispatch eligibility and is flipped false when the
// contact opts out via the inbound webhook.
type Contact struct {
	ID          int64     `json:"id"`
	CampaignID  int64     `json:"campaign_id"`
	PhoneNumber string    `json:"phone_number"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	CanSend     bool      `json:"can_send"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate performs validation on contact data
func (c *Contact) Validate() error {
	if c.PhoneNumber == "" {
		return ErrInvalidInput("phone_number is required")
	}
	if !IsValidPhoneNumber(c.PhoneNumber) {
		return ErrInvalidInput("invalid phone number (expected E.164 format, e.g. +254712345001)")
	}
	if c.FirstName == "" {
		return ErrInvalidInput("first_name is required")
	}
	if c.LastName == "" {
		return ErrInvalidInput("last_name is required")
	}
	return nil
}

// DispatchContact pairs a contact with its campaign's message template,
// fetched in a single query when a dispatch request is processed.
type DispatchContact struct {
	Contact  Contact
	Template string
}
