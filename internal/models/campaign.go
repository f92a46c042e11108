package models

import (
	"regexp"
	"time"
)

// phonePattern accepts E.164 numbers: a leading + followed by 8 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// Campaign represents an SMS campaign owned by an account
type Campaign struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Name        string    `json:"name"`
	Message     string    `json:"message"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate performs validation on campaign data
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return ErrInvalidInput("name is required")
	}
	if c.Message == "" {
		return ErrInvalidInput("message is required")
	}
	if c.PhoneNumber == "" {
		return ErrInvalidInput("phone_number is required")
	}
	if !IsValidPhoneNumber(c.PhoneNumber) {
		return ErrInvalidInput("invalid phone number (expected E.164 format, e.g. +254712345001)")
	}
	return nil
}

// IsValidPhoneNumber checks that a phone number is in E.164 format
func IsValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}
