package models

import "time"

// Account groups users and the campaigns they own
type Account struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents a login belonging to an account
type User struct {
	ID           int64     `json:"id"`
	AccountID    int64     `json:"account_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	APIKey       string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
