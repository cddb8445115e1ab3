package models

import (
	"time"
)

// SessionState represents where a customer auth record is in its lifecycle
type SessionState string

const (
	SessionStateIssued    SessionState = "issued"     // Usable for authorization
	SessionStateLoggedOut SessionState = "logged_out" // Revoked by the customer, terminal
	SessionStateExpired   SessionState = "expired"    // Past its validity window, terminal
)

// CustomerAuth is a login session binding an access token to a customer
type CustomerAuth struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	UUID        string     `gorm:"column:uuid;size:200;uniqueIndex;not null"`
	CustomerID  int64      `gorm:"column:customer_id;index;not null"`
	Customer    Customer   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	AccessToken string     `gorm:"column:access_token;size:500;uniqueIndex;not null"`
	LoginAt     time.Time  `gorm:"column:login_at;not null"`
	ExpiresAt   time.Time  `gorm:"column:expires_at;index;not null"`
	LogoutAt    *time.Time `gorm:"column:logout_at"`
}

func (CustomerAuth) TableName() string {
	return "customer_auth"
}

// State derives the session state at the given instant. Expiry is never
// stored; it is computed from ExpiresAt each time.
func (a *CustomerAuth) State(now time.Time) SessionState {
	if a.LogoutAt != nil {
		return SessionStateLoggedOut
	}
	if now.After(a.ExpiresAt) {
		return SessionStateExpired
	}
	return SessionStateIssued
}

// IsActive returns true if the session can still authorize requests
func (a *CustomerAuth) IsActive(now time.Time) bool {
	return a.State(now) == SessionStateIssued
}
