// Package domain contains core domain types for the complaint assistant.
package domain

import (
	"time"
)

// Complaint is a filed complaint as stored by the complaint service.
// It is immutable once created; the ID is assigned by the store.
type Complaint struct {
	ID          string    `json:"complaint_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Details     string    `json:"complaint_details"`
	CreatedAt   time.Time `json:"created_at"`
}
