// Package store provides complaint persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/nkapoor/complaintdesk/internal/domain"
)

// Repository defines the interface for persisting complaints.
type Repository interface {
	// CreateComplaint stores a new complaint. The caller assigns the ID.
	CreateComplaint(ctx context.Context, c *domain.Complaint) error

	// GetComplaint retrieves a complaint by ID. Returns (nil, nil) when
	// no complaint with that ID exists.
	GetComplaint(ctx context.Context, id string) (*domain.Complaint, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
