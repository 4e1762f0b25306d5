package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
)

type UserInterface interface {
	// Get a user.
	//
	// # Returns
	//
	// - domain.User
	//
	// - error: errors.ErrMissing if the user is not found.
	Get(ctx context.Context, userUID uuid.UUID) (domain.User, error)

	// DeleteUser records the intent of deleting a user, atomically.
	//
	// In one database transaction, it locks the user,
	// writes an event log, and creates a precommit transaction
	// with a detail per region. All of them are READY.
	//
	// # Returns
	//
	// - domain.PrecommitTransaction: created transaction with its details.
	//
	// - error: errors.ErrMissing if the user is not found.
	// errors.ErrConflict if deleting the user is already pending.
	DeleteUser(ctx context.Context, userUID uuid.UUID) (domain.PrecommitTransaction, error)

	// GetTransaction returns a precommit transaction with its details.
	GetTransaction(ctx context.Context, txUID uuid.UUID) (domain.PrecommitTransaction, error)

	// Regions lists all regions.
	Regions(ctx context.Context) ([]domain.Region, error)
}
