package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
)

// Tokens are always looked up with their owner.
// A token of other users is treated as missing.
type TokenInterface interface {
	// errors.ErrMissing if not found.
	Get(ctx context.Context, userUID uuid.UUID, id string) (domain.Token, error)

	// errors.ErrMissing if not found.
	Delete(ctx context.Context, userUID uuid.UUID, id string) error

	// SetStatus updates status and returns the updated token.
	//
	// errors.ErrMissing if not found.
	SetStatus(ctx context.Context, userUID uuid.UUID, id string, status domain.TokenStatus) (domain.Token, error)
}
