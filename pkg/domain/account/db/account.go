package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
)

type AccountInterface interface {
	// Get the account of a user.
	//
	// errors.ErrMissing if the user has no account.
	Get(ctx context.Context, userUID uuid.UUID) (domain.Account, error)
}
