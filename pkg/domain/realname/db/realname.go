package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
)

type RealNameInterface interface {
	// errors.ErrMissing if the user has no record.
	Get(ctx context.Context, userUID uuid.UUID) (domain.RealNameInfo, error)

	// Upsert records a verified identity. FailedTimes of the argument is ignored.
	Upsert(ctx context.Context, info domain.RealNameInfo) error

	// RecordFailure counts up failed verifications of the user and keeps the detail.
	//
	// It returns the number of failures.
	RecordFailure(ctx context.Context, userUID uuid.UUID, detail domain.AdditionalInfo) (int, error)
}
