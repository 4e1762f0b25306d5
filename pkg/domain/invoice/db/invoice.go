package db

import (
	"context"

	"github.com/kubeconsole/console/pkg/domain"
)

type InvoiceInterface interface {
	// Apply records a new invoice application as PENDING.
	//
	// ID, Status and CreatedAt of the argument are ignored; the returned one has them.
	Apply(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error)
}
