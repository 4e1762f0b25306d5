package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	kpool "github.com/kubeconsole/console/pkg/conn/db/postgres/pool"
	"github.com/kubeconsole/console/pkg/domain"
	pgerrors "github.com/kubeconsole/console/pkg/domain/errors/dberrors/postgres"
	kdbinvoice "github.com/kubeconsole/console/pkg/domain/invoice/db"
	xe "github.com/kubeconsole/console/pkg/errors"
)

type pgInvoice struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbinvoice.InvoiceInterface {
	return &pgInvoice{pool: pool}
}

func (i *pgInvoice) Apply(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	if err := invoice.Validate(); err != nil {
		return domain.Invoice{}, xe.Wrap(err)
	}

	invoice.ID = uuid.New()
	invoice.Status = domain.InvoicePending

	var createdAt pgtype.Timestamptz
	if err := i.pool.QueryRow(
		ctx,
		`
		insert into "Invoice" (
			"id", "userUid", "title", "taxId", "email", "totalAmount", "remark", "status"
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning "createdAt"
		`,
		invoice.ID.String(), invoice.UserUID.String(), invoice.Title, invoice.TaxID,
		invoice.Email, invoice.TotalAmount, invoice.Remark, string(invoice.Status),
	).Scan(&createdAt); err != nil {
		return domain.Invoice{}, xe.Wrap(pgerrors.Translate(err))
	}
	invoice.CreatedAt = createdAt.Time
	return invoice, nil
}
