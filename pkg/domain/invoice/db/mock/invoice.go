package mock

import (
	"context"

	"github.com/kubeconsole/console/pkg/domain"
	dbmock "github.com/kubeconsole/console/pkg/domain/internal/db/mock"
	kdbinvoice "github.com/kubeconsole/console/pkg/domain/invoice/db"
)

type InvoiceInterface struct {
	Impl struct {
		Apply func(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error)
	}
	Calls struct {
		Apply dbmock.CallLog[domain.Invoice]
	}
}

func NewInvoiceInterface() *InvoiceInterface {
	return &InvoiceInterface{}
}

var _ kdbinvoice.InvoiceInterface = &InvoiceInterface{}

func (m *InvoiceInterface) Apply(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	m.Calls.Apply = append(m.Calls.Apply, invoice)
	if m.Impl.Apply != nil {
		return m.Impl.Apply(ctx, invoice)
	}
	panic(dbmock.ErrUnexpectedCall)
}
