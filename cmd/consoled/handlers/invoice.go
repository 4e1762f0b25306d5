package handlers

import (
	"context"
	"errors"

	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	apiinvoices "github.com/kubeconsole/console/pkg/api/types/invoices"
	"github.com/kubeconsole/console/pkg/api/types/response"
	"github.com/kubeconsole/console/pkg/domain"
	kdbinvoice "github.com/kubeconsole/console/pkg/domain/invoice/db"
	"github.com/labstack/echo/v4"
)

// InvoiceNotifier tells operators about new invoices.
type InvoiceNotifier interface {
	SendInvoice(ctx context.Context, inv domain.Invoice) error
}

func ComposeInvoice(inv domain.Invoice) apiinvoices.Detail {
	return apiinvoices.Detail{
		ID:          inv.ID.String(),
		Title:       inv.Title,
		TaxID:       inv.TaxID,
		Email:       inv.Email,
		TotalAmount: inv.TotalAmount,
		Remark:      inv.Remark,
		Status:      string(inv.Status),
		CreatedAt:   inv.CreatedAt,
	}
}

// ApplyInvoiceHandler records an invoice application of the session user, then notifies operators.
//
// Failures of notification are logged, and do not fail the request.
// notifier can be nil.
func ApplyInvoiceHandler(invoices kdbinvoice.InvoiceInterface, notifier InvoiceNotifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, uid, err := userOf(c)
		if err != nil {
			return err
		}
		body := apiinvoices.Application{}
		if err := c.Bind(&body); err != nil {
			return apierr.BadRequest("body should be JSON of invoice application", err)
		}

		ctx := c.Request().Context()
		inv, err := invoices.Apply(ctx, domain.Invoice{
			UserUID:     uid,
			Title:       body.Title,
			TaxID:       body.TaxID,
			Email:       body.Email,
			TotalAmount: body.TotalAmount,
			Remark:      body.Remark,
		})
		if errors.Is(err, domain.ErrInvalidInvoice) {
			return apierr.BadRequest(err.Error(), err)
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		if notifier != nil {
			if err := notifier.SendInvoice(ctx, inv); err != nil {
				c.Logger().Warnf("invoice %s is not notified: %+v", inv.ID, err)
			}
		}
		return response.Ok(c, ComposeInvoice(inv))
	}
}
