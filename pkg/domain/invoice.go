package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInvoice = errors.New("invoice is invalid")

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "PENDING"
	InvoiceCompleted InvoiceStatus = "COMPLETED"
	InvoiceRejected  InvoiceStatus = "REJECTED"
)

type Invoice struct {
	ID          uuid.UUID
	UserUID     uuid.UUID
	Title       string
	TaxID       string
	Email       string
	TotalAmount int64
	Remark      string
	Status      InvoiceStatus
	CreatedAt   time.Time
}

// Validate checks fields given by the applicant.
func (i Invoice) Validate() error {
	switch {
	case i.Title == "":
		return errors.Join(ErrInvalidInvoice, errors.New("title is required"))
	case i.TaxID == "":
		return errors.Join(ErrInvalidInvoice, errors.New("tax id is required"))
	case i.Email == "":
		return errors.Join(ErrInvalidInvoice, errors.New("email is required"))
	case i.TotalAmount <= 0:
		return errors.Join(ErrInvalidInvoice, errors.New("total amount should be positive"))
	}
	return nil
}
