package domain

import "github.com/google/uuid"

// Account holds balances in the smallest currency unit.
type Account struct {
	UserUID          uuid.UUID
	Balance          int64
	DeductionBalance int64
}

// Available returns balance not yet deducted. It can be negative.
func (a Account) Available() int64 {
	return a.Balance - a.DeductionBalance
}

// Overdue reports whether deductions exceed balance.
func (a Account) Overdue() bool {
	return a.Available() < 0
}
