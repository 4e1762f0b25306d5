package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownUserStatus = errors.New("unknown user status")

type UserStatus string

const (
	UserNormal  UserStatus = "NORMAL_USER"
	UserLocked  UserStatus = "LOCK_USER"
	UserDeleted UserStatus = "DELETE_USER"
)

func (s UserStatus) String() string {
	return string(s)
}

func AsUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case UserNormal, UserLocked, UserDeleted:
		return UserStatus(s), nil
	default:
		return UserStatus(s), fmt.Errorf("%w: %s", ErrUnknownUserStatus, s)
	}
}

type User struct {
	UID    uuid.UUID
	ID     string
	Name   string
	Status UserStatus
}

// Region where the console is deployed. Rows of global "Region" table.
type Region struct {
	UID         uuid.UUID
	Domain      string
	DisplayName string
}

var ErrUnknownTransactionStatus = errors.New("unknown transaction status")

// Status of precommit transactions and their per-region details.
//
// Only TransactionReady is produced by the console.
// Others are set by region workers propagating the transaction.
type TransactionStatus string

const (
	TransactionReady   TransactionStatus = "READY"
	TransactionRunning TransactionStatus = "RUNNING"
	TransactionFinish  TransactionStatus = "FINISH"
	TransactionError   TransactionStatus = "ERROR"
)

func (s TransactionStatus) String() string {
	return string(s)
}

func AsTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TransactionReady, TransactionRunning, TransactionFinish, TransactionError:
		return TransactionStatus(s), nil
	default:
		return TransactionStatus(s), fmt.Errorf("%w: %s", ErrUnknownTransactionStatus, s)
	}
}

type TransactionType string

const (
	DeleteUserTransaction TransactionType = "DELETE_USER"
)

// PrecommitTransaction is an intent to be applied on every region.
type PrecommitTransaction struct {
	UID       uuid.UUID
	Status    TransactionStatus
	Type      TransactionType
	InfoUID   uuid.UUID
	CreatedAt time.Time
	Details   []TransactionDetail
}

// IsComplete reports whether all regions have taken the transaction.
//
// A transaction without details is never complete.
func (t PrecommitTransaction) IsComplete() bool {
	if len(t.Details) == 0 {
		return false
	}
	for _, d := range t.Details {
		if d.Status == TransactionReady {
			return false
		}
	}
	return true
}

// TransactionDetail is the state of a PrecommitTransaction in one region.
type TransactionDetail struct {
	UID            uuid.UUID
	TransactionUID uuid.UUID
	RegionUID      uuid.UUID
	Status         TransactionStatus
}

const EventDeleteUser = "DELETE_USER"

// EventLog is an audit record.
type EventLog struct {
	UID       uuid.UUID
	EventName string
	MainID    string
	Data      json.RawMessage
}
