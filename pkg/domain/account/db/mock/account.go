package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
	kdbaccount "github.com/kubeconsole/console/pkg/domain/account/db"
	dbmock "github.com/kubeconsole/console/pkg/domain/internal/db/mock"
)

type AccountInterface struct {
	Impl struct {
		Get func(ctx context.Context, userUID uuid.UUID) (domain.Account, error)
	}
	Calls struct {
		Get dbmock.CallLog[uuid.UUID]
	}
}

func NewAccountInterface() *AccountInterface {
	return &AccountInterface{}
}

var _ kdbaccount.AccountInterface = &AccountInterface{}

func (m *AccountInterface) Get(ctx context.Context, userUID uuid.UUID) (domain.Account, error) {
	m.Calls.Get = append(m.Calls.Get, userUID)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userUID)
	}
	panic(dbmock.ErrUnexpectedCall)
}
