package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
	dbmock "github.com/kubeconsole/console/pkg/domain/internal/db/mock"
	kdbuser "github.com/kubeconsole/console/pkg/domain/user/db"
)

type UserInterface struct {
	Impl struct {
		Get            func(ctx context.Context, userUID uuid.UUID) (domain.User, error)
		DeleteUser     func(ctx context.Context, userUID uuid.UUID) (domain.PrecommitTransaction, error)
		GetTransaction func(ctx context.Context, txUID uuid.UUID) (domain.PrecommitTransaction, error)
		Regions        func(ctx context.Context) ([]domain.Region, error)
	}
	Calls struct {
		Get            dbmock.CallLog[uuid.UUID]
		DeleteUser     dbmock.CallLog[uuid.UUID]
		GetTransaction dbmock.CallLog[uuid.UUID]
		Regions        dbmock.CallLog[struct{}]
	}
}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

var _ kdbuser.UserInterface = &UserInterface{}

func (m *UserInterface) Get(ctx context.Context, userUID uuid.UUID) (domain.User, error) {
	m.Calls.Get = append(m.Calls.Get, userUID)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userUID)
	}
	panic(dbmock.ErrUnexpectedCall)
}

func (m *UserInterface) DeleteUser(ctx context.Context, userUID uuid.UUID) (domain.PrecommitTransaction, error) {
	m.Calls.DeleteUser = append(m.Calls.DeleteUser, userUID)
	if m.Impl.DeleteUser != nil {
		return m.Impl.DeleteUser(ctx, userUID)
	}
	panic(dbmock.ErrUnexpectedCall)
}

func (m *UserInterface) GetTransaction(ctx context.Context, txUID uuid.UUID) (domain.PrecommitTransaction, error) {
	m.Calls.GetTransaction = append(m.Calls.GetTransaction, txUID)
	if m.Impl.GetTransaction != nil {
		return m.Impl.GetTransaction(ctx, txUID)
	}
	panic(dbmock.ErrUnexpectedCall)
}

func (m *UserInterface) Regions(ctx context.Context) ([]domain.Region, error) {
	m.Calls.Regions = append(m.Calls.Regions, struct{}{})
	if m.Impl.Regions != nil {
		return m.Impl.Regions(ctx)
	}
	panic(dbmock.ErrUnexpectedCall)
}
