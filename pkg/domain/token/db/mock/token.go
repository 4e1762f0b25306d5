package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
	dbmock "github.com/kubeconsole/console/pkg/domain/internal/db/mock"
	kdbtoken "github.com/kubeconsole/console/pkg/domain/token/db"
)

type TokenCall struct {
	UserUID uuid.UUID
	ID      string
}

type TokenInterface struct {
	Impl struct {
		Get       func(ctx context.Context, userUID uuid.UUID, id string) (domain.Token, error)
		Delete    func(ctx context.Context, userUID uuid.UUID, id string) error
		SetStatus func(ctx context.Context, userUID uuid.UUID, id string, status domain.TokenStatus) (domain.Token, error)
	}
	Calls struct {
		Get       dbmock.CallLog[TokenCall]
		Delete    dbmock.CallLog[TokenCall]
		SetStatus dbmock.CallLog[struct {
			TokenCall
			Status domain.TokenStatus
		}]
	}
}

func NewTokenInterface() *TokenInterface {
	return &TokenInterface{}
}

var _ kdbtoken.TokenInterface = &TokenInterface{}

func (m *TokenInterface) Get(ctx context.Context, userUID uuid.UUID, id string) (domain.Token, error) {
	m.Calls.Get = append(m.Calls.Get, TokenCall{UserUID: userUID, ID: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userUID, id)
	}
	panic(dbmock.ErrUnexpectedCall)
}

func (m *TokenInterface) Delete(ctx context.Context, userUID uuid.UUID, id string) error {
	m.Calls.Delete = append(m.Calls.Delete, TokenCall{UserUID: userUID, ID: id})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, userUID, id)
	}
	panic(dbmock.ErrUnexpectedCall)
}

func (m *TokenInterface) SetStatus(ctx context.Context, userUID uuid.UUID, id string, status domain.TokenStatus) (domain.Token, error) {
	m.Calls.SetStatus = append(m.Calls.SetStatus, struct {
		TokenCall
		Status domain.TokenStatus
	}{TokenCall: TokenCall{UserUID: userUID, ID: id}, Status: status})
	if m.Impl.SetStatus != nil {
		return m.Impl.SetStatus(ctx, userUID, id, status)
	}
	panic(dbmock.ErrUnexpectedCall)
}
