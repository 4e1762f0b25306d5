package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/pkg/domain"
	dbmock "github.com/kubeconsole/console/pkg/domain/internal/db/mock"
	kdbrealname "github.com/kubeconsole/console/pkg/domain/realname/db"
)

type RealNameInterface struct {
	Impl struct {
		Get           func(ctx context.Context, userUID uuid.UUID) (domain.RealNameInfo, error)
		Upsert        func(ctx context.Context, info domain.RealNameInfo) error
		RecordFailure func(ctx context.Context, userUID uuid.UUID, detail domain.AdditionalInfo) (int, error)
	}
	Calls struct {
		Get           dbmock.CallLog[uuid.UUID]
		Upsert        dbmock.CallLog[domain.RealNameInfo]
		RecordFailure dbmock.CallLog[struct {
			UserUID uuid.UUID
			Detail  domain.AdditionalInfo
		}]
	}
}

func NewRealNameInterface() *RealNameInterface {
	return &RealNameInterface{}
}

var _ kdbrealname.RealNameInterface = &RealNameInterface{}

func (m *RealNameInterface) Get(ctx context.Context, userUID uuid.UUID) (domain.RealNameInfo, error) {
	m.Calls.Get = append(m.Calls.Get, userUID)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userUID)
	}
	panic(dbmock.ErrUnexpectedCall)
}

func (m *RealNameInterface) Upsert(ctx context.Context, info domain.RealNameInfo) error {
	m.Calls.Upsert = append(m.Calls.Upsert, info)
	if m.Impl.Upsert != nil {
		return m.Impl.Upsert(ctx, info)
	}
	panic(dbmock.ErrUnexpectedCall)
}

func (m *RealNameInterface) RecordFailure(ctx context.Context, userUID uuid.UUID, detail domain.AdditionalInfo) (int, error) {
	m.Calls.RecordFailure = append(m.Calls.RecordFailure, struct {
		UserUID uuid.UUID
		Detail  domain.AdditionalInfo
	}{UserUID: userUID, Detail: detail})
	if m.Impl.RecordFailure != nil {
		return m.Impl.RecordFailure(ctx, userUID, detail)
	}
	panic(dbmock.ErrUnexpectedCall)
}
