package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kpool "github.com/kubeconsole/console/pkg/conn/db/postgres/pool"
	"github.com/kubeconsole/console/pkg/domain"
	pgerrors "github.com/kubeconsole/console/pkg/domain/errors/dberrors/postgres"
	kdbtoken "github.com/kubeconsole/console/pkg/domain/token/db"
	xe "github.com/kubeconsole/console/pkg/errors"
)

type pgToken struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbtoken.TokenInterface {
	return &pgToken{pool: pool}
}

func scanToken(row pgx.Row, userUID uuid.UUID, id string) (domain.Token, error) {
	var name, status string
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&name, &status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Token{}, xe.Wrap(pgerrors.Missing{Table: "UserToken", Identity: id})
		}
		return domain.Token{}, xe.Wrap(err)
	}
	st, err := domain.AsTokenStatus(status)
	if err != nil {
		return domain.Token{}, xe.Wrap(err)
	}
	return domain.Token{
		ID: id, UserUID: userUID, Name: name, Status: st, CreatedAt: createdAt.Time,
	}, nil
}

func (tk *pgToken) Get(ctx context.Context, userUID uuid.UUID, id string) (domain.Token, error) {
	return scanToken(
		tk.pool.QueryRow(
			ctx,
			`select "name", "status", "createdAt" from "UserToken" where "id" = $1 and "userUid" = $2`,
			id, userUID.String(),
		),
		userUID, id,
	)
}

func (tk *pgToken) Delete(ctx context.Context, userUID uuid.UUID, id string) error {
	tag, err := tk.pool.Exec(
		ctx,
		`delete from "UserToken" where "id" = $1 and "userUid" = $2`,
		id, userUID.String(),
	)
	if err != nil {
		return xe.Wrap(pgerrors.Translate(err))
	}
	if tag.RowsAffected() == 0 {
		return xe.Wrap(pgerrors.Missing{Table: "UserToken", Identity: id})
	}
	return nil
}

func (tk *pgToken) SetStatus(ctx context.Context, userUID uuid.UUID, id string, status domain.TokenStatus) (domain.Token, error) {
	return scanToken(
		tk.pool.QueryRow(
			ctx,
			`
			update "UserToken" set "status" = $3
			where "id" = $1 and "userUid" = $2
			returning "name", "status", "createdAt"
			`,
			id, userUID.String(), status.String(),
		),
		userUID, id,
	)
}
