package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kpool "github.com/kubeconsole/console/pkg/conn/db/postgres/pool"
	"github.com/kubeconsole/console/pkg/domain"
	kdbaccount "github.com/kubeconsole/console/pkg/domain/account/db"
	pgerrors "github.com/kubeconsole/console/pkg/domain/errors/dberrors/postgres"
	xe "github.com/kubeconsole/console/pkg/errors"
)

type pgAccount struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbaccount.AccountInterface {
	return &pgAccount{pool: pool}
}

func (a *pgAccount) Get(ctx context.Context, userUID uuid.UUID) (domain.Account, error) {
	var balance, deduction pgtype.Int8
	if err := a.pool.QueryRow(
		ctx,
		`select "balance", "deduction_balance" from "Account" where "userUid" = $1`,
		userUID.String(),
	).Scan(&balance, &deduction); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, xe.Wrap(pgerrors.Missing{Table: "Account", Identity: userUID.String()})
		}
		return domain.Account{}, xe.Wrap(err)
	}

	acc := domain.Account{UserUID: userUID}
	if balance.Status == pgtype.Present {
		acc.Balance = balance.Int
	}
	if deduction.Status == pgtype.Present {
		acc.DeductionBalance = deduction.Int
	}
	return acc, nil
}
