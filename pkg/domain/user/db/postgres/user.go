package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kpool "github.com/kubeconsole/console/pkg/conn/db/postgres/pool"
	"github.com/kubeconsole/console/pkg/domain"
	pgerrors "github.com/kubeconsole/console/pkg/domain/errors/dberrors/postgres"
	kdbuser "github.com/kubeconsole/console/pkg/domain/user/db"
	xe "github.com/kubeconsole/console/pkg/errors"
)

type pgUser struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbuser.UserInterface {
	return &pgUser{pool: pool}
}

func (u *pgUser) Get(ctx context.Context, userUID uuid.UUID) (domain.User, error) {
	var uid pgtype.UUID
	var id, name, status string
	if err := u.pool.QueryRow(
		ctx,
		`select "uid", "id", "name", "status" from "User" where "uid" = $1`,
		userUID.String(),
	).Scan(&uid, &id, &name, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, xe.Wrap(pgerrors.Missing{Table: "User", Identity: userUID.String()})
		}
		return domain.User{}, xe.Wrap(err)
	}

	st, err := domain.AsUserStatus(status)
	if err != nil {
		return domain.User{}, xe.Wrap(err)
	}
	return domain.User{UID: uuid.UUID(uid.Bytes), ID: id, Name: name, Status: st}, nil
}

func (u *pgUser) DeleteUser(ctx context.Context, userUID uuid.UUID) (domain.PrecommitTransaction, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`update "User" set "status" = $2 where "uid" = $1`,
		userUID.String(), domain.UserLocked.String(),
	)
	if err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(pgerrors.Translate(err))
	}
	if tag.RowsAffected() == 0 {
		return domain.PrecommitTransaction{}, xe.Wrap(pgerrors.Missing{Table: "User", Identity: userUID.String()})
	}

	eventData, err := json.Marshal(map[string]string{
		"userUid": userUID.String(),
		"message": "user is going to be deleted",
	})
	if err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(err)
	}
	if _, err := tx.Exec(
		ctx,
		`insert into "EventLog" ("uid", "eventName", "mainId", "data") values ($1, $2, $3, $4)`,
		uuid.NewString(), domain.EventDeleteUser, userUID.String(), string(eventData),
	); err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(pgerrors.Translate(err))
	}

	ptx := domain.PrecommitTransaction{
		UID:     uuid.New(),
		Status:  domain.TransactionReady,
		Type:    domain.DeleteUserTransaction,
		InfoUID: userUID,
	}
	var createdAt pgtype.Timestamptz
	if err := tx.QueryRow(
		ctx,
		`
		insert into "PrecommitTransaction" ("uid", "status", "transactionType", "infoUid")
		values ($1, $2, $3, $4)
		returning "createdAt"
		`,
		ptx.UID.String(), ptx.Status.String(), string(ptx.Type), userUID.String(),
	).Scan(&createdAt); err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(pgerrors.Translate(err))
	}
	ptx.CreatedAt = createdAt.Time

	regions, err := queryRegions(ctx, tx)
	if err != nil {
		return domain.PrecommitTransaction{}, err
	}

	for _, r := range regions {
		detail := domain.TransactionDetail{
			UID:            uuid.New(),
			TransactionUID: ptx.UID,
			RegionUID:      r.UID,
			Status:         domain.TransactionReady,
		}
		if _, err := tx.Exec(
			ctx,
			`
			insert into "TransactionDetail" ("uid", "transactionUid", "regionUid", "status")
			values ($1, $2, $3, $4)
			`,
			detail.UID.String(), ptx.UID.String(), r.UID.String(), detail.Status.String(),
		); err != nil {
			return domain.PrecommitTransaction{}, xe.Wrap(pgerrors.Translate(err))
		}
		ptx.Details = append(ptx.Details, detail)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(pgerrors.Translate(err))
	}
	return ptx, nil
}

func (u *pgUser) GetTransaction(ctx context.Context, txUID uuid.UUID) (domain.PrecommitTransaction, error) {
	var status, typ string
	var infoUID pgtype.UUID
	var createdAt pgtype.Timestamptz
	if err := u.pool.QueryRow(
		ctx,
		`
		select "status", "transactionType", "infoUid", "createdAt"
		from "PrecommitTransaction" where "uid" = $1
		`,
		txUID.String(),
	).Scan(&status, &typ, &infoUID, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PrecommitTransaction{}, xe.Wrap(pgerrors.Missing{
				Table: "PrecommitTransaction", Identity: txUID.String(),
			})
		}
		return domain.PrecommitTransaction{}, xe.Wrap(err)
	}

	st, err := domain.AsTransactionStatus(status)
	if err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(err)
	}
	ptx := domain.PrecommitTransaction{
		UID:       txUID,
		Status:    st,
		Type:      domain.TransactionType(typ),
		InfoUID:   uuid.UUID(infoUID.Bytes),
		CreatedAt: createdAt.Time,
	}

	rows, err := u.pool.Query(
		ctx,
		`
		select "uid", "regionUid", "status" from "TransactionDetail"
		where "transactionUid" = $1
		order by "regionUid"
		`,
		txUID.String(),
	)
	if err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var uid, regionUID pgtype.UUID
		var status string
		if err := rows.Scan(&uid, &regionUID, &status); err != nil {
			return domain.PrecommitTransaction{}, xe.Wrap(err)
		}
		st, err := domain.AsTransactionStatus(status)
		if err != nil {
			return domain.PrecommitTransaction{}, xe.Wrap(err)
		}
		ptx.Details = append(ptx.Details, domain.TransactionDetail{
			UID:            uuid.UUID(uid.Bytes),
			TransactionUID: txUID,
			RegionUID:      uuid.UUID(regionUID.Bytes),
			Status:         st,
		})
	}
	if err := rows.Err(); err != nil {
		return domain.PrecommitTransaction{}, xe.Wrap(err)
	}
	return ptx, nil
}

func (u *pgUser) Regions(ctx context.Context) ([]domain.Region, error) {
	return queryRegions(ctx, u.pool)
}

func queryRegions(ctx context.Context, q kpool.Queryer) ([]domain.Region, error) {
	rows, err := q.Query(ctx, `select "uid", "domain", "displayName" from "Region" order by "uid"`)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer rows.Close()

	regions := []domain.Region{}
	for rows.Next() {
		var uid pgtype.UUID
		var dom, displayName string
		if err := rows.Scan(&uid, &dom, &displayName); err != nil {
			return nil, xe.Wrap(err)
		}
		regions = append(regions, domain.Region{
			UID: uuid.UUID(uid.Bytes), Domain: dom, DisplayName: displayName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, xe.Wrap(err)
	}
	return regions, nil
}
