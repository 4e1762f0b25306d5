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
	kdbrealname "github.com/kubeconsole/console/pkg/domain/realname/db"
	xe "github.com/kubeconsole/console/pkg/errors"
)

type pgRealName struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kdbrealname.RealNameInterface {
	return &pgRealName{pool: pool}
}

func (r *pgRealName) Get(ctx context.Context, userUID uuid.UUID) (domain.RealNameInfo, error) {
	var realName, idCard, photo, video pgtype.Text
	var verified bool
	var failed int32
	var additional pgtype.JSONB
	if err := r.pool.QueryRow(
		ctx,
		`
		select "realName", "idCard", "isVerified", "photoObject", "videoObject",
			"idVerifyFailedTimes", "additionalInfo"
		from "UserRealNameInfo" where "userUid" = $1
		`,
		userUID.String(),
	).Scan(&realName, &idCard, &verified, &photo, &video, &failed, &additional); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RealNameInfo{}, xe.Wrap(pgerrors.Missing{Table: "UserRealNameInfo", Identity: userUID.String()})
		}
		return domain.RealNameInfo{}, xe.Wrap(err)
	}

	info := domain.RealNameInfo{
		UserUID:     userUID,
		RealName:    realName.String,
		IDCard:      idCard.String,
		IsVerified:  verified,
		PhotoObject: photo.String,
		VideoObject: video.String,
		FailedTimes: int(failed),
	}
	if additional.Status == pgtype.Present {
		ai, err := domain.UnmarshalAdditionalInfo(additional.Bytes)
		if err != nil {
			return domain.RealNameInfo{}, xe.Wrap(err)
		}
		info.AdditionalInfo = ai
	}
	return info, nil
}

func (r *pgRealName) Upsert(ctx context.Context, info domain.RealNameInfo) error {
	additional, err := domain.MarshalAdditionalInfo(info.AdditionalInfo)
	if err != nil {
		return xe.Wrap(err)
	}

	if _, err := r.pool.Exec(
		ctx,
		`
		insert into "UserRealNameInfo" (
			"id", "userUid", "realName", "idCard", "isVerified",
			"photoObject", "videoObject", "additionalInfo"
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		on conflict ("userUid") do update set
			"realName" = excluded."realName",
			"idCard" = excluded."idCard",
			"isVerified" = excluded."isVerified",
			"photoObject" = excluded."photoObject",
			"videoObject" = excluded."videoObject",
			"additionalInfo" = excluded."additionalInfo",
			"updatedAt" = now()
		`,
		uuid.NewString(), info.UserUID.String(), info.RealName, info.IDCard, info.IsVerified,
		info.PhotoObject, info.VideoObject, string(additional),
	); err != nil {
		return xe.Wrap(pgerrors.Translate(err))
	}
	return nil
}

func (r *pgRealName) RecordFailure(ctx context.Context, userUID uuid.UUID, detail domain.AdditionalInfo) (int, error) {
	additional, err := domain.MarshalAdditionalInfo(detail)
	if err != nil {
		return 0, xe.Wrap(err)
	}

	var failed int32
	if err := r.pool.QueryRow(
		ctx,
		`
		insert into "UserRealNameInfo" (
			"id", "userUid", "isVerified", "idVerifyFailedTimes", "additionalInfo"
		)
		values ($1, $2, false, 1, $3)
		on conflict ("userUid") do update set
			"idVerifyFailedTimes" = "UserRealNameInfo"."idVerifyFailedTimes" + 1,
			"additionalInfo" = excluded."additionalInfo",
			"updatedAt" = now()
		returning "idVerifyFailedTimes"
		`,
		uuid.NewString(), userUID.String(), string(additional),
	).Scan(&failed); err != nil {
		return 0, xe.Wrap(pgerrors.Translate(err))
	}
	return int(failed), nil
}
