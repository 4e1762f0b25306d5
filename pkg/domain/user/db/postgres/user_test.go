package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/kubeconsole/console/pkg/conn/db/postgres/pool/fake"
	"github.com/kubeconsole/console/pkg/domain"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	kpguser "github.com/kubeconsole/console/pkg/domain/user/db/postgres"
	"github.com/kubeconsole/console/pkg/utils/try"
)

type ledger struct {
	regions        []domain.Region
	userRows       string
	precommitErr   error
	failDetailAt   int
	detailsWritten int
}

func (l *ledger) handle(sql string, args []any) fake.Result {
	switch {
	case strings.Contains(sql, `update "User"`):
		return fake.Result{Tag: l.userRows}
	case strings.Contains(sql, `insert into "EventLog"`):
		return fake.Result{Tag: "INSERT 0 1"}
	case strings.Contains(sql, `insert into "PrecommitTransaction"`):
		if l.precommitErr != nil {
			return fake.Result{Err: l.precommitErr}
		}
		return fake.Result{Rows: [][]any{{time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}}}
	case strings.Contains(sql, `from "Region"`):
		rows := [][]any{}
		for _, r := range l.regions {
			rows = append(rows, []any{r.UID.String(), r.Domain, r.DisplayName})
		}
		return fake.Result{Rows: rows}
	case strings.Contains(sql, `insert into "TransactionDetail"`):
		l.detailsWritten += 1
		if l.detailsWritten == l.failDetailAt {
			return fake.Result{Err: errors.New("fake error")}
		}
		return fake.Result{Tag: "INSERT 0 1"}
	}
	return fake.Result{Err: errors.New("unexpected statement: " + sql)}
}

func regions(n int) []domain.Region {
	rs := []domain.Region{}
	for i := 0; i < n; i++ {
		rs = append(rs, domain.Region{UID: uuid.New(), Domain: "region.example.com", DisplayName: "region"})
	}
	return rs
}

func TestUser_DeleteUser(t *testing.T) {
	userUID := uuid.MustParse("9d3b6f5a-0e1c-4bb3-8d0f-2a1e6c7b5d40")

	t.Run("it creates one transaction and one READY detail per region, in a transaction", func(t *testing.T) {
		ctx := context.Background()
		l := &ledger{regions: regions(3), userRows: "UPDATE 1"}
		pool := fake.New(l.handle)

		testee := kpguser.New(pool)
		actual := try.To(testee.DeleteUser(ctx, userUID)).OrFatal(t)

		if actual.Status != domain.TransactionReady || actual.Type != domain.DeleteUserTransaction {
			t.Errorf("unexpected transaction: %+v", actual)
		}
		if actual.InfoUID != userUID {
			t.Errorf("unexpected info uid: %s", actual.InfoUID)
		}
		if len(actual.Details) != len(l.regions) {
			t.Fatalf("unexpected details: %d (expected %d)", len(actual.Details), len(l.regions))
		}
		for i, d := range actual.Details {
			if d.Status != domain.TransactionReady {
				t.Errorf("detail #%d is not READY: %s", i, d.Status)
			}
			if d.TransactionUID != actual.UID {
				t.Errorf("detail #%d has wrong transaction: %s", i, d.TransactionUID)
			}
			if d.RegionUID != l.regions[i].UID {
				t.Errorf("detail #%d has wrong region: %s", i, d.RegionUID)
			}
		}
		if actual.IsComplete() {
			t.Error("new transaction should not be complete")
		}

		txs := pool.Txs()
		if len(txs) != 1 {
			t.Fatalf("transactions begun: %d", len(txs))
		}
		if !txs[0].Committed() {
			t.Error("transaction is not committed")
		}
		if len(txs[0].Statements()) != len(pool.Statements()) {
			t.Error("some statements are sent out of the transaction")
		}

		lock := txs[0].Statements()[0]
		if lock.Args[1] != domain.UserLocked.String() {
			t.Errorf("user is not locked: %v", lock.Args)
		}
	})

	t.Run("when the user is missing, it returns ErrMissing and rolls back", func(t *testing.T) {
		l := &ledger{regions: regions(2), userRows: "UPDATE 0"}
		pool := fake.New(l.handle)

		_, err := kpguser.New(pool).DeleteUser(context.Background(), userUID)
		if !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
		tx := pool.Txs()[0]
		if tx.Committed() || !tx.RolledBack() {
			t.Error("transaction is not rolled back")
		}
	})

	t.Run("when deleting is already pending, it returns ErrConflict and rolls back", func(t *testing.T) {
		l := &ledger{
			regions:  regions(2),
			userRows: "UPDATE 1",
			precommitErr: &pgconn.PgError{
				Code: pgerrcode.UniqueViolation, TableName: "PrecommitTransaction",
			},
		}
		pool := fake.New(l.handle)

		_, err := kpguser.New(pool).DeleteUser(context.Background(), userUID)
		if !errors.Is(err, domerr.ErrConflict) {
			t.Errorf("unexpected error: %v", err)
		}
		if l.detailsWritten != 0 {
			t.Errorf("details are written: %d", l.detailsWritten)
		}
		tx := pool.Txs()[0]
		if tx.Committed() || !tx.RolledBack() {
			t.Error("transaction is not rolled back")
		}
	})

	t.Run("when writing a detail fails, nothing is committed", func(t *testing.T) {
		l := &ledger{regions: regions(3), userRows: "UPDATE 1", failDetailAt: 2}
		pool := fake.New(l.handle)

		if _, err := kpguser.New(pool).DeleteUser(context.Background(), userUID); err == nil {
			t.Fatal("expected error is not returned")
		}
		tx := pool.Txs()[0]
		if tx.Committed() || !tx.RolledBack() {
			t.Error("transaction is not rolled back")
		}
	})

	t.Run("when commit fails, it returns error", func(t *testing.T) {
		l := &ledger{regions: regions(1), userRows: "UPDATE 1"}
		pool := fake.New(l.handle)
		pool.CommitErr = errors.New("fake commit error")

		_, err := kpguser.New(pool).DeleteUser(context.Background(), userUID)
		if !errors.Is(err, pool.CommitErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestUser_GetTransaction(t *testing.T) {
	txUID := uuid.New()
	userUID := uuid.New()
	regionA, regionB := uuid.New(), uuid.New()

	pool := fake.New(func(sql string, args []any) fake.Result {
		switch {
		case strings.Contains(sql, `from "PrecommitTransaction"`):
			return fake.Result{Rows: [][]any{{"READY", "DELETE_USER", userUID.String(), time.Now()}}}
		case strings.Contains(sql, `from "TransactionDetail"`):
			return fake.Result{Rows: [][]any{
				{uuid.NewString(), regionA.String(), "FINISH"},
				{uuid.NewString(), regionB.String(), "ERROR"},
			}}
		}
		return fake.Result{Err: errors.New("unexpected statement")}
	})

	actual := try.To(kpguser.New(pool).GetTransaction(context.Background(), txUID)).OrFatal(t)
	if actual.UID != txUID || actual.InfoUID != userUID || actual.Type != domain.DeleteUserTransaction {
		t.Errorf("unexpected transaction: %+v", actual)
	}
	if len(actual.Details) != 2 || actual.Details[1].RegionUID != regionB {
		t.Errorf("unexpected details: %+v", actual.Details)
	}
	if !actual.IsComplete() {
		t.Error("transaction should be complete")
	}

	t.Run("missing transaction is ErrMissing", func(t *testing.T) {
		pool := fake.New(func(string, []any) fake.Result { return fake.Result{} })
		_, err := kpguser.New(pool).GetTransaction(context.Background(), txUID)
		if !errors.Is(err, domerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
