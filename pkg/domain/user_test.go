package domain_test

import (
	"errors"
	"testing"

	"github.com/kubeconsole/console/pkg/domain"
)

func TestPrecommitTransaction_IsComplete(t *testing.T) {
	detail := func(s domain.TransactionStatus) domain.TransactionDetail {
		return domain.TransactionDetail{Status: s}
	}

	for name, testcase := range map[string]struct {
		when []domain.TransactionDetail
		then bool
	}{
		"no details": {
			when: nil,
			then: false,
		},
		"all ready": {
			when: []domain.TransactionDetail{detail(domain.TransactionReady), detail(domain.TransactionReady)},
			then: false,
		},
		"some ready": {
			when: []domain.TransactionDetail{detail(domain.TransactionFinish), detail(domain.TransactionReady)},
			then: false,
		},
		"none ready": {
			when: []domain.TransactionDetail{
				detail(domain.TransactionFinish), detail(domain.TransactionError), detail(domain.TransactionRunning),
			},
			then: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			tx := domain.PrecommitTransaction{Details: testcase.when}
			if actual := tx.IsComplete(); actual != testcase.then {
				t.Errorf("unmatch: (actual, expected) = (%v, %v)", actual, testcase.then)
			}
		})
	}
}

func TestAsStatus(t *testing.T) {
	if s, err := domain.AsTransactionStatus("READY"); err != nil || s != domain.TransactionReady {
		t.Errorf("unexpected: %s, %v", s, err)
	}
	if _, err := domain.AsTransactionStatus("DONE"); !errors.Is(err, domain.ErrUnknownTransactionStatus) {
		t.Errorf("unexpected error: %v", err)
	}
	if s, err := domain.AsUserStatus("LOCK_USER"); err != nil || s != domain.UserLocked {
		t.Errorf("unexpected: %s, %v", s, err)
	}
	if _, err := domain.AsTokenStatus("revoked"); !errors.Is(err, domain.ErrUnknownTokenStatus) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAccount_Available(t *testing.T) {
	for name, testcase := range map[string]struct {
		when        domain.Account
		thenAvail   int64
		thenOverdue bool
	}{
		"positive":  {when: domain.Account{Balance: 100, DeductionBalance: 30}, thenAvail: 70},
		"zero":      {when: domain.Account{Balance: 100, DeductionBalance: 100}, thenAvail: 0},
		"negative":  {when: domain.Account{Balance: 100, DeductionBalance: 101}, thenAvail: -1, thenOverdue: true},
		"no deduce": {when: domain.Account{Balance: 5}, thenAvail: 5},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := testcase.when.Available(); actual != testcase.thenAvail {
				t.Errorf("available: (actual, expected) = (%d, %d)", actual, testcase.thenAvail)
			}
			if actual := testcase.when.Overdue(); actual != testcase.thenOverdue {
				t.Errorf("overdue: (actual, expected) = (%v, %v)", actual, testcase.thenOverdue)
			}
		})
	}
}
