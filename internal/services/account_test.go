package services

import (
	"context"
	"testing"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/errs"
	"github.com/fintrackhq/backend/internal/models"
	"github.com/fintrackhq/backend/internal/realtime"
	"github.com/fintrackhq/backend/pkg/helpers"
)

type stubAStore struct {
	accounts []*models.Account
	created  *models.Account
}

func (s *stubAStore) List(_ context.Context, _ string) ([]*models.Account, error) {
	return s.accounts, nil
}

func (s *stubAStore) Get(_ context.Context, _, _ string) (*models.Account, error) {
	return nil, nil
}

func (s *stubAStore) Create(_ context.Context, a *models.Account) error {
	s.created = a
	return nil
}

func (s *stubAStore) Update(_ context.Context, _ *models.Account) error { return nil }

func (s *stubAStore) Delete(_ context.Context, _, _ string) error { return nil }

func validCreateAccountRequest() dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		Name:       "Savings",
		Type:       "savings",
		Percentage: 20,
		Currency:   "USD",
	}
}

type stubTotals struct {
	income, expense float64
}

func (s *stubTotals) Totals(_ context.Context, _ string) (float64, float64, error) {
	return s.income, s.expense, nil
}

func TestListAccountsDerivesPlannedBalances(t *testing.T) {
	accounts := &stubAStore{accounts: []*models.Account{
		{ID: "a1", Percentage: 30},
		{ID: "a2", Percentage: 0},
	}}
	svc := NewAccountService(accounts, &stubTotals{income: 2000, expense: 500}, newSpyCache(), &spyNotifier{})

	got, err := svc.List(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("accounts = %d, want 2", len(got))
	}
	// planned balance depends on lifetime income only, never on expenses
	if got[0].PlannedBalance != 600 {
		t.Fatalf("planned balance = %v, want 600", got[0].PlannedBalance)
	}
	if got[1].PlannedBalance != 0 {
		t.Fatalf("planned balance = %v, want 0 for a zero percentage", got[1].PlannedBalance)
	}
}

func TestCreateAccountInvalidatesDashboardOnly(t *testing.T) {
	accounts := &stubAStore{}
	c := newSpyCache()
	c.data[cache.TransactionsKey("uid-1")] = []byte(`[]`)
	c.data[cache.DashboardKey("uid-1")] = []byte(`{}`)
	n := &spyNotifier{}
	svc := NewAccountService(accounts, &stubTotals{}, c, n)

	_, err := svc.Create(helpers.TestCtx(), "uid-1", validCreateAccountRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, ok := c.data[cache.DashboardKey("uid-1")]; ok {
		t.Fatal("stale dashboard survived the account create")
	}
	// transaction lists do not include accounts; that cache stays
	if _, ok := c.data[cache.TransactionsKey("uid-1")]; !ok {
		t.Fatal("transaction list invalidated for an account change")
	}
	if len(n.events) != 1 || n.events[0].event.Type != realtime.EventAccountChanged {
		t.Fatalf("events = %v, want one account:changed", n.eventTypes())
	}
}

func TestCreateAccountValidatesPercentage(t *testing.T) {
	accounts := &stubAStore{}
	svc := NewAccountService(accounts, &stubTotals{}, newSpyCache(), &spyNotifier{})

	req := validCreateAccountRequest()
	req.Percentage = 150
	_, err := svc.Create(helpers.TestCtx(), "uid-1", req)
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("error = %T, want *errs.ValidationError", err)
	}
	if accounts.created != nil {
		t.Fatal("store written despite invalid percentage")
	}
}
