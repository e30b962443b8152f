package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/models"
	"github.com/fintrackhq/backend/pkg/helpers"
)

type stubAggregates struct {
	income, expense           float64
	monthIncome, monthExpense float64
	rangeFrom, rangeTo        string
	trendFrom                 string
	recentLimitSeen           int
	topLimitSeen              int
	calls                     int
}

func (s *stubAggregates) Totals(_ context.Context, _ string) (float64, float64, error) {
	s.calls++
	return s.income, s.expense, nil
}

func (s *stubAggregates) RangeTotals(_ context.Context, _, from, to string) (float64, float64, error) {
	s.calls++
	s.rangeFrom, s.rangeTo = from, to
	return s.monthIncome, s.monthExpense, nil
}

func (s *stubAggregates) TopExpenseCategories(_ context.Context, _, _, _ string, limit int) ([]dto.CategoryTotal, error) {
	s.calls++
	s.topLimitSeen = limit
	return []dto.CategoryTotal{{CategoryID: "c1", Name: "Food", Total: 42, Count: 3}}, nil
}

func (s *stubAggregates) Recent(_ context.Context, _ string, limit int) ([]*models.Transaction, error) {
	s.calls++
	s.recentLimitSeen = limit
	return nil, nil
}

func (s *stubAggregates) MonthlyTrend(_ context.Context, _, fromMonth string) ([]dto.TrendPoint, error) {
	s.calls++
	s.trendFrom = fromMonth
	return []dto.TrendPoint{{Month: fromMonth, Income: 1, Expense: 2}}, nil
}

type stubAccountList struct {
	accounts []*models.Account
}

func (s *stubAccountList) List(_ context.Context, _ string) ([]*models.Account, error) {
	return s.accounts, nil
}

func fixedNow(t *testing.T) func() time.Time {
	t.Helper()
	at, err := time.Parse(time.RFC3339, "2024-03-15T12:00:00Z")
	if err != nil {
		t.Fatalf("parse fixed time: %v", err)
	}
	return func() time.Time { return at }
}

func TestDashboardWindowsFromCurrentMonth(t *testing.T) {
	agg := &stubAggregates{}
	svc := NewDashboardService(agg, &stubAccountList{}, newSpyCache(), time.Minute)
	svc.now = fixedNow(t)

	if _, err := svc.Get(helpers.TestCtx(), "uid-1"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if agg.rangeFrom != "2024-03-01" || agg.rangeTo != "2024-03-31" {
		t.Fatalf("month window = %s..%s, want 2024-03-01..2024-03-31", agg.rangeFrom, agg.rangeTo)
	}
	if agg.trendFrom != "2023-10" {
		t.Fatalf("trend start = %s, want 2023-10", agg.trendFrom)
	}
	if agg.topLimitSeen != topCategoriesLimit || agg.recentLimitSeen != recentLimit {
		t.Fatalf("limits = %d/%d, want %d/%d",
			agg.topLimitSeen, agg.recentLimitSeen, topCategoriesLimit, recentLimit)
	}
}

func TestDashboardDerivesBalanceAndPlannedBalances(t *testing.T) {
	agg := &stubAggregates{income: 1000, expense: 400}
	accounts := &stubAccountList{accounts: []*models.Account{
		{ID: "a1", Name: "Savings", Percentage: 20},
		{ID: "a2", Name: "Rent", Percentage: 50},
	}}
	svc := NewDashboardService(agg, accounts, newSpyCache(), time.Minute)
	svc.now = fixedNow(t)

	raw, err := svc.Get(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	var resp dto.DashboardResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if resp.Balance != 600 {
		t.Fatalf("balance = %v, want 600", resp.Balance)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(resp.Accounts))
	}
	if resp.Accounts[0].PlannedBalance != 200 || resp.Accounts[1].PlannedBalance != 500 {
		t.Fatalf("planned balances = %v/%v, want 200/500",
			resp.Accounts[0].PlannedBalance, resp.Accounts[1].PlannedBalance)
	}
}

func TestDashboardCacheHitSkipsQueries(t *testing.T) {
	agg := &stubAggregates{}
	c := newSpyCache()
	cached := []byte(`{"balance":123}`)
	c.data[cache.DashboardKey("uid-1")] = cached
	svc := NewDashboardService(agg, &stubAccountList{}, c, time.Minute)
	svc.now = fixedNow(t)

	raw, err := svc.Get(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(raw) != string(cached) {
		t.Fatalf("cache hit returned %s, want the cached bytes", raw)
	}
	if agg.calls != 0 {
		t.Fatalf("aggregates queried %d times despite cache hit", agg.calls)
	}
}

func TestDashboardFillsCacheOnMiss(t *testing.T) {
	agg := &stubAggregates{income: 10}
	c := newSpyCache()
	svc := NewDashboardService(agg, &stubAccountList{}, c, time.Minute)
	svc.now = fixedNow(t)

	raw, err := svc.Get(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	stored, ok := c.data[cache.DashboardKey("uid-1")]
	if !ok {
		t.Fatal("snapshot not cached")
	}
	if string(stored) != string(raw) {
		t.Fatal("cached snapshot differs from the returned one")
	}
}
