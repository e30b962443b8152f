package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/errs"
	"github.com/fintrackhq/backend/internal/models"
)

const (
	dashDateLayout  = "2006-01-02"
	dashMonthLayout = "2006-01"

	topCategoriesLimit = 10
	recentLimit        = 5
	trendMonths        = 6
)

// dashboardAggregates are the independent queries behind the snapshot.
type dashboardAggregates interface {
	Totals(ctx context.Context, uid string) (income, expense float64, err error)
	RangeTotals(ctx context.Context, uid, from, to string) (income, expense float64, err error)
	TopExpenseCategories(ctx context.Context, uid, from, to string, limit int) ([]dto.CategoryTotal, error)
	Recent(ctx context.Context, uid string, limit int) ([]*models.Transaction, error)
	MonthlyTrend(ctx context.Context, uid, fromMonth string) ([]dto.TrendPoint, error)
}

type dashboardAccountStore interface {
	List(ctx context.Context, uid string) ([]*models.Account, error)
}

type dashboardService struct {
	agg      dashboardAggregates
	accounts dashboardAccountStore
	cache    cache.Client
	ttl      time.Duration
	now      func() time.Time
}

func NewDashboardService(agg dashboardAggregates, accounts dashboardAccountStore, c cache.Client, ttl time.Duration) *dashboardService {
	return &dashboardService{
		agg:      agg,
		accounts: accounts,
		cache:    c,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get assembles the dashboard snapshot: lifetime and current-month totals,
// the month's top expense categories, the most recent transactions, a
// trailing trend, and the accounts with derived planned balances. The
// sub-aggregates run as separate queries with no shared snapshot, so the
// result can be internally inconsistent under concurrent mutation.
func (s *dashboardService) Get(ctx context.Context, uid string) (json.RawMessage, error) {
	key := cache.DashboardKey(uid)
	if raw, ok := s.cache.Get(ctx, key); ok {
		return raw, nil
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	trendStart := monthStart.AddDate(0, -(trendMonths - 1), 0)

	totalIncome, totalExpense, err := s.agg.Totals(ctx, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("totals", err)
	}

	monthIncome, monthExpense, err := s.agg.RangeTotals(ctx, uid,
		monthStart.Format(dashDateLayout), monthEnd.Format(dashDateLayout))
	if err != nil {
		return nil, errs.NewDatabaseError("month totals", err)
	}

	topCategories, err := s.agg.TopExpenseCategories(ctx, uid,
		monthStart.Format(dashDateLayout), monthEnd.Format(dashDateLayout), topCategoriesLimit)
	if err != nil {
		return nil, errs.NewDatabaseError("top categories", err)
	}

	recent, err := s.agg.Recent(ctx, uid, recentLimit)
	if err != nil {
		return nil, errs.NewDatabaseError("recent transactions", err)
	}

	trend, err := s.agg.MonthlyTrend(ctx, uid, trendStart.Format(dashMonthLayout))
	if err != nil {
		return nil, errs.NewDatabaseError("trend", err)
	}

	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("list accounts", err)
	}

	resp := dto.DashboardResponse{
		TotalIncome:        totalIncome,
		TotalExpense:       totalExpense,
		Balance:            totalIncome - totalExpense,
		MonthIncome:        monthIncome,
		MonthExpense:       monthExpense,
		TopCategories:      topCategories,
		RecentTransactions: dto.NewTransactionResponses(recent),
		Trend:              trend,
		Accounts:           dto.NewAccountResponses(accounts, totalIncome),
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, raw, s.ttl)
	return raw, nil
}
