package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/models"
)

// dashboardStore runs the aggregate queries behind the dashboard snapshot.
// Each method is one independent query; there is no shared transaction or
// snapshot isolation across them.
type dashboardStore struct {
	db *sql.DB
}

func NewDashboardStore(db *sql.DB) *dashboardStore {
	return &dashboardStore{db: db}
}

// Totals returns lifetime income and expense sums. Uncategorized
// transactions carry no type and count in neither bucket.
func (s *dashboardStore) Totals(ctx context.Context, uid string) (income, expense float64, err error) {
	return s.totals(ctx, uid, "", "")
}

// RangeTotals returns income and expense sums for transaction dates in
// [from, to] inclusive.
func (s *dashboardStore) RangeTotals(ctx context.Context, uid, from, to string) (income, expense float64, err error) {
	return s.totals(ctx, uid, from, to)
}

func (s *dashboardStore) totals(ctx context.Context, uid, from, to string) (income, expense float64, err error) {
	query := `
		SELECT c.type, COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?`
	args := []any{uid}
	if from != "" {
		query += " AND t.transaction_date >= ? AND t.transaction_date <= ?"
		args = append(args, from, to)
	}
	query += " GROUP BY c.type"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ctype string
		var total float64
		if err := rows.Scan(&ctype, &total); err != nil {
			return 0, 0, fmt.Errorf("failed to scan totals: %w", err)
		}
		switch ctype {
		case models.CategoryTypeIncome:
			income = total
		case models.CategoryTypeExpense:
			expense = total
		}
	}
	return income, expense, rows.Err()
}

// TopExpenseCategories returns the biggest expense categories within the
// date range, ordered by total descending.
func (s *dashboardStore) TopExpenseCategories(ctx context.Context, uid, from, to string, limit int) ([]dto.CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, COALESCE(c.icon, ''), COALESCE(c.color, ''),
		       SUM(t.amount), COUNT(t.id)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND c.type = 'expense'
		  AND t.transaction_date >= ? AND t.transaction_date <= ?
		GROUP BY c.id, c.name, c.icon, c.color
		ORDER BY SUM(t.amount) DESC
		LIMIT ?
	`, uid, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}
	defer rows.Close()

	var totals []dto.CategoryTotal
	for rows.Next() {
		var ct dto.CategoryTotal
		if err := rows.Scan(&ct.CategoryID, &ct.Name, &ct.Icon, &ct.Color, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

// Recent returns the newest transactions by transaction date, then creation
// time.
func (s *dashboardStore) Recent(ctx context.Context, uid string, limit int) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT ?
	`, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// MonthlyTrend returns per-month income/expense sums for transaction dates
// on or after fromMonth ("YYYY-MM"), oldest month first.
func (s *dashboardStore) MonthlyTrend(ctx context.Context, uid, fromMonth string) ([]dto.TrendPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m', t.transaction_date) AS month, c.type, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ? AND strftime('%Y-%m', t.transaction_date) >= ?
		GROUP BY month, c.type
		ORDER BY month
	`, uid, fromMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to query trend: %w", err)
	}
	defer rows.Close()

	var points []dto.TrendPoint
	byMonth := map[string]int{}
	for rows.Next() {
		var month, ctype string
		var total float64
		if err := rows.Scan(&month, &ctype, &total); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		idx, ok := byMonth[month]
		if !ok {
			points = append(points, dto.TrendPoint{Month: month})
			idx = len(points) - 1
			byMonth[month] = idx
		}
		switch ctype {
		case models.CategoryTypeIncome:
			points[idx].Income = total
		case models.CategoryTypeExpense:
			points[idx].Expense = total
		}
	}
	return points, rows.Err()
}
