package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrackhq/backend/internal/models"
)

type budgetStore struct {
	db *sql.DB
}

func NewBudgetStore(db *sql.DB) *budgetStore {
	return &budgetStore{db: db}
}

// List returns the user's budgets, optionally narrowed to one month/year.
// Zero month/year means no filter on that dimension.
func (s *budgetStore) List(ctx context.Context, uid string, month, year int) ([]*models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.limit_amount, b.month, b.year,
		       b.created_at, COALESCE(c.name, '')
		FROM budgets b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = ?`
	args := []any{uid}
	if month != 0 {
		query += " AND b.month = ?"
		args = append(args, month)
	}
	if year != 0 {
		query += " AND b.year = ?"
		args = append(args, year)
	}
	query += " ORDER BY b.year DESC, b.month DESC, c.name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Limit, &b.Month,
			&b.Year, &b.CreatedAt, &b.CategoryName); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, &b)
	}
	return budgets, rows.Err()
}

func (s *budgetStore) Get(ctx context.Context, uid, id string) (*models.Budget, error) {
	var b models.Budget
	err := s.db.QueryRowContext(ctx, `
		SELECT b.id, b.user_id, b.category_id, b.limit_amount, b.month, b.year,
		       b.created_at, COALESCE(c.name, '')
		FROM budgets b
		LEFT JOIN categories c ON c.id = b.category_id
		WHERE b.id = ? AND b.user_id = ?
	`, id, uid).Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Limit, &b.Month,
		&b.Year, &b.CreatedAt, &b.CategoryName)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *budgetStore) Create(ctx context.Context, b *models.Budget) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category_id, limit_amount, month, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.UserID, b.CategoryID, b.Limit, b.Month, b.Year, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

func (s *budgetStore) Update(ctx context.Context, uid, id string, limit float64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET limit_amount = ?
		WHERE id = ? AND user_id = ?
	`, limit, id, uid)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return requireAffected(res)
}

func (s *budgetStore) Delete(ctx context.Context, uid, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM budgets WHERE id = ? AND user_id = ?
	`, id, uid)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return requireAffected(res)
}
