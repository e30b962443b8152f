package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrackhq/backend/internal/models"
)

type categoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *categoryStore {
	return &categoryStore{db: db}
}

func (s *categoryStore) List(ctx context.Context, uid string) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, COALESCE(icon, ''), COALESCE(color, ''), created_at
		FROM categories
		WHERE user_id = ?
		ORDER BY name
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Get is scoped by both id and owning user; a category belonging to another
// user is indistinguishable from a missing one.
func (s *categoryStore) Get(ctx context.Context, uid, id string) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, COALESCE(icon, ''), COALESCE(color, ''), created_at
		FROM categories
		WHERE id = ? AND user_id = ?
	`, id, uid).Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *categoryStore) Create(ctx context.Context, c *models.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, type, icon, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.Name, c.Type, c.Icon, c.Color, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update never touches the type column; type is fixed at creation.
func (s *categoryStore) Update(ctx context.Context, c *models.Category) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, icon = ?, color = ?
		WHERE id = ? AND user_id = ?
	`, c.Name, c.Icon, c.Color, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireAffected(res)
}

// Delete removes the category and unlinks its transactions, which become
// uncategorized. Two statements, no wrapping transaction; per-statement
// atomicity only.
func (s *categoryStore) Delete(ctx context.Context, uid, id string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET category_id = NULL
		WHERE category_id = ? AND user_id = ?
	`, id, uid)
	if err != nil {
		return fmt.Errorf("failed to unlink transactions: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM categories WHERE id = ? AND user_id = ?
	`, id, uid)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireAffected(res)
}

// requireAffected converts a zero-row write into sql.ErrNoRows so the
// service layer can map it to not-found.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
