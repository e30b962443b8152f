package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrackhq/backend/internal/models"
)

type transactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *transactionStore {
	return &transactionStore{db: db}
}

const transactionColumns = `
	t.id, t.user_id, t.category_id, t.amount, t.description,
	t.transaction_date, t.created_at,
	COALESCE(c.name, ''), COALESCE(c.type, '')`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Description,
		&t.Date, &t.CreatedAt,
		&t.CategoryName, &t.CategoryType,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *transactionStore) List(ctx context.Context, uid string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
		ORDER BY t.transaction_date DESC, t.created_at DESC
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
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

func (s *transactionStore) Get(ctx context.Context, uid, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = ? AND t.user_id = ?
	`, id, uid)
	return scanTransaction(row)
}

func (s *transactionStore) Create(ctx context.Context, t *models.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, category_id, amount, description, transaction_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.CategoryID, t.Amount, t.Description, t.Date, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (s *transactionStore) Update(ctx context.Context, t *models.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET category_id = ?, amount = ?, description = ?, transaction_date = ?
		WHERE id = ? AND user_id = ?
	`, t.CategoryID, t.Amount, t.Description, t.Date, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireAffected(res)
}

func (s *transactionStore) Delete(ctx context.Context, uid, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM transactions WHERE id = ? AND user_id = ?
	`, id, uid)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireAffected(res)
}
