package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrackhq/backend/internal/models"
)

type accountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *accountStore {
	return &accountStore{db: db}
}

func (s *accountStore) List(ctx context.Context, uid string) ([]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, percentage, balance, currency,
		       COALESCE(icon, ''), COALESCE(color, ''), created_at
		FROM accounts
		WHERE user_id = ?
		ORDER BY created_at
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Percentage,
			&a.Balance, &a.Currency, &a.Icon, &a.Color, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}

func (s *accountStore) Get(ctx context.Context, uid, id string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, percentage, balance, currency,
		       COALESCE(icon, ''), COALESCE(color, ''), created_at
		FROM accounts
		WHERE id = ? AND user_id = ?
	`, id, uid).Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Percentage,
		&a.Balance, &a.Currency, &a.Icon, &a.Color, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *accountStore) Create(ctx context.Context, a *models.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, type, percentage, balance, currency, icon, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.Name, a.Type, a.Percentage, a.Balance, a.Currency, a.Icon, a.Color, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *accountStore) Update(ctx context.Context, a *models.Account) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, type = ?, percentage = ?, balance = ?, currency = ?, icon = ?, color = ?
		WHERE id = ? AND user_id = ?
	`, a.Name, a.Type, a.Percentage, a.Balance, a.Currency, a.Icon, a.Color, a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireAffected(res)
}

func (s *accountStore) Delete(ctx context.Context, uid, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM accounts WHERE id = ? AND user_id = ?
	`, id, uid)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireAffected(res)
}
