package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/errs"
	"github.com/fintrackhq/backend/internal/models"
	"github.com/fintrackhq/backend/internal/realtime"
)

type accountAStore interface {
	List(ctx context.Context, uid string) ([]*models.Account, error)
	Get(ctx context.Context, uid, id string) (*models.Account, error)
	Create(ctx context.Context, a *models.Account) error
	Update(ctx context.Context, a *models.Account) error
	Delete(ctx context.Context, uid, id string) error
}

type accountTotalsStore interface {
	Totals(ctx context.Context, uid string) (income, expense float64, err error)
}

type accountService struct {
	accounts accountAStore
	totals   accountTotalsStore
	cache    cache.Client
	notifier realtime.Notifier
}

func NewAccountService(accounts accountAStore, totals accountTotalsStore, c cache.Client, n realtime.Notifier) *accountService {
	return &accountService{accounts: accounts, totals: totals, cache: c, notifier: n}
}

// List annotates every account with its planned balance, derived from
// lifetime income on each read. The percentages across a user's accounts are
// not required to sum to 100.
func (s *accountService) List(ctx context.Context, uid string) ([]dto.AccountResponse, error) {
	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("list accounts", err)
	}

	totalIncome, _, err := s.totals.Totals(ctx, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("totals", err)
	}

	return dto.NewAccountResponses(accounts, totalIncome), nil
}

func (s *accountService) Create(ctx context.Context, uid string, req dto.CreateAccountRequest) (*models.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	a := &models.Account{
		ID:         uuid.NewString(),
		UserID:     uid,
		Name:       req.Name,
		Type:       req.Type,
		Percentage: req.Percentage,
		Balance:    req.Balance,
		Currency:   req.Currency,
		Icon:       req.Icon,
		Color:      req.Color,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, errs.NewDatabaseError("create account", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventAccountChanged, map[string]string{"id": a.ID}))
	return a, nil
}

func (s *accountService) Update(ctx context.Context, uid, id string, req dto.UpdateAccountRequest) (*models.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	a := &models.Account{
		ID:         id,
		UserID:     uid,
		Name:       req.Name,
		Type:       req.Type,
		Percentage: req.Percentage,
		Balance:    req.Balance,
		Currency:   req.Currency,
		Icon:       req.Icon,
		Color:      req.Color,
	}
	if err := s.accounts.Update(ctx, a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError("account not found")
		}
		return nil, errs.NewDatabaseError("update account", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventAccountChanged, map[string]string{"id": id}))
	return a, nil
}

func (s *accountService) Delete(ctx context.Context, uid, id string) error {
	if err := s.accounts.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewNotFoundError("account not found")
		}
		return errs.NewDatabaseError("delete account", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventAccountChanged, map[string]string{"id": id}))
	return nil
}

func (s *accountService) invalidate(ctx context.Context, uid string) {
	s.cache.DeletePrefix(ctx, cache.DashboardKey(uid))
}
