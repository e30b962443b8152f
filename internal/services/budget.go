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
	"github.com/fintrackhq/backend/internal/store"
)

type budgetBStore interface {
	List(ctx context.Context, uid string, month, year int) ([]*models.Budget, error)
	Get(ctx context.Context, uid, id string) (*models.Budget, error)
	Create(ctx context.Context, b *models.Budget) error
	Update(ctx context.Context, uid, id string, limit float64) error
	Delete(ctx context.Context, uid, id string) error
}

type budgetService struct {
	budgets  budgetBStore
	cats     transactionCategoryStore
	cache    cache.Client
	notifier realtime.Notifier
}

func NewBudgetService(budgets budgetBStore, cats transactionCategoryStore, c cache.Client, n realtime.Notifier) *budgetService {
	return &budgetService{budgets: budgets, cats: cats, cache: c, notifier: n}
}

func (s *budgetService) List(ctx context.Context, uid string, q dto.BudgetListQuery) ([]*models.Budget, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	budgets, err := s.budgets.List(ctx, uid, q.Month, q.Year)
	if err != nil {
		return nil, errs.NewDatabaseError("list budgets", err)
	}
	return budgets, nil
}

func (s *budgetService) Create(ctx context.Context, uid string, req dto.CreateBudgetRequest) (*models.Budget, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	// The budgeted category must exist and belong to the caller.
	cat, err := s.cats.Get(ctx, uid, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewValidationError("category not found")
		}
		return nil, errs.NewDatabaseError("get category", err)
	}

	b := &models.Budget{
		ID:           uuid.NewString(),
		UserID:       uid,
		CategoryID:   req.CategoryID,
		Limit:        req.Limit,
		Month:        req.Month,
		Year:         req.Year,
		CreatedAt:    time.Now().UTC(),
		CategoryName: cat.Name,
	}
	if err := s.budgets.Create(ctx, b); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, errs.NewAlreadyExistsError("budget already exists for this category and month")
		}
		return nil, errs.NewDatabaseError("create budget", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventBudgetChanged, map[string]string{"id": b.ID}))
	return b, nil
}

func (s *budgetService) Update(ctx context.Context, uid, id string, req dto.UpdateBudgetRequest) (*models.Budget, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if err := s.budgets.Update(ctx, uid, id, req.Limit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError("budget not found")
		}
		return nil, errs.NewDatabaseError("update budget", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventBudgetChanged, map[string]string{"id": id}))

	updated, err := s.budgets.Get(ctx, uid, id)
	if err != nil {
		return nil, errs.NewDatabaseError("get budget", err)
	}
	return updated, nil
}

func (s *budgetService) Delete(ctx context.Context, uid, id string) error {
	if err := s.budgets.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewNotFoundError("budget not found")
		}
		return errs.NewDatabaseError("delete budget", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventBudgetChanged, map[string]string{"id": id}))
	return nil
}

func (s *budgetService) invalidate(ctx context.Context, uid string) {
	s.cache.DeletePrefix(ctx, cache.DashboardKey(uid))
}
