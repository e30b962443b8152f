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

type categoryCStore interface {
	List(ctx context.Context, uid string) ([]*models.Category, error)
	Get(ctx context.Context, uid, id string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, uid, id string) error
}

type categoryService struct {
	cats     categoryCStore
	cache    cache.Client
	notifier realtime.Notifier
}

func NewCategoryService(cats categoryCStore, c cache.Client, n realtime.Notifier) *categoryService {
	return &categoryService{cats: cats, cache: c, notifier: n}
}

func (s *categoryService) List(ctx context.Context, uid string) ([]*models.Category, error) {
	cats, err := s.cats.List(ctx, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("list categories", err)
	}
	return cats, nil
}

func (s *categoryService) Create(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	c := &models.Category{
		ID:        uuid.NewString(),
		UserID:    uid,
		Name:      req.Name,
		Type:      req.Type,
		Icon:      req.Icon,
		Color:     req.Color,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cats.Create(ctx, c); err != nil {
		return nil, errs.NewDatabaseError("create category", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventCategoryChanged, map[string]string{"id": c.ID}))
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, uid, id string, req dto.UpdateCategoryRequest) (*models.Category, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	c := &models.Category{
		ID:     id,
		UserID: uid,
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
	}
	if err := s.cats.Update(ctx, c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError("category not found")
		}
		return nil, errs.NewDatabaseError("update category", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventCategoryChanged, map[string]string{"id": id}))

	// re-read to return the immutable type alongside the updated fields
	updated, err := s.cats.Get(ctx, uid, id)
	if err != nil {
		return nil, errs.NewDatabaseError("get category", err)
	}
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, uid, id string) error {
	if err := s.cats.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewNotFoundError("category not found")
		}
		return errs.NewDatabaseError("delete category", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventCategoryChanged, map[string]string{"id": id}))
	return nil
}

// Category names and types are denormalized into cached transaction lists
// and dashboard aggregates, so both namespaces go.
func (s *categoryService) invalidate(ctx context.Context, uid string) {
	s.cache.Delete(ctx, cache.TransactionsKey(uid))
	s.cache.DeletePrefix(ctx, cache.DashboardKey(uid))
}
