package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/errs"
	"github.com/fintrackhq/backend/internal/models"
	"github.com/fintrackhq/backend/internal/realtime"
	"github.com/fintrackhq/backend/pkg/logger"
)

type transactionTXStore interface {
	List(ctx context.Context, uid string) ([]*models.Transaction, error)
	Get(ctx context.Context, uid, id string) (*models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction) error
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, uid, id string) error
}

type transactionCategoryStore interface {
	Get(ctx context.Context, uid, id string) (*models.Category, error)
}

type transactionService struct {
	txs      transactionTXStore
	cats     transactionCategoryStore
	cache    cache.Client
	notifier realtime.Notifier
	listTTL  time.Duration
}

func NewTransactionService(txs transactionTXStore, cats transactionCategoryStore, c cache.Client, n realtime.Notifier, listTTL time.Duration) *transactionService {
	return &transactionService{
		txs:      txs,
		cats:     cats,
		cache:    c,
		notifier: n,
		listTTL:  listTTL,
	}
}

// List serves the user's transactions, newest first. On a cache hit the
// cached payload is returned verbatim, so repeated reads inside the TTL
// window are byte-identical.
func (s *transactionService) List(ctx context.Context, uid string) (json.RawMessage, error) {
	key := cache.TransactionsKey(uid)
	if raw, ok := s.cache.Get(ctx, key); ok {
		return raw, nil
	}

	txs, err := s.txs.List(ctx, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("list transactions", err)
	}

	raw, err := json.Marshal(dto.NewTransactionResponses(txs))
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, raw, s.listTTL)
	return raw, nil
}

func (s *transactionService) Create(ctx context.Context, uid string, req dto.CreateTransactionRequest) (dto.TransactionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.TransactionResponse{}, err
	}

	t := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      uid,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		CreatedAt:   time.Now().UTC(),
	}

	// The category, when referenced, must exist and belong to the caller.
	// Checked before any write happens.
	if req.CategoryID != nil {
		cat, err := s.resolveCategory(ctx, uid, *req.CategoryID)
		if err != nil {
			return dto.TransactionResponse{}, err
		}
		t.CategoryName = cat.Name
		t.CategoryType = cat.Type
	}

	if err := s.txs.Create(ctx, t); err != nil {
		return dto.TransactionResponse{}, errs.NewDatabaseError("create transaction", err)
	}

	s.invalidate(ctx, uid)
	resp := dto.NewTransactionResponse(t)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventTransactionCreated, resp))

	logger.FromContext(ctx).Info("transaction created", "transaction_id", t.ID)
	return resp, nil
}

func (s *transactionService) Update(ctx context.Context, uid, id string, req dto.UpdateTransactionRequest) (dto.TransactionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.TransactionResponse{}, err
	}

	t := &models.Transaction{
		ID:          id,
		UserID:      uid,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	}

	if req.CategoryID != nil {
		cat, err := s.resolveCategory(ctx, uid, *req.CategoryID)
		if err != nil {
			return dto.TransactionResponse{}, err
		}
		t.CategoryName = cat.Name
		t.CategoryType = cat.Type
	}

	if err := s.txs.Update(ctx, t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dto.TransactionResponse{}, errs.NewNotFoundError("transaction not found")
		}
		return dto.TransactionResponse{}, errs.NewDatabaseError("update transaction", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventTransactionUpdated, map[string]string{"id": id}))

	return dto.NewTransactionResponse(t), nil
}

func (s *transactionService) Delete(ctx context.Context, uid, id string) error {
	if err := s.txs.Delete(ctx, uid, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewNotFoundError("transaction not found")
		}
		return errs.NewDatabaseError("delete transaction", err)
	}

	s.invalidate(ctx, uid)
	s.notifier.Emit(uid, realtime.NewEvent(realtime.EventTransactionDeleted, map[string]string{"id": id}))

	logger.FromContext(ctx).Info("transaction deleted", "transaction_id", id)
	return nil
}

// resolveCategory rejects references to categories that are missing or owned
// by another user. Both cases look the same to the caller.
func (s *transactionService) resolveCategory(ctx context.Context, uid, categoryID string) (*models.Category, error) {
	cat, err := s.cats.Get(ctx, uid, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewValidationError("category not found")
		}
		return nil, errs.NewDatabaseError("get category", err)
	}
	return cat, nil
}

// invalidate drops the list cache and every dashboard key for the user. The
// next read rebuilds from the store.
func (s *transactionService) invalidate(ctx context.Context, uid string) {
	s.cache.Delete(ctx, cache.TransactionsKey(uid))
	s.cache.DeletePrefix(ctx, cache.DashboardKey(uid))
}
