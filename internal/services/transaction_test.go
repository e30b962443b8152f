package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/errs"
	"github.com/fintrackhq/backend/internal/models"
	"github.com/fintrackhq/backend/internal/realtime"
	"github.com/fintrackhq/backend/pkg/helpers"
)

type stubTXStore struct {
	listTxs     []*models.Transaction
	listCalls   int
	created     *models.Transaction
	createErr   error
	updateErr   error
	deleteErr   error
	deletedID   string
	deleteCalls int
}

func (s *stubTXStore) List(_ context.Context, _ string) ([]*models.Transaction, error) {
	s.listCalls++
	return s.listTxs, nil
}

func (s *stubTXStore) Get(_ context.Context, _, _ string) (*models.Transaction, error) {
	return nil, sql.ErrNoRows
}

func (s *stubTXStore) Create(_ context.Context, t *models.Transaction) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = t
	return nil
}

func (s *stubTXStore) Update(_ context.Context, _ *models.Transaction) error {
	return s.updateErr
}

func (s *stubTXStore) Delete(_ context.Context, _, id string) error {
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedID = id
	return nil
}

type stubCategoryStore struct {
	cat      *models.Category
	err      error
	getCalls int
}

func (s *stubCategoryStore) Get(_ context.Context, _, _ string) (*models.Category, error) {
	s.getCalls++
	return s.cat, s.err
}

func newTXService(txs *stubTXStore, cats *stubCategoryStore, c *spyCache, n *spyNotifier) *transactionService {
	return NewTransactionService(txs, cats, c, n, 30*time.Second)
}

func TestCreateTransactionValidatesBeforeWrite(t *testing.T) {
	txs := &stubTXStore{}
	svc := newTXService(txs, &stubCategoryStore{}, newSpyCache(), &spyNotifier{})

	_, err := svc.Create(helpers.TestCtx(), "uid-1", dto.CreateTransactionRequest{
		Amount: -5, Description: "bad", Date: "2024-01-01",
	})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("error = %T, want *errs.ValidationError", err)
	}
	if txs.created != nil {
		t.Fatal("store written despite validation failure")
	}
}

func TestCreateTransactionForeignCategoryRejectedBeforeWrite(t *testing.T) {
	txs := &stubTXStore{}
	cats := &stubCategoryStore{err: sql.ErrNoRows} // owned by someone else, or absent
	svc := newTXService(txs, cats, newSpyCache(), &spyNotifier{})

	catID := helpers.Ptr("7f6a1e6e-5f10-4ab5-9a9e-14c0f3b1a111")
	_, err := svc.Create(helpers.TestCtx(), "uid-1", dto.CreateTransactionRequest{
		Amount: 100, Description: "test", Date: "2024-01-01", CategoryID: catID,
	})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("error = %T, want *errs.ValidationError", err)
	}
	if txs.created != nil {
		t.Fatal("store written despite rejected category reference")
	}
}

func TestCreateTransactionInvalidatesAndEmits(t *testing.T) {
	txs := &stubTXStore{}
	c := newSpyCache()
	n := &spyNotifier{}
	svc := newTXService(txs, &stubCategoryStore{}, c, n)

	resp, err := svc.Create(helpers.TestCtx(), "uid-1", dto.CreateTransactionRequest{
		Amount: 100, Description: "test", Date: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("no id assigned")
	}
	// uncategorized positive amount falls back to the sign convention
	if resp.Type != models.CategoryTypeIncome {
		t.Fatalf("transaction_type = %q, want income", resp.Type)
	}

	if !c.deleted(cache.TransactionsKey("uid-1")) {
		t.Fatal("transaction list cache not invalidated")
	}
	if !c.deleted(cache.DashboardKey("uid-1")) {
		t.Fatal("dashboard cache not invalidated")
	}

	if len(n.events) != 1 || n.events[0].event.Type != realtime.EventTransactionCreated {
		t.Fatalf("events = %v, want one transaction:created", n.eventTypes())
	}
	if n.events[0].uid != "uid-1" {
		t.Fatalf("event emitted to %q, want uid-1", n.events[0].uid)
	}
}

func TestCreateTransactionUsesCategoryType(t *testing.T) {
	cats := &stubCategoryStore{cat: &models.Category{
		ID: "c1", Name: "Salary", Type: models.CategoryTypeIncome,
	}}
	svc := newTXService(&stubTXStore{}, cats, newSpyCache(), &spyNotifier{})

	catID := helpers.Ptr("7f6a1e6e-5f10-4ab5-9a9e-14c0f3b1a111")
	resp, err := svc.Create(helpers.TestCtx(), "uid-1", dto.CreateTransactionRequest{
		Amount: 100, Description: "pay", Date: "2024-01-01", CategoryID: catID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.Type != models.CategoryTypeIncome || resp.CategoryName != "Salary" {
		t.Fatalf("response = %+v, want income/Salary", resp)
	}
}

func TestDeleteTransactionNotOwned(t *testing.T) {
	txs := &stubTXStore{deleteErr: sql.ErrNoRows}
	c := newSpyCache()
	n := &spyNotifier{}
	svc := newTXService(txs, &stubCategoryStore{}, c, n)

	err := svc.Delete(helpers.TestCtx(), "uid-b", "tx-of-user-a")
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("error = %T, want *errs.NotFoundError", err)
	}
	if len(c.deletes)+len(c.prefixDeletes) != 0 {
		t.Fatal("cache invalidated for a failed delete")
	}
	if len(n.events) != 0 {
		t.Fatal("event emitted for a failed delete")
	}
}

func TestDeleteTransactionInvalidatesBothKeys(t *testing.T) {
	c := newSpyCache()
	c.data[cache.TransactionsKey("uid-1")] = []byte(`[]`)
	c.data[cache.DashboardKey("uid-1")] = []byte(`{}`)
	n := &spyNotifier{}
	svc := newTXService(&stubTXStore{}, &stubCategoryStore{}, c, n)

	if err := svc.Delete(helpers.TestCtx(), "uid-1", "t1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, ok := c.data[cache.TransactionsKey("uid-1")]; ok {
		t.Fatal("stale transaction list survived the delete")
	}
	if _, ok := c.data[cache.DashboardKey("uid-1")]; ok {
		t.Fatal("stale dashboard survived the delete")
	}
	if len(n.events) != 1 || n.events[0].event.Type != realtime.EventTransactionDeleted {
		t.Fatalf("events = %v, want one transaction:deleted", n.eventTypes())
	}
}

func TestListServesCacheHitVerbatim(t *testing.T) {
	cached := []byte(`[{"id":"t1"}]`)
	c := newSpyCache()
	c.data[cache.TransactionsKey("uid-1")] = cached
	txs := &stubTXStore{}
	svc := newTXService(txs, &stubCategoryStore{}, c, &spyNotifier{})

	got, err := svc.List(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if string(got) != string(cached) {
		t.Fatalf("cache hit returned %s, want the cached bytes", got)
	}
	if txs.listCalls != 0 {
		t.Fatal("store queried despite cache hit")
	}
}

func TestListFillsCacheOnMiss(t *testing.T) {
	c := newSpyCache()
	txs := &stubTXStore{listTxs: []*models.Transaction{
		{ID: "t1", Amount: 10, Date: "2024-01-01", CreatedAt: time.Now().UTC()},
	}}
	svc := newTXService(txs, &stubCategoryStore{}, c, &spyNotifier{})

	first, err := svc.List(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if txs.listCalls != 1 {
		t.Fatalf("store queried %d times, want 1", txs.listCalls)
	}

	// second read inside the TTL window: same bytes, no extra query
	second, err := svc.List(helpers.TestCtx(), "uid-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if txs.listCalls != 1 {
		t.Fatalf("store queried %d times after cached read, want 1", txs.listCalls)
	}
	if string(first) != string(second) {
		t.Fatal("consecutive reads inside TTL are not byte-identical")
	}

	var decoded []dto.TransactionResponse
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("cached payload is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "t1" {
		t.Fatalf("decoded payload = %+v", decoded)
	}
}
