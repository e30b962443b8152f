package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/dto"
	"github.com/fintrackhq/backend/internal/errs"
	"github.com/fintrackhq/backend/internal/models"
	"github.com/fintrackhq/backend/internal/realtime"
	"github.com/fintrackhq/backend/pkg/helpers"
)

type stubCStore struct {
	cats      map[string]*models.Category
	updateErr error
}

func newStubCStore() *stubCStore {
	return &stubCStore{cats: make(map[string]*models.Category)}
}

func (s *stubCStore) List(_ context.Context, _ string) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(s.cats))
	for _, c := range s.cats {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubCStore) Get(_ context.Context, _, id string) (*models.Category, error) {
	c, ok := s.cats[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (s *stubCStore) Create(_ context.Context, c *models.Category) error {
	s.cats[c.ID] = c
	return nil
}

func (s *stubCStore) Update(_ context.Context, c *models.Category) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	cur, ok := s.cats[c.ID]
	if !ok {
		return sql.ErrNoRows
	}
	cur.Name, cur.Icon, cur.Color = c.Name, c.Icon, c.Color
	return nil
}

func (s *stubCStore) Delete(_ context.Context, _, id string) error {
	if _, ok := s.cats[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.cats, id)
	return nil
}

func TestCreateCategoryRejectsUnknownType(t *testing.T) {
	svc := NewCategoryService(newStubCStore(), newSpyCache(), &spyNotifier{})

	_, err := svc.Create(helpers.TestCtx(), "uid-1", dto.CreateCategoryRequest{
		Name: "Food", Type: "savings",
	})
	verr, ok := err.(*errs.ValidationError)
	if !ok {
		t.Fatalf("error = %T, want *errs.ValidationError", err)
	}
	if len(verr.Fields) == 0 || verr.Fields[0].Field != "type" {
		t.Fatalf("fields = %+v, want a type violation", verr.Fields)
	}
}

func TestUpdateCategoryKeepsType(t *testing.T) {
	cats := newStubCStore()
	cats.cats["c1"] = &models.Category{
		ID: "c1", UserID: "uid-1", Name: "Food", Type: models.CategoryTypeExpense,
	}
	svc := NewCategoryService(cats, newSpyCache(), &spyNotifier{})

	updated, err := svc.Update(helpers.TestCtx(), "uid-1", "c1", dto.UpdateCategoryRequest{
		Name: "Groceries",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Groceries" {
		t.Fatalf("name = %q, want Groceries", updated.Name)
	}
	if updated.Type != models.CategoryTypeExpense {
		t.Fatalf("type = %q, rename must not change the type", updated.Type)
	}
}

func TestCategoryMutationInvalidatesBothNamespaces(t *testing.T) {
	cats := newStubCStore()
	cats.cats["c1"] = &models.Category{ID: "c1", UserID: "uid-1", Name: "Food", Type: models.CategoryTypeExpense}
	c := newSpyCache()
	c.data[cache.TransactionsKey("uid-1")] = []byte(`[]`)
	c.data[cache.DashboardKey("uid-1")] = []byte(`{}`)
	n := &spyNotifier{}
	svc := NewCategoryService(cats, c, n)

	if err := svc.Delete(helpers.TestCtx(), "uid-1", "c1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	// category names are denormalized into cached transaction lists
	if _, ok := c.data[cache.TransactionsKey("uid-1")]; ok {
		t.Fatal("stale transaction list survived the category delete")
	}
	if _, ok := c.data[cache.DashboardKey("uid-1")]; ok {
		t.Fatal("stale dashboard survived the category delete")
	}
	if len(n.events) != 1 || n.events[0].event.Type != realtime.EventCategoryChanged {
		t.Fatalf("events = %v, want one category:changed", n.eventTypes())
	}
}

func TestDeleteCategoryNotOwned(t *testing.T) {
	svc := NewCategoryService(newStubCStore(), newSpyCache(), &spyNotifier{})

	err := svc.Delete(helpers.TestCtx(), "uid-b", "c-of-user-a")
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("error = %T, want *errs.NotFoundError", err)
	}
}
