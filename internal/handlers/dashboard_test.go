package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintrackhq/backend/internal/errs"
)

type stubDashboardService struct {
	raw     json.RawMessage
	err     error
	uidSeen string
}

func (s *stubDashboardService) Get(_ context.Context, uid string) (json.RawMessage, error) {
	s.uidSeen = uid
	return s.raw, s.err
}

func TestGetDashboard(t *testing.T) {
	svc := &stubDashboardService{raw: json.RawMessage(`{"balance":600}`)}
	rh := &stubResponseHandler{}
	h := &dashboardHandlers{ResponseHandler: rh, DashboardSvc: svc}

	r := newRequest(http.MethodGet, "/dashboard", "uid-1", nil, nil)
	h.GetDashboard(httptest.NewRecorder(), r)

	if rh.err != nil {
		t.Fatalf("unexpected error: %v", rh.err)
	}
	if rh.status != http.StatusOK {
		t.Fatalf("status = %d, want %d", rh.status, http.StatusOK)
	}
	if svc.uidSeen != "uid-1" {
		t.Fatalf("service called with uid %q, want uid-1", svc.uidSeen)
	}
	raw, ok := rh.data.(json.RawMessage)
	if !ok || string(raw) != `{"balance":600}` {
		t.Fatalf("data = %v, want the raw snapshot", rh.data)
	}
}

func TestGetDashboardServiceError(t *testing.T) {
	svc := &stubDashboardService{err: errs.NewDatabaseError("totals", errors.New("db gone"))}
	rh := &stubResponseHandler{}
	h := &dashboardHandlers{ResponseHandler: rh, DashboardSvc: svc}

	r := newRequest(http.MethodGet, "/dashboard", "uid-1", nil, nil)
	h.GetDashboard(httptest.NewRecorder(), r)

	if _, ok := rh.err.(*errs.DatabaseError); !ok {
		t.Fatalf("error = %T, want *errs.DatabaseError", rh.err)
	}
	if rh.status != 0 {
		t.Fatalf("success status written on error path: %d", rh.status)
	}
}
