package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/fintrackhq/backend/internal/middleware"
)

// stubResponseHandler records what the handler wrote instead of rendering it.
type stubResponseHandler struct {
	status int
	data   any
	err    error
	code   string
}

func (s *stubResponseHandler) WriteSuccess(_ http.ResponseWriter, _ *http.Request, status int, data any) {
	s.status = status
	s.data = data
}

func (s *stubResponseHandler) WriteError(_ http.ResponseWriter, _ *http.Request, status int, code, _ string) {
	s.status = status
	s.code = code
}

func (s *stubResponseHandler) HandleError(_ http.ResponseWriter, _ *http.Request, err error) {
	s.err = err
}

// newRequest builds an authenticated request carrying uid and optional chi
// URL params, the way the router would deliver it.
func newRequest(method, target, uid string, body io.Reader, params map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}
