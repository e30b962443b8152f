package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/fintrackhq/backend/internal/handlers"
	"github.com/fintrackhq/backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps, auth *middleware.Middleware, reqLogger func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(reqLogger)
	r.Use(httprate.LimitByIP(100, time.Minute))

	ash := handlers.NewAuthHandlers(deps)
	tsh := handlers.NewTransactionHandlers(deps)
	csh := handlers.NewCategoryHandlers(deps)
	ach := handlers.NewAccountHandlers(deps)
	bsh := handlers.NewBudgetHandlers(deps)
	dsh := handlers.NewDashboardHandlers(deps)
	hsh := handlers.NewHealthHandlers(deps)
	wsh := handlers.NewWSHandlers(deps)

	r.Get("/health", hsh.Health)
	r.Mount("/auth", ash.AuthRoutes(auth.BearerAuth))

	// The websocket handshake carries its token in the query string and does
	// its own verification before joining a room.
	r.Get("/ws", wsh.Serve)

	r.Group(func(r chi.Router) {
		r.Use(auth.BearerAuth)
		r.Mount("/transactions", tsh.TransactionRoutes())
		r.Mount("/categories", csh.CategoryRoutes())
		r.Mount("/accounts", ach.AccountRoutes())
		r.Mount("/budgets", bsh.BudgetRoutes())
		r.Mount("/dashboard", dsh.DashboardRoutes())
	})

	return r
}
