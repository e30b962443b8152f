package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/fintrackhq/backend/internal/bootstrap"
	"github.com/fintrackhq/backend/internal/config"
	"github.com/fintrackhq/backend/internal/handlers"
	"github.com/fintrackhq/backend/internal/middleware"
	"github.com/fintrackhq/backend/internal/realtime"
	"github.com/fintrackhq/backend/internal/response"
	"github.com/fintrackhq/backend/internal/router"
	"github.com/fintrackhq/backend/internal/services"
	"github.com/fintrackhq/backend/internal/store"
	"github.com/fintrackhq/backend/internal/token"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	hub := realtime.NewHub(bs.Log)

	// stores
	ustore := store.NewUserStore(bs.DB)
	cstore := store.NewCategoryStore(bs.DB)
	tstore := store.NewTransactionStore(bs.DB)
	astore := store.NewAccountStore(bs.DB)
	bstore := store.NewBudgetStore(bs.DB)
	dstore := store.NewDashboardStore(bs.DB)

	// services
	auserv := services.NewAuthService(ustore, tokens, bs.Cache, cfg.BotTokenTTL)
	tserv := services.NewTransactionService(tstore, cstore, bs.Cache, hub, cfg.ListCacheTTL)
	cserv := services.NewCategoryService(cstore, bs.Cache, hub)
	aserv := services.NewAccountService(astore, dstore, bs.Cache, hub)
	bserv := services.NewBudgetService(bstore, cstore, bs.Cache, hub)
	dserv := services.NewDashboardService(dstore, astore, bs.Cache, cfg.ListCacheTTL)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Tokens = tokens
	deps.Hub = hub
	deps.AuthSvc = auserv
	deps.TransactionSvc = tserv
	deps.CategorySvc = cserv
	deps.AccountSvc = aserv
	deps.BudgetSvc = bserv
	deps.DashboardSvc = dserv

	// router
	auth := middleware.NewMiddleware(tokens)
	logmw := middleware.NewLoggerMiddleware(bs.Log)
	r := router.NewRouter(deps, auth, logmw.LoggerMiddleware)

	bs.Log.Info("listening", "addr", cfg.Addr)
	err = http.ListenAndServe(cfg.Addr, r)
	exitOnError("server start failed", err, bs.Log)
}
