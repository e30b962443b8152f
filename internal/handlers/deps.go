package handlers

import (
	"log/slog"

	"github.com/fintrackhq/backend/internal/realtime"
	"github.com/fintrackhq/backend/internal/response"
	"github.com/fintrackhq/backend/internal/token"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Tokens          *token.Manager
	Hub             *realtime.Hub

	AuthSvc        AuthService
	TransactionSvc TransactionService
	CategorySvc    CategoryService
	AccountSvc     AccountService
	BudgetSvc      BudgetService
	DashboardSvc   DashboardService
}
