package dto

import (
	"github.com/fintrackhq/backend/internal/models"
)

type CreateAccountRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Type       string  `json:"type" validate:"required,max=50"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Balance    float64 `json:"balance"`
	Currency   string  `json:"currency" validate:"required,len=3"`
	Icon       string  `json:"icon" validate:"omitempty,max=50"`
	Color      string  `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateAccountRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Type       string  `json:"type" validate:"required,max=50"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Balance    float64 `json:"balance"`
	Currency   string  `json:"currency" validate:"required,len=3"`
	Icon       string  `json:"icon" validate:"omitempty,max=50"`
	Color      string  `json:"color" validate:"omitempty,hexcolor"`
}

// AccountResponse annotates an account with its derived planned balance.
type AccountResponse struct {
	models.Account
	PlannedBalance float64 `json:"planned_balance"`
}

func NewAccountResponse(a *models.Account, totalIncome float64) AccountResponse {
	return AccountResponse{
		Account:        *a,
		PlannedBalance: a.PlannedBalance(totalIncome),
	}
}

func NewAccountResponses(accounts []*models.Account, totalIncome float64) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = NewAccountResponse(a, totalIncome)
	}
	return out
}
