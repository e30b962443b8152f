package dto

import (
	"github.com/fintrackhq/backend/internal/models"
)

type CreateTransactionRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=255"`
	Date        string  `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid4"`
}

type UpdateTransactionRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=255"`
	Date        string  `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid4"`
}

// TransactionResponse is a transaction as the API returns it, including the
// derived display type.
type TransactionResponse struct {
	ID           string  `json:"id"`
	CategoryID   *string `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	Date         string  `json:"transaction_date"`
	Type         string  `json:"transaction_type"`
	CreatedAt    string  `json:"created_at"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
		Amount:       t.Amount,
		Description:  t.Description,
		Date:         t.Date,
		Type:         t.DisplayType(),
		CreatedAt:    t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func NewTransactionResponses(txs []*models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		out[i] = NewTransactionResponse(t)
	}
	return out
}
