package models

import (
	"time"
)

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"transaction_date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`

	// Populated from the category join on reads; empty when uncategorized.
	CategoryName string `json:"category_name,omitempty"`
	CategoryType string `json:"-"`
}

// DisplayType reports how the transaction is classified for display and
// aggregation. Categorized transactions take the category's type.
// Uncategorized rows fall back to the numeric sign of the amount even though
// validation rejects non-positive amounts; this mirrors the historical
// behavior of the API and is kept as is.
func (t *Transaction) DisplayType() string {
	if t.CategoryType != "" {
		return t.CategoryType
	}
	if t.Amount < 0 {
		return CategoryTypeExpense
	}
	return CategoryTypeIncome
}
