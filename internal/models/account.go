package models

import (
	"time"
)

type Account struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Percentage float64   `json:"percentage"` // share of total income, 0-100
	Balance    float64   `json:"balance"`
	Currency   string    `json:"currency"`
	Icon       string    `json:"icon,omitempty"`
	Color      string    `json:"color,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlannedBalance derives the account's target balance from lifetime income.
// Never stored; recomputed on every read.
func (a *Account) PlannedBalance(totalIncome float64) float64 {
	return totalIncome * a.Percentage / 100
}
