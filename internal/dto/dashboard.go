package dto

// DashboardResponse is the single aggregated snapshot the dashboard renders
// from. Sub-aggregates are computed by independent queries; under concurrent
// mutation the snapshot may be internally inconsistent, which is accepted.
type DashboardResponse struct {
	TotalIncome        float64               `json:"totalIncome"`
	TotalExpense       float64               `json:"totalExpense"`
	Balance            float64               `json:"balance"`
	MonthIncome        float64               `json:"monthIncome"`
	MonthExpense       float64               `json:"monthExpense"`
	TopCategories      []CategoryTotal       `json:"topCategories"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
	Trend              []TrendPoint          `json:"trend"`
	Accounts           []AccountResponse     `json:"accounts"`
}

// CategoryTotal is one slice of the current-month expense breakdown.
type CategoryTotal struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon,omitempty"`
	Color      string  `json:"color,omitempty"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
}

// TrendPoint is one month of the trailing trend, split by category type.
type TrendPoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}
