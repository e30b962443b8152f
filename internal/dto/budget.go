package dto

type CreateBudgetRequest struct {
	CategoryID string  `json:"category_id" validate:"required,uuid4"`
	Limit      float64 `json:"limit" validate:"required,gt=0"`
	Month      int     `json:"month" validate:"required,gte=1,lte=12"`
	Year       int     `json:"year" validate:"required,gte=2000,lte=2100"`
}

type UpdateBudgetRequest struct {
	Limit float64 `json:"limit" validate:"required,gt=0"`
}

type BudgetListQuery struct {
	Month int `validate:"omitempty,gte=1,lte=12"`
	Year  int `validate:"omitempty,gte=2000,lte=2100"`
}
