package models

// OverspentBudget joins an over-limit budget with its owner's contact
// details for alerting
type OverspentBudget struct {
	Email        string
	Username     string
	Category     string
	BudgetAmount float64
	SpentAmount  float64
}

// Budget represents a per-category monthly budget
type Budget struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	Category     string  `json:"category"`
	BudgetAmount float64 `json:"budget_amount"`
	SpentAmount  float64 `json:"spent_amount"` // Computed from expense transactions
}
