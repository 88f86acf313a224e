package models

// Transaction types
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction represents a financial transaction
type Transaction struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"user_id"`
	Type            string  `json:"transaction_type"`
	Amount          float64 `json:"amount"`
	Category        string  `json:"category"`
	Description     string  `json:"description,omitempty"`
	TransactionDate string  `json:"transaction_date"` // Format: YYYY-MM-DD
	CreatedAt       string  `json:"created_at"`
}
