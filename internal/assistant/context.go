package assistant

import (
	"github.com/shopspring/decimal"

	"github.com/finpilot/finai-service/internal/models"
)

// FinancialContext is a per-request summary of a user's transactions
type FinancialContext struct {
	Income   float64
	Expenses map[string]float64
}

// BuildContext aggregates raw transactions into an income total and
// per-category expense totals. Sums are carried in decimals and only
// converted to float64 at the boundary, so category totals do not
// drift across many small amounts.
func BuildContext(transactions []models.Transaction) FinancialContext {
	income := decimal.Zero
	expenses := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		amount := decimal.NewFromFloat(tx.Amount).Abs()
		switch tx.Type {
		case models.TransactionIncome:
			income = income.Add(amount)
		case models.TransactionExpense:
			expenses[tx.Category] = expenses[tx.Category].Add(amount)
		}
	}

	fc := FinancialContext{
		Income:   income.InexactFloat64(),
		Expenses: make(map[string]float64, len(expenses)),
	}
	for category, total := range expenses {
		fc.Expenses[category] = total.InexactFloat64()
	}
	return fc
}
