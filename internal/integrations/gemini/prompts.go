package gemini

import "fmt"

// AnalyzeSpendingPrompt asks for insight into aggregated transactions
func AnalyzeSpendingPrompt(transactionsText string) string {
	return fmt.Sprintf(`As a financial advisor, analyze the following transaction data and provide insights:

%s

Please provide:
1. Spending pattern analysis
2. Top spending categories
3. Budget recommendations
4. Potential savings opportunities

Keep the response concise and actionable.`, transactionsText)
}

// InvestmentAdvicePrompt asks for investment recommendations
func InvestmentAdvicePrompt(portfolioText, riskTolerance string) string {
	return fmt.Sprintf(`As an investment advisor, review this portfolio:

%s

Risk Tolerance: %s

Provide:
1. Portfolio diversification analysis
2. Risk assessment
3. Rebalancing suggestions
4. Investment opportunities`, portfolioText, riskTolerance)
}

// BudgetAssistantPrompt asks for a personalized budget plan
func BudgetAssistantPrompt(income float64, expensesText, goals string) string {
	return fmt.Sprintf(`Create a personalized budget plan:

Monthly Income: %.2f
Current Expenses: %s
Financial Goals: %s

Provide:
1. 50/30/20 budget breakdown
2. Category-wise allocation
3. Saving strategies
4. Timeline to achieve goals`, income, expensesText, goals)
}
