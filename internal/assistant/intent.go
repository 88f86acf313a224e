package assistant

import "strings"

// Intent is the classified purpose of a free-text user message
type Intent int

const (
	IntentGeneral Intent = iota
	IntentSalaryPlan
	IntentExpenseAnalysis
)

func (i Intent) String() string {
	switch i {
	case IntentSalaryPlan:
		return "SALARY_PLAN"
	case IntentExpenseAnalysis:
		return "EXPENSE_ANALYSIS"
	default:
		return "GENERAL"
	}
}

type intentRule struct {
	keywords []string
	intent   Intent
}

// Rules are evaluated in order; the first keyword hit wins.
var intentRules = []intentRule{
	{
		keywords: []string{"salary", "plan", "recommendation", "advice", "budget plan"},
		intent:   IntentSalaryPlan,
	},
	{
		keywords: []string{"spend", "expense", "cost", "breakdown", "analysis"},
		intent:   IntentExpenseAnalysis,
	},
}

// ClassifyIntent classifies a message by case-insensitive keyword
// containment. No tokenization or stemming; plain substring match.
func ClassifyIntent(message string) Intent {
	msg := strings.ToLower(message)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}
