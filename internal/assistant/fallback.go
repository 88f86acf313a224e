package assistant

import "strings"

type fallbackRule struct {
	keywords []string
	reply    string
}

// Local canned replies used whenever the remote gateway is missing or
// fails. Same ordered substring discipline as the intent rules.
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hello! I'm your financial assistant. Ask me for a budget plan or an expense breakdown whenever you're ready.",
	},
	{
		keywords: []string{"save", "saving"},
		reply:    "A good rule of thumb is to save at least 20% of your income. Automating a recurring transfer right after payday makes it much easier to stick to.",
	},
	{
		keywords: []string{"invest"},
		reply:    "Before investing, build an emergency fund covering 3-6 months of expenses. After that, low-cost index funds are a sensible starting point for long-term growth.",
	},
}

const defaultFallbackReply = "I can help you with salary planning, expense analysis and general money questions. Try asking for a budget plan or an expense breakdown."

func cannedReply(message string) string {
	msg := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.reply
			}
		}
	}
	return defaultFallbackReply
}
