package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/finpilot/finai-service/internal/utils"
)

// Fixed replies for requests the router cannot serve from context
const (
	noIncomeReply = "I need your income details to build a salary plan. Please record your income transactions first and ask me again."

	noExpenseReply = "I don't have any expense data for you yet. Add a few expense transactions and I'll break down your spending."
)

// Gateway forwards a prompt to a hosted generation API. Implementations
// must fail fast; the router treats every error as "remote unavailable"
// and degrades to a local reply.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Router dispatches a free-text message to the salary planner, the
// local expense breakdown, or the remote gateway with a canned local
// fallback. One shot per call; the router keeps no session state.
type Router struct {
	predictor SalaryPredictor
	gateway   Gateway // nil when no remote API is configured
	log       *logrus.Logger
}

// NewRouter creates an assistant router. gateway may be nil.
func NewRouter(predictor SalaryPredictor, gateway Gateway, log *logrus.Logger) *Router {
	return &Router{
		predictor: predictor,
		gateway:   gateway,
		log:       log,
	}
}

// Respond produces the assistant reply for a message and the caller's
// financial context. Every failure mode degrades to a user-readable
// string; Respond never returns an error.
func (r *Router) Respond(ctx context.Context, message string, fc FinancialContext) string {
	intent := ClassifyIntent(message)
	r.log.WithFields(logrus.Fields{"intent": intent.String()}).Debug("Routing assistant message")

	switch intent {
	case IntentSalaryPlan:
		return r.salaryPlan(fc)
	case IntentExpenseAnalysis:
		return r.expenseBreakdown(fc)
	default:
		return r.general(ctx, message, fc)
	}
}

func (r *Router) salaryPlan(fc FinancialContext) string {
	if fc.Income <= 0 {
		return noIncomeReply
	}

	pred := r.predictor.Predict(fc.Income, fc.Expenses)
	if pred.Status == StatusOffline {
		return pred.Advice
	}

	var b strings.Builder
	b.WriteString("Your Salary Plan\n")
	fmt.Fprintf(&b, "Monthly income: %s\n", utils.FormatINR(fc.Income))
	fmt.Fprintf(&b, "Predicted savings rate: %.1f%%\n", pred.SavingsPercentage)
	fmt.Fprintf(&b, "Target savings: %s\n\n", utils.FormatINR(pred.TargetSavings))
	b.WriteString(pred.Advice)
	return b.String()
}

func (r *Router) expenseBreakdown(fc FinancialContext) string {
	if len(fc.Expenses) == 0 {
		return noExpenseReply
	}
	return FormatBreakdown(fc.Expenses)
}

// FormatBreakdown renders per-category spending with each category's
// share of the total, largest first. A zero total reports every share
// as 0.0% rather than failing.
func FormatBreakdown(expenses map[string]float64) string {
	categories := make([]string, 0, len(expenses))
	total := 0.0
	for category, amount := range expenses {
		categories = append(categories, category)
		total += amount
	}
	sort.Slice(categories, func(i, j int) bool {
		if expenses[categories[i]] != expenses[categories[j]] {
			return expenses[categories[i]] > expenses[categories[j]]
		}
		return categories[i] < categories[j]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Total spending: %s\n", utils.FormatINR(total))
	for _, category := range categories {
		amount := expenses[category]
		share := 0.0
		if total != 0 {
			share = amount / total * 100
		}
		fmt.Fprintf(&b, "%s: %s (%.1f%%)\n", category, utils.FormatINR(amount), share)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Router) general(ctx context.Context, message string, fc FinancialContext) string {
	if r.gateway != nil {
		reply, err := r.gateway.Generate(ctx, chatPrompt(message, fc))
		if err == nil {
			return reply
		}
		r.log.Warnf("Remote assistant unavailable, using local fallback: %v", err)
	}
	return cannedReply(message)
}

// chatPrompt frames a general message for the hosted assistant,
// mirroring the chat template of the hosted service.
func chatPrompt(message string, fc FinancialContext) string {
	var b strings.Builder
	b.WriteString("You are a helpful financial AI assistant. Provide accurate, helpful financial advice while being clear that you're an AI and users should consult professionals for major decisions.\n\n")

	if fc.Income > 0 || len(fc.Expenses) > 0 {
		fmt.Fprintf(&b, "Context: monthly income %s.", utils.FormatINR(fc.Income))
		if len(fc.Expenses) > 0 {
			categories := make([]string, 0, len(fc.Expenses))
			for category := range fc.Expenses {
				categories = append(categories, category)
			}
			sort.Strings(categories)
			b.WriteString(" Expenses by category:")
			for _, category := range categories {
				fmt.Fprintf(&b, " %s %s;", category, utils.FormatINR(fc.Expenses[category]))
			}
		}
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "User: %s", message)
	return b.String()
}
