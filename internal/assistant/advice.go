package assistant

import (
	"fmt"

	"github.com/finpilot/finai-service/internal/utils"
)

// Band is a qualitative rating of a predicted savings percentage
type Band int

const (
	BandDeficit Band = iota
	BandTight
	BandGood
	BandExcellent
)

func (b Band) String() string {
	switch b {
	case BandExcellent:
		return "excellent"
	case BandGood:
		return "good"
	case BandTight:
		return "tight"
	default:
		return "deficit"
	}
}

// AdviceBand maps a predicted savings percentage onto its band. The
// partition is total and non-overlapping: boundaries belong to the
// lower band (15.0 is "tight", 15.01 is "good").
func AdviceBand(p float64) Band {
	switch {
	case p > 30:
		return BandExcellent
	case p > 15:
		return BandGood
	case p > 0:
		return BandTight
	default:
		return BandDeficit
	}
}

// RenderAdvice renders the recommendation text for a predicted savings
// percentage against the given income. Every band embeds the rate to
// one decimal place and the rupee target computed as p/100 * income.
func RenderAdvice(p, income float64) string {
	target := p / 100 * income

	switch AdviceBand(p) {
	case BandExcellent:
		return fmt.Sprintf("Excellent saving habits! Your personalized plan targets a %.1f%% savings rate (%s). Recommendation: Consider investing this surplus in diversified funds or an index fund for long-term growth.",
			p, utils.FormatINR(target))
	case BandGood:
		return fmt.Sprintf("Good job. You have a healthy buffer. Your plan targets a %.1f%% savings rate (%s). Recommendation: Try to minimize Miscellaneous spending and automate this savings amount into a recurring deposit.",
			p, utils.FormatINR(target))
	case BandTight:
		return fmt.Sprintf("Tight budget. Your plan targets a %.1f%% savings rate (%s). Recommendation: Focus on reducing Entertainment and Eating Out to build an emergency fund of at least 3 months of expenses.",
			p, utils.FormatINR(target))
	default:
		return fmt.Sprintf("Warning: Expenses currently exceed income. Your projected savings rate is %.1f%% (%s). Your current 'plan' targets debt reduction first. Recommendation: Immediate cuts in non-essential categories like Eating Out are required to reach a positive cash flow.",
			p, utils.FormatINR(target))
	}
}
