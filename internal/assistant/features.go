package assistant

// Feature names with special handling in the vector builder
const (
	featureIncome        = "Income"
	featureMiscellaneous = "Miscellaneous"
)

// TrainingFeatures is the feature vocabulary the bundled model was
// trained on, in training column order.
var TrainingFeatures = []string{
	featureIncome, "Rent", "Loan_Repayment", "Insurance", "Groceries",
	"Transport", "Eating_Out", "Entertainment", "Utilities",
	"Healthcare", "Education", featureMiscellaneous,
}

// BuildFeatureVector produces one value per name in featureOrder.
// The Income slot is set to income, expense categories matching a
// feature name exactly are set to their amount, and every other
// category accumulates into the Miscellaneous slot. When featureOrder
// carries no Miscellaneous slot, unrecognized amounts are dropped;
// artifacts trained without that column cannot accept them anywhere.
func BuildFeatureVector(income float64, expenses map[string]float64, featureOrder []string) []float64 {
	vec := make([]float64, len(featureOrder))
	index := make(map[string]int, len(featureOrder))
	for i, name := range featureOrder {
		index[name] = i
	}

	if i, ok := index[featureIncome]; ok {
		vec[i] = income
	}

	for category, amount := range expenses {
		if i, ok := index[category]; ok {
			vec[i] = amount
		} else if i, ok := index[featureMiscellaneous]; ok {
			vec[i] += amount
		}
	}

	return vec
}
