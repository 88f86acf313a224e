package assistant

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Predictor statuses
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// OfflineAdvice is returned while no trained model artifact is loaded
const OfflineAdvice = "Model is not yet trained. Please check back later."

// PredictionResult is the outcome of a savings prediction. The numeric
// fields are meaningful only when Status is "online".
type PredictionResult struct {
	Advice            string  `json:"advice"`
	SavingsPercentage float64 `json:"savings_percentage,omitempty"`
	TargetSavings     float64 `json:"target_savings,omitempty"`
	Status            string  `json:"status"`
}

// SalaryPredictor produces a savings prediction for an income and
// expense breakdown.
type SalaryPredictor interface {
	Predict(income float64, expenses map[string]float64) PredictionResult
}

// Predictor wraps a lazily loaded decision-tree artifact. The artifact
// is read at most once per process; a missing or unreadable artifact
// leaves the predictor permanently offline, which is a valid operating
// mode rather than an error.
type Predictor struct {
	modelPath    string
	featuresPath string
	log          *logrus.Logger

	once     sync.Once
	tree     *decisionTree
	features []string
}

// NewPredictor creates a predictor over the given artifact paths
func NewPredictor(modelPath, featuresPath string, log *logrus.Logger) *Predictor {
	return &Predictor{
		modelPath:    modelPath,
		featuresPath: featuresPath,
		log:          log,
	}
}

func (p *Predictor) load() {
	modelData, err := os.ReadFile(p.modelPath)
	if err != nil {
		p.log.Warnf("Model artifact not available at %s, predictions will run offline: %v", p.modelPath, err)
		return
	}
	featureData, err := os.ReadFile(p.featuresPath)
	if err != nil {
		p.log.Warnf("Feature names not available at %s, predictions will run offline: %v", p.featuresPath, err)
		return
	}

	var tree decisionTree
	if err := json.Unmarshal(modelData, &tree); err != nil {
		p.log.Warnf("Failed to parse model artifact %s, predictions will run offline: %v", p.modelPath, err)
		return
	}
	var features []string
	if err := json.Unmarshal(featureData, &features); err != nil {
		p.log.Warnf("Failed to parse feature names %s, predictions will run offline: %v", p.featuresPath, err)
		return
	}
	if err := tree.validate(len(features)); err != nil {
		p.log.Warnf("Model artifact %s is invalid, predictions will run offline: %v", p.modelPath, err)
		return
	}

	p.tree = &tree
	p.features = features
	p.log.Infof("Loaded savings model from %s (%d nodes, %d features)", p.modelPath, len(tree.Nodes), len(features))
}

// Online reports whether a model artifact is loaded. Triggers the
// lazy load on first use.
func (p *Predictor) Online() bool {
	p.once.Do(p.load)
	return p.tree != nil
}

// Predict returns a savings prediction for the given income and
// expenses. While offline it returns a fixed advisory with no
// percentage; it never fails the caller.
func (p *Predictor) Predict(income float64, expenses map[string]float64) PredictionResult {
	p.once.Do(p.load)

	if p.tree == nil {
		return PredictionResult{
			Advice: OfflineAdvice,
			Status: StatusOffline,
		}
	}

	vec := BuildFeatureVector(income, expenses, p.features)
	pct := p.tree.predict(vec)

	return PredictionResult{
		Advice:            RenderAdvice(pct, income),
		SavingsPercentage: pct,
		TargetSavings:     pct / 100 * income,
		Status:            StatusOnline,
	}
}
