package assistant

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeArtifacts(t *testing.T, modelJSON, featuresJSON string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "salary_plan_model.json")
	featuresPath := filepath.Join(dir, "feature_names.json")
	if err := os.WriteFile(modelPath, []byte(modelJSON), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	if err := os.WriteFile(featuresPath, []byte(featuresJSON), 0o644); err != nil {
		t.Fatalf("write features: %v", err)
	}
	return modelPath, featuresPath
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestPredictorOfflineWhenArtifactsMissing(t *testing.T) {
	p := NewPredictor("does/not/exist.json", "also/missing.json", testLogger())

	result := p.Predict(20000, map[string]float64{"Rent": 5000})
	if result.Status != StatusOffline {
		t.Fatalf("status = %q, want offline", result.Status)
	}
	if result.Advice != OfflineAdvice {
		t.Errorf("advice = %q, want the fixed offline advisory", result.Advice)
	}
	if result.SavingsPercentage != 0 || result.TargetSavings != 0 {
		t.Errorf("offline result carries numbers: %+v", result)
	}
}

func TestPredictorOfflineWhenArtifactCorrupt(t *testing.T) {
	modelPath, featuresPath := writeArtifacts(t, "{not json", `["Income"]`)
	p := NewPredictor(modelPath, featuresPath, testLogger())

	if result := p.Predict(1000, nil); result.Status != StatusOffline {
		t.Errorf("status = %q, want offline for corrupt artifact", result.Status)
	}
}

func TestPredictorOnline(t *testing.T) {
	// Root splits on Income at 15000: leaf 5.0 below, leaf 18.0 above.
	model := `{"nodes":[
		{"feature":0,"threshold":15000,"left":1,"right":2},
		{"feature":-1,"threshold":0,"left":-1,"right":-1,"value":5.0},
		{"feature":-1,"threshold":0,"left":-1,"right":-1,"value":18.0}
	]}`
	features := `["Income","Rent","Miscellaneous"]`
	modelPath, featuresPath := writeArtifacts(t, model, features)
	p := NewPredictor(modelPath, featuresPath, testLogger())

	result := p.Predict(20000, map[string]float64{"Rent": 5000})
	if result.Status != StatusOnline {
		t.Fatalf("status = %q, want online", result.Status)
	}
	if result.SavingsPercentage != 18.0 {
		t.Errorf("savings percentage = %v, want 18.0", result.SavingsPercentage)
	}
	if result.TargetSavings != 3600 {
		t.Errorf("target savings = %v, want 3600", result.TargetSavings)
	}
	if result.Advice == "" {
		t.Error("online result has empty advice")
	}

	low := p.Predict(10000, nil)
	if low.SavingsPercentage != 5.0 {
		t.Errorf("savings percentage = %v, want 5.0", low.SavingsPercentage)
	}
}

func TestPredictorLoadsArtifactOnce(t *testing.T) {
	model := `{"nodes":[{"feature":-1,"threshold":0,"left":-1,"right":-1,"value":12.0}]}`
	features := `["Income","Miscellaneous"]`
	modelPath, featuresPath := writeArtifacts(t, model, features)
	p := NewPredictor(modelPath, featuresPath, testLogger())

	var wg sync.WaitGroup
	results := make([]PredictionResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Predict(1000, nil)
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r.Status != StatusOnline || r.SavingsPercentage != 12.0 {
			t.Fatalf("concurrent call %d: %+v", i, r)
		}
	}
}

func TestPredictorRejectsInvalidTree(t *testing.T) {
	// Child index outside the node array
	model := `{"nodes":[{"feature":0,"threshold":1,"left":5,"right":6}]}`
	features := `["Income"]`
	modelPath, featuresPath := writeArtifacts(t, model, features)
	p := NewPredictor(modelPath, featuresPath, testLogger())

	if result := p.Predict(1000, nil); result.Status != StatusOffline {
		t.Errorf("status = %q, want offline for invalid tree", result.Status)
	}
}
