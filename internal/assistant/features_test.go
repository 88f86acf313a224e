package assistant

import "testing"

func TestBuildFeatureVectorRecognized(t *testing.T) {
	expenses := map[string]float64{
		"Rent":      5000,
		"Groceries": 2000,
		"Transport": 1000,
	}
	vec := BuildFeatureVector(20000, expenses, TrainingFeatures)

	if len(vec) != len(TrainingFeatures) {
		t.Fatalf("vector length = %d, want %d", len(vec), len(TrainingFeatures))
	}
	if vec[0] != 20000 {
		t.Errorf("Income = %v, want 20000", vec[0])
	}
	if vec[1] != 5000 {
		t.Errorf("Rent = %v, want 5000", vec[1])
	}
	if vec[4] != 2000 {
		t.Errorf("Groceries = %v, want 2000", vec[4])
	}
	if vec[5] != 1000 {
		t.Errorf("Transport = %v, want 1000", vec[5])
	}
	// Miscellaneous untouched when every category is recognized
	if misc := vec[len(vec)-1]; misc != 0 {
		t.Errorf("Miscellaneous = %v, want 0", misc)
	}
	// Everything else stays zero
	for _, i := range []int{2, 3, 6, 7, 8, 9, 10} {
		if vec[i] != 0 {
			t.Errorf("feature %s = %v, want 0", TrainingFeatures[i], vec[i])
		}
	}
}

func TestBuildFeatureVectorUnrecognizedFoldsIntoMiscellaneous(t *testing.T) {
	expenses := map[string]float64{
		"Rent":    5000,
		"Pets":    300,
		"Hobbies": 200,
	}
	vec := BuildFeatureVector(10000, expenses, TrainingFeatures)

	if misc := vec[len(vec)-1]; misc != 500 {
		t.Errorf("Miscellaneous = %v, want 500", misc)
	}
	if vec[1] != 5000 {
		t.Errorf("Rent = %v, want 5000", vec[1])
	}
}

func TestBuildFeatureVectorNoMiscellaneousSlotDropsUnrecognized(t *testing.T) {
	order := []string{"Income", "Rent"}
	vec := BuildFeatureVector(10000, map[string]float64{"Pets": 300}, order)

	if vec[0] != 10000 {
		t.Errorf("Income = %v, want 10000", vec[0])
	}
	if vec[1] != 0 {
		t.Errorf("Rent = %v, want 0", vec[1])
	}
}

func TestBuildFeatureVectorNegativeIncomePropagates(t *testing.T) {
	vec := BuildFeatureVector(-100, nil, TrainingFeatures)
	if vec[0] != -100 {
		t.Errorf("Income = %v, want -100", vec[0])
	}
}
