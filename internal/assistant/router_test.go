package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubPredictor struct {
	percentage float64
	offline    bool
	calls      int
}

func (s *stubPredictor) Predict(income float64, expenses map[string]float64) PredictionResult {
	s.calls++
	if s.offline {
		return PredictionResult{Advice: OfflineAdvice, Status: StatusOffline}
	}
	return PredictionResult{
		Advice:            RenderAdvice(s.percentage, income),
		SavingsPercentage: s.percentage,
		TargetSavings:     s.percentage / 100 * income,
		Status:            StatusOnline,
	}
}

type stubGateway struct {
	reply string
	err   error
	calls int
}

func (s *stubGateway) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestRouterSalaryPlan(t *testing.T) {
	pred := &stubPredictor{percentage: 18.0}
	r := NewRouter(pred, nil, testLogger())

	fc := FinancialContext{
		Income:   20000,
		Expenses: map[string]float64{"Rent": 5000, "Groceries": 2000, "Transport": 1000},
	}
	reply := r.Respond(context.Background(), "I want a budget plan", fc)

	if pred.calls != 1 {
		t.Fatalf("predictor calls = %d, want 1", pred.calls)
	}
	for _, want := range []string{"18.0%", "3,600.00", "Good job.", "₹20,000.00"} {
		if !strings.Contains(reply, want) {
			t.Errorf("plan %q missing %q", reply, want)
		}
	}
}

func TestRouterSalaryPlanWithoutIncome(t *testing.T) {
	pred := &stubPredictor{percentage: 18.0}
	r := NewRouter(pred, nil, testLogger())

	reply := r.Respond(context.Background(), "give me advice", FinancialContext{})
	if reply != noIncomeReply {
		t.Errorf("reply = %q, want income guidance", reply)
	}
	if pred.calls != 0 {
		t.Errorf("predictor called %d times without income", pred.calls)
	}
}

func TestRouterSalaryPlanOfflinePredictor(t *testing.T) {
	r := NewRouter(&stubPredictor{offline: true}, nil, testLogger())

	fc := FinancialContext{Income: 20000, Expenses: map[string]float64{"Rent": 5000}}
	reply := r.Respond(context.Background(), "salary plan please", fc)
	if reply != OfflineAdvice {
		t.Errorf("reply = %q, want the offline advisory", reply)
	}
}

func TestRouterExpenseBreakdown(t *testing.T) {
	r := NewRouter(&stubPredictor{}, nil, testLogger())

	fc := FinancialContext{
		Expenses: map[string]float64{"Rent": 5000, "Groceries": 2000, "Transport": 1000},
	}
	reply := r.Respond(context.Background(), "show my expense breakdown", fc)

	for _, want := range []string{
		"Total spending: ₹8,000.00",
		"Rent: ₹5,000.00 (62.5%)",
		"Groceries: ₹2,000.00 (25.0%)",
		"Transport: ₹1,000.00 (12.5%)",
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("breakdown %q missing %q", reply, want)
		}
	}
	// Largest category first
	if strings.Index(reply, "Rent") > strings.Index(reply, "Transport") {
		t.Errorf("breakdown not ordered by amount: %q", reply)
	}
}

func TestRouterExpenseBreakdownNoData(t *testing.T) {
	r := NewRouter(&stubPredictor{}, nil, testLogger())

	reply := r.Respond(context.Background(), "analyze my spending", FinancialContext{Income: 100})
	if reply != noExpenseReply {
		t.Errorf("reply = %q, want no-data guidance", reply)
	}
}

func TestFormatBreakdownZeroTotal(t *testing.T) {
	out := FormatBreakdown(map[string]float64{"Rent": 0, "Groceries": 0})
	for _, want := range []string{"Rent: ₹0.00 (0.0%)", "Groceries: ₹0.00 (0.0%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("breakdown %q missing %q", out, want)
		}
	}
}

func TestRouterGeneralUsesGateway(t *testing.T) {
	gw := &stubGateway{reply: "Here is some advice from the cloud."}
	r := NewRouter(&stubPredictor{}, gw, testLogger())

	reply := r.Respond(context.Background(), "hello there", FinancialContext{})
	if reply != gw.reply {
		t.Errorf("reply = %q, want gateway reply", reply)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d, want 1", gw.calls)
	}
}

func TestRouterGeneralFallsBackOnGatewayFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("quota exceeded")}
	r := NewRouter(&stubPredictor{}, gw, testLogger())

	reply := r.Respond(context.Background(), "hello there", FinancialContext{})
	if reply == "" {
		t.Fatal("empty reply on gateway failure")
	}
	if reply != fallbackRules[0].reply {
		t.Errorf("reply = %q, want the greeting fallback", reply)
	}
}

func TestRouterGeneralWithoutGateway(t *testing.T) {
	r := NewRouter(&stubPredictor{}, nil, testLogger())

	cases := []struct {
		message string
		want    string
	}{
		{"hello there", fallbackRules[0].reply},
		{"how do I start saving money", fallbackRules[1].reply},
		{"should I invest in stocks", fallbackRules[2].reply},
		{"what's the weather", defaultFallbackReply},
	}
	for _, tc := range cases {
		if got := r.Respond(context.Background(), tc.message, FinancialContext{}); got != tc.want {
			t.Errorf("Respond(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}
