package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceLevelDecisions)

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 {
		t.Errorf("expected 0 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.UniqueTargets != 0 {
		t.Errorf("expected 0 unique targets, got %d", summary.UniqueTargets)
	}
	if summary.MeanRegret != 0 || summary.MaxRegret != 0 {
		t.Error("expected 0 regret values")
	}
	if summary.MaxImbalance != 0 {
		t.Errorf("expected 0 imbalance, got %d", summary.MaxImbalance)
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDecisions != 0 || summary.TargetDistribution == nil {
		t.Errorf("unexpected summary for nil trace: %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN routing records with known targets and regrets
	st := NewSimulationTrace(TraceLevelDecisions)
	st.RecordRouting(RoutingRecord{RequestID: 1, ChosenServer: 0, Regret: 1})
	st.RecordRouting(RoutingRecord{RequestID: 2, ChosenServer: 1, Regret: 3, IdleBypass: true})
	st.RecordRouting(RoutingRecord{RequestID: 3, ChosenServer: 0, Regret: 0})
	st.RecordRouting(RoutingRecord{RequestID: 4, ChosenServer: 0, Regret: 0})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts, regret and imbalance match
	if summary.TotalDecisions != 4 {
		t.Errorf("expected 4 decisions, got %d", summary.TotalDecisions)
	}
	if summary.UniqueTargets != 2 {
		t.Errorf("expected 2 unique targets, got %d", summary.UniqueTargets)
	}
	if summary.TargetDistribution[0] != 3 || summary.TargetDistribution[1] != 1 {
		t.Errorf("unexpected distribution %v", summary.TargetDistribution)
	}
	if summary.MeanRegret != 1.0 {
		t.Errorf("expected mean regret 1.0, got %v", summary.MeanRegret)
	}
	if summary.MaxRegret != 3 {
		t.Errorf("expected max regret 3, got %v", summary.MaxRegret)
	}
	if summary.MaxImbalance != 2 {
		t.Errorf("expected imbalance 2, got %d", summary.MaxImbalance)
	}
	if summary.IdleBypasses != 1 {
		t.Errorf("expected 1 idle bypass, got %d", summary.IdleBypasses)
	}
}
