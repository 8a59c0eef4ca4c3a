package queueing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtilization_ReferenceExperiment(t *testing.T) {
	// GIVEN λ=2.0, μ=1.5, N=3
	// THEN ρ = 2.0 / 4.5
	assert.InDelta(t, 0.4444444444, Utilization(2.0, 1.5, 3), 1e-9)
}

func TestErlangC_SingleServerEqualsRho(t *testing.T) {
	// For c=1 the probability of waiting is exactly ρ.
	for _, rho := range []float64{0.1, 0.5, 0.9} {
		assert.InDelta(t, rho, ErlangC(rho, 1), 1e-12, "rho=%v", rho)
	}
}

func TestErlangC_KnownValue(t *testing.T) {
	// a = 2 Erlangs on 3 servers: C = (8/6 * 3) / (1 + 2 + 2 + 4) = 4/9
	assert.InDelta(t, 4.0/9.0, ErlangC(2, 3), 1e-12)
}

func TestSolve_MatchesMM1(t *testing.T) {
	got := Solve(0.5, 1.0, 1)
	assert.True(t, got.Stable)
	assert.InDelta(t, MM1ResponseTime(0.5, 1.0), got.MeanResponseTime, 1e-12)
	assert.InDelta(t, 1.0, got.MeanWaitTime, 1e-12)
}

func TestSolve_Unstable(t *testing.T) {
	tests := []struct {
		name   string
		lambda float64
		mu     float64
		c      int
	}{
		{"saturated", 3.0, 1.0, 3},
		{"overloaded", 10.0, 1.5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Solve(tt.lambda, tt.mu, tt.c)
			assert.False(t, got.Stable)
			assert.Zero(t, got.MeanResponseTime)
			assert.GreaterOrEqual(t, got.Utilization, 1.0)
		})
	}
}

func TestMM1ResponseTime_Unstable(t *testing.T) {
	assert.True(t, math.IsInf(MM1ResponseTime(2, 1), 1))
}
