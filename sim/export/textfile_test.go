package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacenter-sim/dcsim/sim"
)

func runReport(t *testing.T, policy string) *sim.Report {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Duration = 50
	cfg.Policy = policy
	s, err := sim.NewSimulator(cfg)
	require.NoError(t, err)
	return s.Run()
}

func TestWriteTextfile_ContainsSeriesPerPolicy(t *testing.T) {
	// GIVEN reports for both policies
	rr := runReport(t, sim.PolicyRoundRobin)
	sq := runReport(t, sim.PolicyShortestQueue)
	path := filepath.Join(t.TempDir(), "dcsim.prom")

	// WHEN written as a textfile
	require.NoError(t, WriteTextfile(path, rr, sq))

	// THEN both policies appear with their outcome series
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `dcsim_requests{outcome="arrived",policy="round-robin"}`)
	assert.Contains(t, out, `dcsim_requests{outcome="completed",policy="shortest-queue"}`)
	assert.Contains(t, out, `dcsim_theoretical_utilization{policy="round-robin"} 0.4444`)
	assert.Contains(t, out, "# TYPE dcsim_drop_rate gauge")
}

func TestRegistry_NoResponseDataOmitsResponseSeries(t *testing.T) {
	empty := sim.NewMetrics(1).Report(sim.DefaultConfig(), sim.PolicyRoundRobin, nil, 0)

	reg, err := Registry(empty)
	require.NoError(t, err)
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		assert.NotEqual(t, "dcsim_response_time", mf.GetName())
	}
}
