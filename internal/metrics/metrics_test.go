package metrics_test

import (
	"errors"
	"strings"
	"testing"

	"marketplace/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.TransitionCommitted("order", "shipped")
	m.TransitionCommitted("order", "shipped")
	m.TransitionCommitted("buyback request", "approved")
	m.OperationFailed("place_order", "conflict")
	m.JobRun("return_completion", nil)
	m.JobRun("return_completion", errors.New("boom"))

	expected := `
# HELP marketplace_transitions_committed_total Total number of committed lifecycle transitions.
# TYPE marketplace_transitions_committed_total counter
marketplace_transitions_committed_total{entity="buyback request",status="approved"} 1
marketplace_transitions_committed_total{entity="order",status="shipped"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "marketplace_transitions_committed_total"))

	count, err := testutil.GatherAndCount(reg, "marketplace_operation_errors_total", "marketplace_job_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	assert.Panics(t, func() { metrics.New(reg) })
}
