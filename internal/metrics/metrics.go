// Package metrics exposes the Prometheus counters of the marketplace.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// Metrics holds the counters registered on one registry.
type Metrics struct {
	transitions *prometheus.CounterVec
	errors      *prometheus.CounterVec
	jobRuns     *prometheus.CounterVec
}

// New registers the counters on reg. Pass prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_committed_total",
			Help:      "Total number of committed lifecycle transitions.",
		},
			[]string{"entity", "status"},
		),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Total number of errors encountered during specific operations.",
		},
			[]string{"operation", "class"},
		),
		jobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Total number of background job runs by outcome.",
		},
			[]string{"job", "outcome"},
		),
	}
}

// TransitionCommitted counts a transition that reached the database.
func (m *Metrics) TransitionCommitted(entity, status string) {
	m.transitions.WithLabelValues(entity, status).Inc()
}

// OperationFailed counts a failed operation, labelled with the error class.
func (m *Metrics) OperationFailed(operation, class string) {
	m.errors.WithLabelValues(operation, class).Inc()
}

func (m *Metrics) JobRun(job string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.jobRuns.WithLabelValues(job, outcome).Inc()
}
