package handlers

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// FailureMetrics counts dependency failures per operation and failure kind.
// Callers only ever see INTERNAL; the kind lives here and in the logs.
type FailureMetrics struct {
	failures *prometheus.CounterVec
}

// NewFailureMetrics registers the failure counter with reg, or with the
// default registerer when reg is nil. Registering twice reuses the counter.
func NewFailureMetrics(reg prometheus.Registerer) (*FailureMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quotes",
		Name:      "dependency_failures_total",
		Help:      "Operations that failed because the quote provider or favorites store failed.",
	}, []string{"operation", "kind"})

	if err := reg.Register(failures); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}

		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}

		failures = existing
	}

	return &FailureMetrics{failures: failures}, nil
}

// Record counts err if it carries a failure kind. Safe on a nil receiver.
func (m *FailureMetrics) Record(operation string, err error) {
	if m == nil {
		return
	}

	if kind, ok := domain.FailureKindOf(err); ok {
		m.failures.WithLabelValues(operation, kind.String()).Inc()
	}
}
