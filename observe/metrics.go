// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package observe

import (
	"errors"
	"strconv"

	"github.com/gogama/apiclient"
	"github.com/gogama/apiclient/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is an event handler which records Prometheus metrics for
// request descriptor executions. It is safe for concurrent use.
//
// Every metric is labelled with the logical request name and the HTTP
// method.
type Metrics struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	attempts   *prometheus.CounterVec
	retries    *prometheus.CounterVec
	timeouts   *prometheus.CounterVec
	inFlight   *prometheus.GaugeVec
}

// NewMetrics creates and registers the metrics on reg. The namespace,
// if not empty, prefixes every metric name.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	labels := []string{"name", "method"}
	return &Metrics{
		executions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "apiclient",
				Name:      "executions_total",
				Help:      "Total number of executions, by outcome",
			},
			append(labels, "outcome"),
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "apiclient",
				Name:      "execution_duration_seconds",
				Help:      "Duration of executions in seconds, including retries",
				Buckets:   prometheus.DefBuckets,
			},
			labels,
		),
		attempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "apiclient",
				Name:      "attempts_total",
				Help:      "Total number of attempts, by status code",
			},
			append(labels, "status_code"),
		),
		retries: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "apiclient",
				Name:      "retries_total",
				Help:      "Total number of retries",
			},
			labels,
		),
		timeouts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "apiclient",
				Name:      "attempt_timeouts_total",
				Help:      "Total number of attempts that timed out",
			},
			labels,
		),
		inFlight: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "apiclient",
				Name:      "executions_in_flight",
				Help:      "Number of executions currently in flight",
			},
			labels,
		),
	}
}

// Handle records evt.
func (m *Metrics) Handle(evt apiclient.Event, e *request.Execution) {
	switch evt {
	case apiclient.BeforeExecutionStart:
		e.SetValue(inFlightKey{}, e.Name)
		m.inFlight.WithLabelValues(e.Name, e.Method).Inc()
	case apiclient.AfterAttemptTimeout:
		m.timeouts.WithLabelValues(e.Name, e.Method).Inc()
	case apiclient.AfterAttempt:
		m.attempts.WithLabelValues(e.Name, e.Method, statusLabel(e)).Inc()
	case apiclient.BeforeRetryWait:
		m.retries.WithLabelValues(e.Name, e.Method).Inc()
	case apiclient.AfterExecutionEnd:
		if name, ok := e.Value(inFlightKey{}).(string); ok {
			m.inFlight.WithLabelValues(name, e.Method).Dec()
		}
		m.executions.WithLabelValues(e.Name, e.Method, outcome(e)).Inc()
		m.duration.WithLabelValues(e.Name, e.Method).Observe(e.Duration().Seconds())
	}
}

// inFlightKey holds the name the in-flight gauge was incremented under,
// since before-request handlers may rename attempts.
type inFlightKey struct{}

func statusLabel(e *request.Execution) string {
	if e.StatusCode == 0 {
		return "error"
	}
	return strconv.Itoa(e.StatusCode)
}

// outcome is "success" for a 2XX response, "status" for any other
// response, and otherwise the error kind.
func outcome(e *request.Execution) string {
	if e.Err == nil {
		if e.Success() {
			return "success"
		}
		return "status"
	}
	var apiErr *apiclient.Error
	if errors.As(e.Err, &apiErr) {
		return apiErr.Kind.String()
	}
	return "unknown"
}
