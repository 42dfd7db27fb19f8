// Package metrics содержит счётчики prometheus сервиса аудита
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	// AuditsTotal считает проверки по источнику (upload, store) и результату
	AuditsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orgaudit_audits_total",
		Help: "Total audits by source and result",
	}, []string{"source", "result"})

	// FindingsTotal считает замечания по виду
	FindingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orgaudit_findings_total",
		Help: "Total findings by kind",
	}, []string{"kind"})

	AuditDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "orgaudit_audit_duration_seconds",
		Help:    "Time to build the hierarchy and evaluate the rules",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	})

	EmployeesImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orgaudit_employees_imported_total",
		Help: "Employees written to the store by imports",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orgaudit_http_requests_total",
		Help: "HTTP requests by method and status code",
	}, []string{"method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orgaudit_http_request_duration_seconds",
		Help:    "HTTP request duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)
