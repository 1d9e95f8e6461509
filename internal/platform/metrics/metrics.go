package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for account operations, registry lookups
// and the HTTP edge. A nil *Metrics is valid and records nothing.
type Metrics struct {
	AccountsCreated   *prometheus.CounterVec
	Transfers         *prometheus.CounterVec
	LoanDecisions     *prometheus.CounterVec
	HistoryEmails     *prometheus.CounterVec
	RegistryLookups   *prometheus.CounterVec
	RegistryDuration  prometheus.Histogram
	HTTPRequests      *prometheus.CounterVec
	HTTPRequestLength *prometheus.HistogramVec
}

// New registers all bank metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AccountsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_accounts_created_total",
			Help: "Total number of accounts created, by kind",
		}, []string{"kind"}),
		Transfers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_transfers_total",
			Help: "Total number of transfers, by account kind, transfer type and outcome",
		}, []string{"kind", "type", "outcome"}),
		LoanDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_loan_decisions_total",
			Help: "Total number of loan decisions, by account kind and decision",
		}, []string{"kind", "approved"}),
		HistoryEmails: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_history_emails_total",
			Help: "Total number of history email attempts, by account kind and result",
		}, []string{"kind", "sent"}),
		RegistryLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_registry_lookups_total",
			Help: "Total number of company registry lookups, by result",
		}, []string{"result"}),
		RegistryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bank_registry_lookup_duration_seconds",
			Help:    "Duration of company registry lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_http_requests_total",
			Help: "Total number of HTTP requests, by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestLength: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bank_http_request_duration_seconds",
			Help:    "Duration of HTTP requests, by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// IncrementAccountCreated records a successful account creation.
func (m *Metrics) IncrementAccountCreated(kind string) {
	if m == nil {
		return
	}
	m.AccountsCreated.WithLabelValues(kind).Inc()
}

// IncrementTransfer records a transfer attempt and its outcome.
func (m *Metrics) IncrementTransfer(kind, transferType, outcome string) {
	if m == nil {
		return
	}
	m.Transfers.WithLabelValues(kind, transferType, outcome).Inc()
}

// IncrementLoanDecision records the result of a loan evaluation.
func (m *Metrics) IncrementLoanDecision(kind string, approved bool) {
	if m == nil {
		return
	}
	m.LoanDecisions.WithLabelValues(kind, boolLabel(approved)).Inc()
}

// IncrementHistoryEmail records a history email attempt.
func (m *Metrics) IncrementHistoryEmail(kind string, sent bool) {
	if m == nil {
		return
	}
	m.HistoryEmails.WithLabelValues(kind, boolLabel(sent)).Inc()
}

// ObserveRegistryLookup records a registry lookup result and its duration.
// Call with time.Now() at the start of the lookup.
func (m *Metrics) ObserveRegistryLookup(result string, start time.Time) {
	if m == nil {
		return
	}
	m.RegistryLookups.WithLabelValues(result).Inc()
	m.RegistryDuration.Observe(time.Since(start).Seconds())
}

// ObserveHTTPRequest records a served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestLength.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
