// Package metrics exposes Prometheus counters for statement processing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// Upload outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeBadRequest = "bad_request"
	OutcomeInvalidPDF = "invalid_pdf"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	uploads       *prometheus.CounterVec
	parsed        *prometheus.CounterVec
	dropped       prometheus.Counter
	parseDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_uploads_total",
			Help: "Statement uploads by outcome.",
		}, []string{"outcome"}),
		parsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_transactions_parsed_total",
			Help: "Transactions returned to clients, by direction.",
		}, []string{"direction"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statement_transactions_dropped_total",
			Help: "Transaction blobs dropped because no amount was found.",
		}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statement_parse_duration_seconds",
			Help:    "Time spent extracting and parsing one statement.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.uploads, m.parsed, m.dropped, m.parseDuration)
	return m
}

// Upload counts one upload with the given outcome.
func (m *Metrics) Upload(outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
}

// Statement records the result of one parsed statement.
func (m *Metrics) Statement(res *models.StatementResult, elapsed time.Duration) {
	if m == nil || res == nil {
		return
	}
	for _, txn := range res.Transactions {
		m.parsed.WithLabelValues(string(txn.Direction)).Inc()
	}
	m.dropped.Add(float64(res.Dropped))
	m.parseDuration.Observe(elapsed.Seconds())
}
