// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"quiz-tutor/internal/scoring"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quiztutor"

// Metrics bundles every collector the service records to. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	Submissions     *prometheus.CounterVec
	SubmissionScore prometheus.Histogram
	AnswerOutcomes  *prometheus.CounterVec

	QuestionCacheLookups *prometheus.CounterVec
	QuestionLoads        *prometheus.CounterVec

	RateLimited prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"method", "endpoint"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Quiz submissions by result",
			},
			[]string{"result"},
		),
		SubmissionScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "submission_score",
				Help:      "Score awarded per submission",
				Buckets:   prometheus.LinearBuckets(0, 5, 11),
			},
		),
		AnswerOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "answers_graded_total",
				Help:      "Graded answers by question type and outcome",
			},
			[]string{"question_type", "outcome"},
		),
		QuestionCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "question_cache_lookups_total",
				Help:      "Question list cache lookups by result",
			},
			[]string{"result"},
		),
		QuestionLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "question_store_loads_total",
				Help:      "Question list loads from the SQL store by result",
			},
			[]string{"result"},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_requests_total",
				Help:      "Requests rejected by the submission rate limiter",
			},
		),
	}

	reg.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.Submissions,
		m.SubmissionScore,
		m.AnswerOutcomes,
		m.QuestionCacheLookups,
		m.QuestionLoads,
		m.RateLimited,
	)
	return m
}

// ObserveSubmission records a scored submission and its per-answer outcomes.
func (m *Metrics) ObserveSubmission(result scoring.Result) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues("scored").Inc()
	m.SubmissionScore.Observe(float64(result.Score))
	for _, a := range result.Answers {
		qt := string(a.Type)
		if qt == "" {
			qt = "none"
		}
		m.AnswerOutcomes.WithLabelValues(qt, string(a.Outcome)).Inc()
	}
}

// SubmissionFailed records a submission that could not be scored.
func (m *Metrics) SubmissionFailed() {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues("failed").Inc()
}

// CacheLookup records a question cache lookup; result is hit, miss or error.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.QuestionCacheLookups.WithLabelValues(result).Inc()
}

// StoreLoad records a question load from SQL; result is ok or error.
func (m *Metrics) StoreLoad(result string) {
	if m == nil {
		return
	}
	m.QuestionLoads.WithLabelValues(result).Inc()
}

// RequestRateLimited records one rejected request.
func (m *Metrics) RequestRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}
