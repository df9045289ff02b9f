package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	requestsTotal     *prometheus.CounterVec
	latencySeconds    *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	quizSubmissions   *prometheus.CounterVec
	gradingOperations *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projecta_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "projecta_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projecta_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		quizSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projecta_quiz_submissions_total",
			Help: "Quiz submissions processed, by outcome.",
		}, []string{"outcome"})

		gradingOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projecta_grading_operations_total",
			Help: "Manual grading updates applied, by resulting status.",
		}, []string{"status"})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, quizSubmissions, gradingOperations)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// QuizSubmissions exposes the counter for quiz submission outcomes.
func QuizSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return quizSubmissions
}

// GradingOperations exposes the counter for manual grading updates.
func GradingOperations() *prometheus.CounterVec {
	RegisterMetrics()
	return gradingOperations
}
