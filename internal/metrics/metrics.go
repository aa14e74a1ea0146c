package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Submissions
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_submissions_total",
			Help: "Poster form submissions by outcome",
		},
		[]string{"outcome"}, // completed|rejected|failed|busy
	)
	GenerateDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_generate_duration_seconds",
			Help:    "Duration of calls to the generation endpoint",
			Buckets: prometheus.ExponentialBuckets(1, 2, 9), // 1s..256s
		},
	)
	CardsRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "poster_cards_rendered_total",
			Help: "Total number of poster cards rendered",
		},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		Submissions,
		GenerateDurationSeconds,
		CardsRendered,
		Errors,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncSubmission(outcome string) {
	Submissions.WithLabelValues(outcome).Inc()
}

func ObserveGenerateDuration(d time.Duration) {
	GenerateDurationSeconds.Observe(d.Seconds())
}

func AddCardsRendered(n int) {
	CardsRendered.Add(float64(n))
}

func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
