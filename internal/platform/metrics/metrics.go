// Package metrics exposes the Prometheus collectors that report prediction
// and HTTP activity.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "growthcast"

// Prediction sources
const (
	SourceStored    = "stored"
	SourceStateless = "stateless"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	predictions        *prometheus.CounterVec
	predictionDuration *prometheus.HistogramVec
	nutritionFallbacks prometheus.Counter
	statusAssessments  *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// MustNewMetrics creates the collectors and registers them with reg. A nil
// reg means the default registerer. Collectors that are already registered
// are reused; any other registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Prediction runs by source and outcome.",
		}, []string{"source", "outcome"}),
		predictionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent producing a forecast, including data fetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		nutritionFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nutrition_fallbacks_total",
			Help:      "Predictions that proceeded without nutrition data after a failed fetch.",
		}),
		statusAssessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_assessments_total",
			Help:      "Status assessments by resulting status.",
		}, []string{"status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.predictions = register(reg, m.predictions)
	m.predictionDuration = register(reg, m.predictionDuration)
	m.nutritionFallbacks = register(reg, m.nutritionFallbacks)
	m.statusAssessments = register(reg, m.statusAssessments)
	m.httpRequests = register(reg, m.httpRequests)
	m.httpDuration = register(reg, m.httpDuration)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		// ALLOW-PANIC: registration conflicts are programming errors
		panic(err)
	}
	return c
}

// ObservePrediction records one prediction run.
func (m *Metrics) ObservePrediction(source string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.predictions.WithLabelValues(source, outcome).Inc()
	m.predictionDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// IncNutritionFallback counts a prediction that continued without nutrition data.
func (m *Metrics) IncNutritionFallback() {
	if m == nil {
		return
	}
	m.nutritionFallbacks.Inc()
}

// ObserveStatus counts a status assessment.
func (m *Metrics) ObserveStatus(status string) {
	if m == nil {
		return
	}
	m.statusAssessments.WithLabelValues(status).Inc()
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}
