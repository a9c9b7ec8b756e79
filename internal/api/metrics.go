package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Allocator/internal/scoring"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	computations    *prometheus.CounterVec
	computeDuration prometheus.Histogram
	sharePercent    *prometheus.GaugeVec
	estimatedBudget *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "allocator_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocator_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocator_computations_total",
		Help: "Allocation results computed, by outcome",
	}, []string{"outcome"})

	computeDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "allocator_computation_duration_seconds",
		Help:    "Time spent computing one university result",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	})

	sharePercent := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "allocator_share_percent",
		Help: "Latest computed share of the system for a university",
	}, []string{"university_id"})

	estimatedBudget := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "allocator_estimated_budget",
		Help: "Latest computed budget for a university",
	}, []string{"university_id"})

	registry.MustRegister(requestDuration, requestTotal, computations, computeDuration, sharePercent, estimatedBudget)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		computations:    computations,
		computeDuration: computeDuration,
		sharePercent:    sharePercent,
		estimatedBudget: estimatedBudget,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return m.handler
}

// ObserveResult records one computation. It matches the scorer's observe hook.
func (m *Metrics) ObserveResult(r scoring.CalculationResult, d time.Duration) {
	if m == nil {
		return
	}
	m.computeDuration.Observe(d.Seconds())
	if !r.Finite() {
		m.computations.WithLabelValues("non_finite").Inc()
		return
	}
	m.computations.WithLabelValues("finite").Inc()
	id := r.UniversityID.String()
	m.sharePercent.WithLabelValues(id).Set(r.SharePercent)
	m.estimatedBudget.WithLabelValues(id).Set(r.EstimatedBudget)
}

// unmatchedRoute labels requests that matched no chi pattern, so raw paths never become
// label values.
const unmatchedRoute = "unmatched"

// Instrument records request count and latency labelled by the matched chi route.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{r.Method, route, strconv.Itoa(status)}
		m.requestTotal.WithLabelValues(labels...).Inc()
		m.requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}
