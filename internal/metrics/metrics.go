package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Concourse
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec
	TxRetriesTotal  prometheus.Counter

	// Booking Metrics
	BookingsCreatedTotal   prometheus.Counter
	BookingsConfirmedTotal prometheus.Counter
	BookingsExpiredTotal   prometheus.Counter
	BookingsCancelledTotal prometheus.Counter
	PaymentFailuresTotal   prometheus.Counter
	SeatsHeld              prometheus.Gauge

	// Pricing / Simulator Metrics
	FareComputationsTotal prometheus.Counter
	SimulatorTickDuration prometheus.Histogram
	ReaperTickDuration    prometheus.Histogram
	FlightsSimulatedTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concourse_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concourse_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "concourse_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concourse_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concourse_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),
		TxRetriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_tx_retries_total",
				Help: "Booking transactions retried after serialization failures",
			},
		),

		// Booking Metrics
		BookingsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_bookings_created_total",
				Help: "Holds created",
			},
		),
		BookingsConfirmedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_bookings_confirmed_total",
				Help: "Bookings confirmed after successful payment",
			},
		),
		BookingsExpiredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_bookings_expired_total",
				Help: "Holds expired by the reaper",
			},
		),
		BookingsCancelledTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_bookings_cancelled_total",
				Help: "Bookings cancelled by users or staff",
			},
		),
		PaymentFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_payment_failures_total",
				Help: "Payment attempts refused by the gateway",
			},
		),
		SeatsHeld: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "concourse_seats_held",
				Help: "Seats currently in Held status",
			},
		),

		// Pricing / Simulator Metrics
		FareComputationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_fare_computations_total",
				Help: "Dynamic fare computations performed",
			},
		),
		SimulatorTickDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "concourse_simulator_tick_duration_seconds",
				Help:    "Demand simulator tick execution time in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),
		ReaperTickDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "concourse_reaper_tick_duration_seconds",
				Help:    "Hold reaper tick execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
		FlightsSimulatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "concourse_flights_simulated_total",
				Help: "Flight demand updates applied by the simulator",
			},
		),
	}
}
