package prometheus

import (
	"time"

	"rentman-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	RegisterCounter     prometheus.Counter
	LoginCounter        prometheus.Counter
	AuthErrorsCounter   *prometheus.CounterVec
	ActiveSessionsGauge prometheus.Gauge

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Domain operation metrics
	TenantOperationsCounter    *prometheus.CounterVec
	RentLogOperationsCounter   *prometheus.CounterVec
	CollectorOperationsCounter *prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RegisterCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_register_attempts_total",
			Help: "Total number of registration attempts",
		},
	)

	LoginCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	ActiveSessionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_active_sessions",
			Help: "Number of JWT tokens issued and not yet expired",
		},
	)

	DbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	TenantOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_operations_total",
			Help: "Total number of tenant operations",
		},
		[]string{"operation"},
	)

	RentLogOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_rent_log_operations_total",
			Help: "Total number of rent log operations",
		},
		[]string{"operation"},
	)

	CollectorOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_collector_operations_total",
			Help: "Total number of rent collector operations",
		},
		[]string{"operation"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if DbOperationDuration == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for authentication errors
func RecordAuthError(reason string) {
	if AuthErrorsCounter == nil {
		return
	}
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordTenantOperation increments the counter for tenant operations
func RecordTenantOperation(operation string) {
	if TenantOperationsCounter == nil {
		return
	}
	TenantOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordRentLogOperation increments the counter for rent log operations
func RecordRentLogOperation(operation string) {
	if RentLogOperationsCounter == nil {
		return
	}
	RentLogOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCollectorOperation increments the counter for rent collector operations
func RecordCollectorOperation(operation string) {
	if CollectorOperationsCounter == nil {
		return
	}
	CollectorOperationsCounter.WithLabelValues(operation).Inc()
}

// IncrementRegister increments the registration attempt counter
func IncrementRegister() {
	if RegisterCounter != nil {
		RegisterCounter.Inc()
	}
}

// IncrementLogin increments the login attempt counter
func IncrementLogin() {
	if LoginCounter != nil {
		LoginCounter.Inc()
	}
}

// IncreaseActiveSessions bumps the issued-token gauge
func IncreaseActiveSessions() {
	if ActiveSessionsGauge != nil {
		ActiveSessionsGauge.Inc()
	}
}
