// Prometheus metrics for the executor. Registered in init() and served by the
// shared HTTP mux at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// executor_orders_total{mode,result}: entry order submissions.
	Orders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "executor_orders_total",
			Help: "Entry orders by mode (paper|live) and result (ok|reject|error)",
		},
		[]string{"mode", "result"},
	)

	// executor_protection_total{outcome}: terminal outcome of each tracked order.
	Protection = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "executor_protection_total",
			Help: "Background task outcomes (placed|skipped_unfilled|cancelled_unfilled|failed)",
		},
		[]string{"outcome"},
	)

	// executor_poll_errors_total: transient order status query failures.
	PollErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "executor_poll_errors_total",
			Help: "Transient order status query failures (tracking continues)",
		},
	)
)

func init() {
	prometheus.MustRegister(Orders, Protection, PollErrors)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
