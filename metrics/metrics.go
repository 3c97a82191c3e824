// Package metrics provides thin Prometheus instrumentation for the
// solver, the dropped-order rate, and the Slack-Insertion Query, in the
// style of the pack's obs/metrics.go.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SolveDuration records wall-clock time spent inside vrpsolver.Solve.
	SolveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "phleb_router_solve_duration_seconds",
		Help:    "Wall-clock duration of a single solve call",
		Buckets: prometheus.DefBuckets,
	})

	// OrdersDropped counts orders left unassigned by a solve call.
	OrdersDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "phleb_router_orders_dropped_total",
		Help: "Total number of orders left unassigned across all solve calls",
	})

	// VacancyQueries counts Slack-Insertion Query invocations.
	VacancyQueries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "phleb_router_vacancy_queries_total",
		Help: "Total number of Slack-Insertion Query invocations",
	})

	// VacancyRowsFound records how many insertion candidates a query
	// returned, for distribution monitoring.
	VacancyRowsFound = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "phleb_router_vacancy_rows_found",
		Help:    "Number of feasible insertion rows returned per vacancy query",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
	})
)

func init() {
	prometheus.MustRegister(SolveDuration, OrdersDropped, VacancyQueries, VacancyRowsFound)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
