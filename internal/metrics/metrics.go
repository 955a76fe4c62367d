package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_mutations_total",
			Help: "Total successful create/update/delete operations",
		},
		[]string{"resource", "op"},
	)

	StoreSaves = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_saves_total",
			Help: "Total whole-document rewrites of the data file",
		},
	)
	StoreSaveErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_save_errors_total",
			Help: "Total failed data file writes",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(StoreSaves)
	prometheus.MustRegister(StoreSaveErrors)
}
