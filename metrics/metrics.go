package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var HttpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "export_http_requests_total",
}, []string{"action", "method"})
var HttpResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "export_http_responses_total",
}, []string{"action", "method", "statusCode"})
var ExportJobsStarted = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "export_jobs_started_total",
})
var ExportJobsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "export_jobs_completed_total",
})
var ExportJobsFailed = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "export_jobs_failed_total",
})
var ExportItemsFetched = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "export_items_fetched_total",
}, []string{"result"})
var ExportBytesArchived = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "export_bytes_archived_total",
})
var CatalogOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "export_catalog_operations_total",
}, []string{"operation"})

func init() {
	prometheus.MustRegister(HttpRequests)
	prometheus.MustRegister(HttpResponses)
	prometheus.MustRegister(ExportJobsStarted)
	prometheus.MustRegister(ExportJobsCompleted)
	prometheus.MustRegister(ExportJobsFailed)
	prometheus.MustRegister(ExportItemsFetched)
	prometheus.MustRegister(ExportBytesArchived)
	prometheus.MustRegister(CatalogOperations)
}
