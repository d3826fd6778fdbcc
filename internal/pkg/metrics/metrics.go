// Package metrics holds the Prometheus registry and collectors for the
// service. A dedicated registry keeps the /metrics output limited to what
// is registered here.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// StopSubmissions counts driver stop submissions by outcome kind and
	// result.
	StopSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "stop_submissions_total", Help: "Stop submissions by kind and result."},
		[]string{"kind", "result"},
	)

)

var regOnce sync.Once

// Register registers all collectors on the dedicated registry, along with
// the Go and process collectors. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(StopSubmissions)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
