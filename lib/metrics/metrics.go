// Package metrics holds the Prometheus collectors of the bridge. They are registered on a dedicated registry that is
// exposed on the internal HTTP interface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "redoxbridge"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// TokenRefreshes counts token requests to the authorization server, by outcome.
	TokenRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Number of access token refreshes, by outcome.",
	}, []string{"outcome"})
	// Searches counts FHIR searches, by resource kind and outcome.
	Searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Number of FHIR searches, by resource kind and outcome.",
	}, []string{"kind", "outcome"})
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		TokenRefreshes,
		Searches,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the collected metrics in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
