// Package metrics records plan mutation outcomes and exposes them to
// Prometheus.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives one call per service operation that changes stored data.
type Recorder interface {
	Mutation(resource, op string, err error)
}

// Nop discards everything. It is the default when no recorder is configured.
type Nop struct{}

// Mutation implements Recorder.
func (Nop) Mutation(string, string, error) {}

// PromRecorder counts mutations in a Prometheus counter vector labelled by
// resource, operation and result.
type PromRecorder struct {
	mutations *prometheus.CounterVec
}

// NewPromRecorder registers the mutation counter on reg. If reg is nil the
// default registerer is used. An already registered counter is reused, so
// constructing twice against one registry is safe.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "travel",
		Name:      "mutations_total",
		Help:      "Total number of plan and memory mutations by outcome.",
	}, []string{"resource", "op", "result"})

	if err := reg.Register(mutations); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		mutations = are.ExistingCollector.(*prometheus.CounterVec)
	}
	return &PromRecorder{mutations: mutations}, nil
}

// Mutation implements Recorder. The result label is "ok" or "error".
func (r *PromRecorder) Mutation(resource, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.mutations.WithLabelValues(resource, op, result).Inc()
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
