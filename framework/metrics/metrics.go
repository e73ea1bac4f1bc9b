// Package metrics exposes container activity as prometheus metrics.
package metrics

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-fluentdoc/framework/container"
)

const namespace = "fluentdoc"

// Collector owns a private prometheus registry holding the container
// metrics and the Go runtime collector.
type Collector struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "container",
				Name:      "resolutions_total",
				Help:      "Total number of successful resolutions, nested ones included",
			},
			[]string{"contract"},
		),
	}
	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(m.resolutions)
	return m
}

// Observe counts every resolution of c and reports its binding count.
func (m *Collector) Observe(c *container.Container) error {
	bindings := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "container",
			Name:        "bindings",
			Help:        "Number of registered contracts",
			ConstLabels: prometheus.Labels{"container": c.ID()},
		},
		func() float64 { return float64(len(c.Bindings())) },
	)
	if err := m.registry.Register(bindings); err != nil {
		return fmt.Errorf("metrics: observe container %s: %w", c.ID(), err)
	}

	c.AfterResolving(func(contract reflect.Type, _ any) {
		m.resolutions.WithLabelValues(contract.String()).Inc()
	})
	return nil
}

// Resolutions returns the resolution counter.
func (m *Collector) Resolutions() *prometheus.CounterVec { return m.resolutions }

// Registry returns the registry backing m.
func (m *Collector) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus exposition format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
