package lightapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace    = "lightapi"
	statusLabelNoAnswer = "transport_error"
)

type metrics struct {
	requests *prometheus.CounterVec
	inFlight prometheus.Gauge
	duration *prometheus.HistogramVec
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Requests sent to the lighting API by method and status.",
		},
		[]string{"method", "status"},
	)

	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "requests_in_flight",
		Help:      "Requests currently awaiting a response.",
	})

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Round trip time of requests to the lighting API.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	var err error

	m := &metrics{}

	if m.requests, err = register(registerer, requests); err != nil {
		return nil, err
	}

	if m.inFlight, err = register(registerer, inFlight); err != nil {
		return nil, err
	}

	if m.duration, err = register(registerer, duration); err != nil {
		return nil, err
	}

	return m, nil
}

// register reuses an identical collector that an earlier client already put
// on the same registerer.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	var zero C

	return zero, fmt.Errorf("failed to register metrics: %w", err)
}

func (m *metrics) begin() {
	if m == nil {
		return
	}

	m.inFlight.Inc()
}

func (m *metrics) end(method string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}

	status := statusLabelNoAnswer
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}

	m.inFlight.Dec()
	m.requests.WithLabelValues(method, status).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
