// Package metrics exposes viewer frame and picking counters for Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fortio.org/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the viewer's metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	frames        prometheus.Counter
	ticks         prometheus.Counter
	picks         *prometheus.CounterVec
	frameDuration prometheus.Histogram
	bodies        prometheus.Gauge
}

// NewCollector creates and registers the metrics.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_frames_total",
			Help: "Frames rendered",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_ticks_total",
			Help: "Animation ticks applied to the registry",
		}),
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orrery_picks_total",
			Help: "Mouse picks by result",
		}, []string{"result"}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_frame_seconds",
			Help:    "Time spent rendering a frame",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		bodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_bodies",
			Help: "Bodies in the registry",
		}),
	}
	m.registry.MustRegister(m.frames, m.ticks, m.picks, m.frameDuration, m.bodies)
	return m
}

// RecordFrame counts a rendered frame and its duration.
func (m *Collector) RecordFrame(d time.Duration) {
	m.frames.Inc()
	m.frameDuration.Observe(d.Seconds())
}

// RecordTick counts one animation tick.
func (m *Collector) RecordTick() {
	m.ticks.Inc()
}

// RecordPick counts a pick as a hit or a miss.
func (m *Collector) RecordPick(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.picks.WithLabelValues(result).Inc()
}

// SetBodies records the registry size.
func (m *Collector) SetBodies(n int) {
	m.bodies.Set(float64(n))
}

// Registry returns the underlying registry.
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collector's metrics.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Infof("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
