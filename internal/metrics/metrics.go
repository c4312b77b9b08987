// Package metrics exposes Prometheus instruments for the QR pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Generation results.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultEncoding = "encoding_error"
	ResultError    = "error"
)

var Module = fx.Module("metrics",
	fx.Provide(func() prometheus.Registerer { return prometheus.DefaultRegisterer }),
	fx.Provide(New),
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	generated    *prometheus.CounterVec
	renderTime   prometheus.Histogram
	cacheLookups *prometheus.CounterVec
	confirmed    *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers the instruments on reg. A nil reg uses a private registry.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payqr_generated_total",
			Help: "Payment QR generation attempts by result.",
		}, []string{"result", "format"}),
		renderTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "payqr_render_seconds",
			Help:    "Time spent encoding and compositing one payment QR image.",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payqr_cache_lookups_total",
			Help: "Rendered image cache lookups.",
		}, []string{"outcome"}), // hit | miss
		confirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payqr_confirmations_total",
			Help: "Confirmation views decoded from scanned links.",
		}, []string{"valid"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payqr_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	for _, c := range []prometheus.Collector{m.generated, m.renderTime, m.cacheLookups, m.confirmed, m.httpDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Generated(result, format string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(result, format).Inc()
}

func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.renderTime.Observe(d.Seconds())
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Confirmed(valid bool) {
	if m == nil {
		return
	}
	m.confirmed.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

// GinMiddleware records request latency under the matched route pattern.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.httpDuration.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Observe(time.Since(start).Seconds())
	}
}
