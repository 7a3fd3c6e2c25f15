// Package observability bundles Prometheus metrics for the HTTP surface and
// the catalog, with a ready-to-mount /metrics handler.
package observability

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service metrics and provides helpers to wire them into
// the chi router.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests   *prometheus.CounterVec
	CatalogRecords prometheus.Gauge
	SelectionSize  prometheus.Histogram
}

// NewCollector registers the service metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Registration tolerates collectors that already exist, so tests can build
// multiple collectors against the default registry.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "satview_http_requests_total",
		Help: "Total handled HTTP requests, labeled by route pattern and status code.",
	}, []string{"route", "code"})
	requests, err := registerCounterVec(reg, requests, "satview_http_requests_total")
	if err != nil {
		return nil, err
	}

	records, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "satview_catalog_records",
		Help: "Current number of records in the catalog.",
	}), "satview_catalog_records")
	if err != nil {
		return nil, err
	}

	selection, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "satview_selection_size",
		Help:    "Number of records returned per rendering-selection query.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	}), "satview_selection_size")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		HTTPRequests:   requests,
		CatalogRecords: records,
		SelectionSize:  selection,
	}, nil
}

// Middleware records request counts per chi route pattern and status code.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if c == nil || c.HTTPRequests == nil {
			return
		}
		routePattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				routePattern = p
			}
		}
		c.HTTPRequests.WithLabelValues(routePattern, strconv.Itoa(ww.Status())).Inc()
	})
}

// ObserveSelection records the size of one rendering-selection response.
func (c *Collector) ObserveSelection(n int) {
	if c == nil || c.SelectionSize == nil {
		return
	}
	c.SelectionSize.Observe(float64(n))
}

// SetCatalogSize drives the catalog gauge; wired to the store's change
// notification.
func (c *Collector) SetCatalogSize(n int) {
	if c == nil || c.CatalogRecords == nil {
		return
	}
	c.CatalogRecords.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
