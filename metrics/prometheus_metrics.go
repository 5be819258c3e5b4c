package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements the Metrics interface using Prometheus as the backend.
// It stores mappings for the Prometheus metric types (Counter, Gauge, Histogram) and their vector counterparts.
type PrometheusMetrics struct {
	registry      *prometheus.Registry
	mu            sync.RWMutex
	counters      map[string]prometheus.Counter
	counterVecs   map[string]*prometheus.CounterVec
	gauges        map[string]prometheus.Gauge
	gaugeVecs     map[string]*prometheus.GaugeVec
	histograms    map[string]prometheus.Histogram
	histogramVecs map[string]*prometheus.HistogramVec
	customBuckets map[string][]float64 // Stores custom buckets for histograms
}

// NewPrometheusMetrics creates a PrometheusMetrics that registers its metrics on registry.
func NewPrometheusMetrics(registry *prometheus.Registry) *PrometheusMetrics {
	return &PrometheusMetrics{
		registry:      registry,
		counters:      make(map[string]prometheus.Counter),
		counterVecs:   make(map[string]*prometheus.CounterVec),
		gauges:        make(map[string]prometheus.Gauge),
		gaugeVecs:     make(map[string]*prometheus.GaugeVec),
		histograms:    make(map[string]prometheus.Histogram),
		histogramVecs: make(map[string]*prometheus.HistogramVec),
		customBuckets: make(map[string][]float64),
	}
}

// SetCustomBuckets sets the bucket thresholds used when the histogram 'name' is registered.
func (p *PrometheusMetrics) SetCustomBuckets(name string, buckets []float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.customBuckets[name] = buckets
}

func (p *PrometheusMetrics) buckets(name string) []float64 {
	if buckets, ok := p.customBuckets[name]; ok {
		return buckets
	}
	return prometheus.DefBuckets
}

// Register creates and registers a new metric based on the provided type.
// Supported metric types are Counter, Gauge and Histogram.
func (p *PrometheusMetrics) Register(name, metricType, help string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch metricType {
	case Counter:
		counter := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
		if err := p.registry.Register(counter); err != nil {
			return err
		}
		p.counters[name] = counter

	case Gauge:
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
		if err := p.registry.Register(gauge); err != nil {
			return err
		}
		p.gauges[name] = gauge

	case Histogram:
		histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: p.buckets(name),
		})
		if err := p.registry.Register(histogram); err != nil {
			return err
		}
		p.histograms[name] = histogram

	default:
		return fmt.Errorf("unknown metric type %q for metric %s", metricType, name)
	}
	return nil
}

// Record updates the value of a metric without labels: Add for counters,
// Set for gauges and Observe for histograms. Unknown names are ignored.
func (p *PrometheusMetrics) Record(name string, value float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if counter, ok := p.counters[name]; ok {
		counter.Add(value)
		return
	}

	if gauge, ok := p.gauges[name]; ok {
		gauge.Set(value)
		return
	}

	if histogram, ok := p.histograms[name]; ok {
		histogram.Observe(value)
	}
}

// RegisterWithLabels creates and registers a new labeled metric (CounterVec, GaugeVec, HistogramVec).
func (p *PrometheusMetrics) RegisterWithLabels(name, metricType, help string, labels []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch metricType {
	case Counter:
		counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
		if err := p.registry.Register(counterVec); err != nil {
			return err
		}
		p.counterVecs[name] = counterVec

	case Gauge:
		gaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
		if err := p.registry.Register(gaugeVec); err != nil {
			return err
		}
		p.gaugeVecs[name] = gaugeVec

	case Histogram:
		histogramVec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: p.buckets(name),
		}, labels)
		if err := p.registry.Register(histogramVec); err != nil {
			return err
		}
		p.histogramVecs[name] = histogramVec

	default:
		return fmt.Errorf("unknown metric type %q for metric %s", metricType, name)
	}
	return nil
}

// RecordWithLabels updates the value of a labeled metric. The labelValues must
// match the order and number of labels given at registration.
func (p *PrometheusMetrics) RecordWithLabels(name string, value float64, labelValues ...string) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if counterVec, ok := p.counterVecs[name]; ok {
		counterVec.WithLabelValues(labelValues...).Add(value)
		return
	}

	if gaugeVec, ok := p.gaugeVecs[name]; ok {
		gaugeVec.WithLabelValues(labelValues...).Set(value)
		return
	}

	if histogramVec, ok := p.histogramVecs[name]; ok {
		histogramVec.WithLabelValues(labelValues...).Observe(value)
	}
}

// Handler returns the HTTP handler that exposes the registered metrics for scraping.
func (p *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
