// Package metrics provides an abstract interface for recording and
// managing the metrics of the checkwriter services. It offers a small API for
// registering and recording standard and labeled metrics.
//
// Usage Example:
//
//	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry())
//	m.RegisterWithLabels("checkwriter_conversions_total", "Counter", "Numbers converted to words", []string{"outcome"})
//	m.RecordWithLabels("checkwriter_conversions_total", 1, "ok")
package metrics

// Metric types accepted by Register and RegisterWithLabels.
const (
	Counter   = "Counter"
	Gauge     = "Gauge"
	Histogram = "Histogram"
)

type Metrics interface {
	Register(name, metricType, help string) error
	Record(name string, value float64)
	RegisterWithLabels(name, metricType, help string, labels []string) error
	RecordWithLabels(name string, value float64, labelValues ...string)
}

// BucketSetter is implemented by backends whose histogram buckets can be
// chosen before the histogram is registered.
type BucketSetter interface {
	SetCustomBuckets(name string, buckets []float64)
}

// SetBuckets sets the buckets of histogram name when m supports it.
func SetBuckets(m Metrics, name string, buckets []float64) {
	if bs, ok := m.(BucketSetter); ok {
		bs.SetCustomBuckets(name, buckets)
	}
}
