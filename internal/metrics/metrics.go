// Package metrics records lint run metrics in a private Prometheus registry
// and writes them in the text exposition format for --metrics-out.
//
// Metrics:
//   - typedlint_files_total: files linted, by outcome (ok, fatal, crashed, cached)
//   - typedlint_problems_total: reported problems, by rule and severity
//   - typedlint_fixes_applied_total: fixes applied, by rule
//   - typedlint_file_duration_seconds: per-file pipeline duration
//   - typedlint_cache_lookups_total: cache lookups, by result (hit, miss)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "typedlint"

// Collector is safe for concurrent use. A nil *Collector records nothing.
type Collector struct {
	registry *prometheus.Registry

	files        *prometheus.CounterVec
	problems     *prometheus.CounterVec
	fixes        *prometheus.CounterVec
	fileDuration prometheus.Histogram
	cache        *prometheus.CounterVec
	runDuration  prometheus.Gauge
}

// New registers the lint metrics in registry; nil creates a fresh one.
func New(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	c := &Collector{
		registry: registry,
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_total",
				Help:      "Number of linted files by outcome",
			},
			[]string{"outcome"},
		),
		problems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "problems_total",
				Help:      "Number of reported problems by rule and severity",
			},
			[]string{"rule", "severity"},
		),
		fixes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fixes_applied_total",
				Help:      "Number of applied fixes by rule",
			},
			[]string{"rule"},
		),
		fileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "file_duration_seconds",
				Help:      "Duration of the per-file pipeline in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16), // 100µs .. 3s
			},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Number of result cache lookups by result",
			},
			[]string{"result"},
		),
		runDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall-clock duration of the last lint run",
			},
		),
	}
	registry.MustRegister(c.files, c.problems, c.fixes, c.fileDuration, c.cache, c.runDuration)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// File records one finished file.
func (c *Collector) File(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.files.WithLabelValues(outcome).Inc()
	if outcome != "cached" {
		c.fileDuration.Observe(d.Seconds())
	}
}

// Problem records one reported problem. Parse errors carry no rule id and
// are counted under "fatal".
func (c *Collector) Problem(ruleID, severity string) {
	if c == nil {
		return
	}
	if ruleID == "" {
		ruleID = "fatal"
	}
	c.problems.WithLabelValues(ruleID, severity).Inc()
}

// Fix records one applied fix.
func (c *Collector) Fix(ruleID string) {
	if c == nil {
		return
	}
	c.fixes.WithLabelValues(ruleID).Inc()
}

// CacheLookup records a result cache hit or miss.
func (c *Collector) CacheLookup(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cache.WithLabelValues(result).Inc()
}

// Run records the duration of a whole run.
func (c *Collector) Run(d time.Duration) {
	if c == nil {
		return
	}
	c.runDuration.Set(d.Seconds())
}

// WriteFile stores the current values at path atomically.
func (c *Collector) WriteFile(path string) error {
	if c == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.registry)
}
