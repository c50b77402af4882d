package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics is the engine's metric set.  All Record methods are safe on a
// nil receiver so metrics stay optional for library callers.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPInFlight        GaugeVec

	AnalysisRequestsTotal CounterVec
	AnalysisDuration      HistogramVec
	EmptyChainTotal       CounterVec
	DomainTierTotal       CounterVec

	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	ConfigReloadsTotal CounterVec
	ErrorsTotal        CounterVec
}

var (
	DefaultHTTPDurationBuckets     = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	DefaultAnalysisDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5}
)

// NewAppMetrics registers the metric set on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "HTTP requests by route and status.", "method", "path", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request latency.", DefaultHTTPDurationBuckets, "method", "path"),
		HTTPInFlight:        collector.RegisterGauge("http_in_flight_requests", "HTTP requests being served.", "path"),

		AnalysisRequestsTotal: collector.RegisterCounter("analysis_requests_total", "Analyses by operation and outcome.", "operation", "status"),
		AnalysisDuration:      collector.RegisterHistogram("analysis_duration_seconds", "Analysis latency.", DefaultAnalysisDurationBuckets, "operation"),
		EmptyChainTotal:       collector.RegisterCounter("analysis_empty_chain_total", "Analyses whose instant fell outside every period."),
		DomainTierTotal:       collector.RegisterCounter("domain_tier_total", "Domain verdicts by domain and tier.", "domain", "tier"),

		CacheHitsTotal:   collector.RegisterCounter("cache_hits_total", "Cache hits.", "cache"),
		CacheMissesTotal: collector.RegisterCounter("cache_misses_total", "Cache misses.", "cache"),

		ConfigReloadsTotal: collector.RegisterCounter("config_reloads_total", "Configuration reloads by outcome.", "status"),
		ErrorsTotal:        collector.RegisterCounter("errors_total", "Errors by component and code.", "component", "code"),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordHTTPRequest counts one served request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordAnalysis counts one analysis operation and its latency.
func (m *AppMetrics) RecordAnalysis(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.AnalysisRequestsTotal.WithLabelValues(operation, status(err)).Inc()
	m.AnalysisDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordEmptyChain counts an instant outside every known period.
func (m *AppMetrics) RecordEmptyChain() {
	if m == nil {
		return
	}
	m.EmptyChainTotal.WithLabelValues().Inc()
}

// RecordDomainTier counts one domain verdict.
func (m *AppMetrics) RecordDomainTier(domain, tier string) {
	if m == nil {
		return
	}
	m.DomainTierTotal.WithLabelValues(domain, tier).Inc()
}

// RecordCacheAccess counts a hit or a miss on cache.
func (m *AppMetrics) RecordCacheAccess(cache string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordConfigReload counts a configuration reload.
func (m *AppMetrics) RecordConfigReload(err error) {
	if m == nil {
		return
	}
	m.ConfigReloadsTotal.WithLabelValues(status(err)).Inc()
}

// RecordError counts an error by component and error code.
func (m *AppMetrics) RecordError(component, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

//Personal.AI order the ending
