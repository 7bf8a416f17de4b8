package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead form and store.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	fallbackTotal    *prometheus.CounterVec
	storeErrorsTotal *prometheus.CounterVec
	exportsTotal     *prometheus.CounterVec
	transportLatency *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rollerup",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead form submissions by terminal state",
		}, []string{"state"}),
		fallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rollerup",
			Subsystem: "leads",
			Name:      "fallback_saves_total",
			Help:      "Leads saved to the local store instead of the webhook",
		}, []string{"reason"}),
		storeErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rollerup",
			Subsystem: "leads",
			Name:      "store_errors_total",
			Help:      "Local lead store failures",
		}, []string{"op"}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rollerup",
			Subsystem: "leads",
			Name:      "exports_total",
			Help:      "Admin lead exports by format",
		}, []string{"format"}),
		transportLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rollerup",
			Subsystem: "leads",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of the outbound lead webhook call",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.fallbackTotal, m.storeErrorsTotal, m.exportsTotal, m.transportLatency)
	return m
}

func (m *LeadMetrics) ObserveSubmission(state string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(state).Inc()
}

// ObserveFallback counts a fallback save; reason is "validation" or "transport".
func (m *LeadMetrics) ObserveFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbackTotal.WithLabelValues(reason).Inc()
}

func (m *LeadMetrics) ObserveStoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrorsTotal.WithLabelValues(op).Inc()
}

func (m *LeadMetrics) ObserveExport(format string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(format).Inc()
}

func (m *LeadMetrics) ObserveTransportLatency(success bool, seconds float64) {
	if m == nil {
		return
	}
	outcome := "error"
	if success {
		outcome = "ok"
	}
	m.transportLatency.WithLabelValues(outcome).Observe(seconds)
}
