package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLeadMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)
	m.ObserveSubmission("succeeded")
	m.ObserveSubmission("failed_but_saved")
	m.ObserveSubmission("failed_but_saved")
	m.ObserveFallback("transport")
	m.ObserveStoreError("append")
	m.ObserveExport("csv")
	m.ObserveTransportLatency(true, 0.2)

	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("failed_but_saved")); got != 2 {
		t.Fatalf("expected 2 fallback submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.fallbackTotal.WithLabelValues("transport")); got != 1 {
		t.Fatalf("expected 1 transport fallback, got %v", got)
	}
	if got := testutil.ToFloat64(m.exportsTotal.WithLabelValues("csv")); got != 1 {
		t.Fatalf("expected 1 csv export, got %v", got)
	}
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission("succeeded")
	m.ObserveFallback("validation")
	m.ObserveStoreError("read")
	m.ObserveExport("xlsx")
	m.ObserveTransportLatency(false, 0.1)
}
