package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestEngineMetricsObserve(t *testing.T) {
	m := NewEngineMetrics(nil)
	m.ObserveGapQuery("ok", 4)
	m.ObserveGapQuery("no_working_hours", 0)
	m.ObserveValidation("professional_conflict")
	m.ObserveBatch(3, 1, 0.02)
}

func TestEngineMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)
	m.ObserveBatch(0, 2, 0.01)
}

func TestEngineMetricsNilSafe(t *testing.T) {
	var m *EngineMetrics
	m.ObserveGapQuery("ok", 1)
	m.ObserveValidation("ok")
	m.ObserveBatch(0, 0, 0)
}
