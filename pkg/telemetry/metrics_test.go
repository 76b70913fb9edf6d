package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/tessel/pkg/dispatch"
	"github.com/vango-dev/tessel/pkg/dom"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/geom"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

// fixture is a 4x1 screen holding one clickable widget.
func fixture(t *testing.T, onClick dom.MouseHandler, mw ...dispatch.Middleware) *dispatch.Dispatcher {
	t.Helper()
	tr := dom.NewTree()
	k := tr.Create(dom.KindWidget)
	if err := tr.Insert(tr.Root(), k, dom.NodeKey{}); err != nil {
		t.Fatal(err)
	}
	tr.SetHandlers(k, dom.Handlers{OnClick: onClick})
	tr.Layout(geom.R(0, 0, 4, 1))
	return dispatch.New(tr, dispatch.WithMiddleware(mw...))
}

func clickAt(d *dispatch.Dispatcher, x int) {
	d.Dispatch(event.Mouse{X: x, Button: event.ButtonLeft, Action: event.MousePress})
	d.Dispatch(event.Mouse{X: x, Button: event.ButtonLeft, Action: event.MouseRelease})
}

func TestPrometheusMiddleware_RecordsStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler dom.MouseHandler
		status  string
	}{
		{"handled", func(event.Mouse, *event.Handle) {}, "handled"},
		{"stopped", func(_ event.Mouse, h *event.Handle) { h.StopPropagation() }, "stopped"},
		{"unhandled", nil, "unhandled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics()
			d := fixture(t, tt.handler, m.Middleware())
			clickAt(d, 0)

			if got := metricCounterValue(t, m.eventsTotal.WithLabelValues("mouse_up", tt.status)); got != 1 {
				t.Errorf("events_total(mouse_up,%s) = %v, want 1", tt.status, got)
			}
			if got := metricCounterValue(t, m.eventsTotal.WithLabelValues("mouse_down", "unhandled")); got != 1 {
				t.Errorf("events_total(mouse_down,unhandled) = %v, want 1", got)
			}
			if got := metricHistogramCount(t, m.eventDuration.WithLabelValues("mouse_up")); got != 1 {
				t.Errorf("event_duration_seconds(mouse_up) count = %d, want 1", got)
			}
		})
	}
}

func TestPrometheusMiddleware_RecordsPanicAndRepanics(t *testing.T) {
	m := NewMetrics()
	d := fixture(t, func(event.Mouse, *event.Handle) { panic("boom") }, m.Middleware())

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("recover() = %v, want boom", r)
			}
		}()
		clickAt(d, 0)
	}()

	if got := metricCounterValue(t, m.eventPanics.WithLabelValues("mouse_up")); got != 1 {
		t.Errorf("event_panics_total = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.eventsTotal.WithLabelValues("mouse_up", "panic")); got != 1 {
		t.Errorf("events_total(panic) = %v, want 1", got)
	}
}

func TestMetricsAreIsolatedPerInstance(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.RecordFrame(time.Millisecond, 10, 2)

	if got := metricCounterValue(t, b.redraws); got != 0 {
		t.Errorf("second instance saw %v redraws", got)
	}
	if got := metricGaugeValue(t, a.treeNodes); got != 10 {
		t.Errorf("tree_nodes = %v, want 10", got)
	}
	if got := metricGaugeValue(t, a.focusables); got != 2 {
		t.Errorf("focusable_nodes = %v, want 2", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics(WithNamespace("demo"))
	m.RecordFrame(2*time.Millisecond, 3, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{"demo_redraws_total 1", "demo_tree_nodes 3", "demo_frame_duration_seconds_count 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
