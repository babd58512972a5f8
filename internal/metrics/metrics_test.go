package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.RendersTotal == nil {
		t.Error("RendersTotal not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("POST", "/render", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("POST", "/render", "200", 50*time.Millisecond)
	r.RecordHTTPRequest("POST", "/render", "400", 5*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("POST", "/render", "200")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Counter value = %v, want 2", metric.Counter.GetValue())
	}
}

func TestRecordRender(t *testing.T) {
	r := NewRegistry()

	r.RecordRender("html", 4, 2, 12000)
	r.RecordRender("json", 10, 9, 800)
	r.RecordRenderError("html")

	var metric dto.Metric
	if err := r.RendersTotal.WithLabelValues("html", "success").Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("html success = %v, want 1", metric.Counter.GetValue())
	}

	metric.Reset()
	if err := r.RendersTotal.WithLabelValues("html", "error").Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("html error = %v, want 1", metric.Counter.GetValue())
	}

	metric.Reset()
	if err := r.RenderNodes.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if got := metric.Histogram.GetSampleCount(); got != 2 {
		t.Errorf("node samples = %v, want 2", got)
	}
	if got := metric.Histogram.GetSampleSum(); got != 14 {
		t.Errorf("node sum = %v, want 14", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordRender("html", 1, 0, 100)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `graphfocus_renders_total{format="html",status="success"} 1`) {
		t.Errorf("render counter missing from exposition:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("expected go collector metrics")
	}
}
