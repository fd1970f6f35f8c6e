package observability

import (
	"testing"
	"time"
)

func TestMetricsAccumulatePerRoute(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/auth/signin", "POST", 200, 10*time.Millisecond)
	m.RecordRequest("/api/auth/signin", "POST", 200, 5*time.Millisecond)
	m.RecordRequest("/api/auth/signin", "POST", 401, time.Millisecond)
	m.RecordError("/api/auth/signin", "POST", "UNAUTHORIZED")

	snapshot := m.Snapshot()

	ok := snapshot["/api/auth/signin|POST|200"]
	if ok.Requests != 2 || ok.TotalDuration != 15*time.Millisecond {
		t.Errorf("200 stats = %+v, want 2 requests over 15ms", ok)
	}
	if snapshot["/api/auth/signin|POST|401"].Requests != 1 {
		t.Error("401 request not counted")
	}
	if snapshot["/api/auth/signin|POST|UNAUTHORIZED"].Errors != 1 {
		t.Error("error code not counted")
	}
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "INTERNAL_ERROR")
	if m.Snapshot() != nil {
		t.Error("nil metrics snapshot must be nil")
	}
}
