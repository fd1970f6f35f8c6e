package observability

import (
	"strconv"
	"sync"
	"time"
)

// RouteStats accumulates counters for one route/method/outcome combination.
type RouteStats struct {
	Requests      int64
	Errors        int64
	TotalDuration time.Duration
}

// Metrics keeps in-process request and error counters keyed by route, method,
// and outcome. It stands in for a real metrics backend.
type Metrics struct {
	mu    sync.Mutex
	stats map[string]*RouteStats
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{stats: make(map[string]*RouteStats)}
}

// RecordRequest counts one completed request and its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.get(path + "|" + method + "|" + strconv.Itoa(status))
	stats.Requests++
	stats.TotalDuration += duration
}

// RecordError counts one request that failed with the given error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(path + "|" + method + "|" + code).Errors++
}

// Snapshot copies the accumulated counters for inspection.
func (m *Metrics) Snapshot() map[string]RouteStats {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]RouteStats, len(m.stats))
	for key, stats := range m.stats {
		out[key] = *stats
	}
	return out
}

func (m *Metrics) get(key string) *RouteStats {
	stats, ok := m.stats[key]
	if !ok {
		stats = &RouteStats{}
		m.stats[key] = stats
	}
	return stats
}
