package observability

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Metrics provides in-memory request and error counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	requestMillis map[string]int64
	errorCount    map[string]int64
}

// RouteStat is one row of a metrics snapshot.
type RouteStat struct {
	Key         string `json:"key"`
	Count       int64  `json:"count"`
	TotalMillis int64  `json:"total_ms,omitempty"`
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Requests []RouteStat `json:"requests"`
	Errors   []RouteStat `json:"errors"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		requestMillis: make(map[string]int64),
		errorCount:    make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := method + " " + route + " " + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestMillis[key] += duration.Milliseconds()
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	key := method + " " + route + " " + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the counters, sorted by key.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{Requests: []RouteStat{}, Errors: []RouteStat{}}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, count := range m.requestCount {
		snap.Requests = append(snap.Requests, RouteStat{Key: key, Count: count, TotalMillis: m.requestMillis[key]})
	}
	for key, count := range m.errorCount {
		snap.Errors = append(snap.Errors, RouteStat{Key: key, Count: count})
	}
	sort.Slice(snap.Requests, func(i, j int) bool { return snap.Requests[i].Key < snap.Requests[j].Key })
	sort.Slice(snap.Errors, func(i, j int) bool { return snap.Errors[i].Key < snap.Errors[j].Key })
	return snap
}
