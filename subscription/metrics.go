// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package subscription

import (
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing counter.
type Counter struct {
	value int64
}

// Add adds delta to the counter.
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.value, delta)
}

// Value returns the current counter value.
func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

// Reset resets the counter to zero.
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Gauge tracks a value that moves in both directions.
type Gauge struct {
	Counter
}

// Inc increments the gauge.
func (g *Gauge) Inc() { g.Add(1) }

// Dec decrements the gauge.
func (g *Gauge) Dec() { g.Add(-1) }

var latencyBounds = []time.Duration{
	time.Millisecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	5 * time.Second,
}

var latencyLabels = []string{"1ms", "5ms", "10ms", "50ms", "100ms", "500ms", "1s", "5s", "+Inf"}

// LatencyHistogram tracks the round-trip time of server requests.
type LatencyHistogram struct {
	mu      sync.Mutex
	buckets [9]int64
	sum     time.Duration
	count   int64
	min     time.Duration
	max     time.Duration
}

// Observe records one round trip.
func (h *LatencyHistogram) Observe(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sum += d
	h.count++
	if h.count == 1 || d < h.min {
		h.min = d
	}
	if d > h.max {
		h.max = d
	}

	i := 0
	for i < len(latencyBounds) && d > latencyBounds[i] {
		i++
	}
	h.buckets[i]++
}

// Stats returns a snapshot of the histogram.
func (h *LatencyHistogram) Stats() LatencyStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := LatencyStats{
		Count:   h.count,
		Buckets: make(map[string]int64, len(latencyLabels)),
	}
	if h.count > 0 {
		stats.Avg = h.sum / time.Duration(h.count)
		stats.Min = h.min
		stats.Max = h.max
	}
	for i, n := range h.buckets {
		stats.Buckets[latencyLabels[i]] = n
	}
	return stats
}

// Reset clears the histogram.
func (h *LatencyHistogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buckets = [9]int64{}
	h.sum, h.count = 0, 0
	h.min, h.max = 0, 0
}

// LatencyStats holds latency statistics.
type LatencyStats struct {
	Count   int64            `json:"count"`
	Avg     time.Duration    `json:"avg"`
	Min     time.Duration    `json:"min"`
	Max     time.Duration    `json:"max"`
	Buckets map[string]int64 `json:"buckets"`
}

// Metrics holds subscription manager metrics. A single Metrics may be shared
// by every subscription of a worker.
type Metrics struct {
	ActiveSubscriptions Gauge
	MonitoredItems      Gauge
	DataChanges         Counter
	DroppedDataChanges  Counter
	StatusChanges       Counter
	Timeouts            Counter
	RequestErrors       Counter
	RequestLatency      LatencyHistogram
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// observe records the outcome of a server round trip started at start.
func (m *Metrics) observe(start time.Time, err error) {
	m.RequestLatency.Observe(time.Since(start))
	if err != nil {
		m.RequestErrors.Add(1)
	}
}

// Collect returns all metrics as a map (compatible with expvar).
func (m *Metrics) Collect() map[string]interface{} {
	return map[string]interface{}{
		"active_subscriptions": m.ActiveSubscriptions.Value(),
		"monitored_items":      m.MonitoredItems.Value(),
		"data_changes":         m.DataChanges.Value(),
		"dropped_data_changes": m.DroppedDataChanges.Value(),
		"status_changes":       m.StatusChanges.Value(),
		"timeouts":             m.Timeouts.Value(),
		"request_errors":       m.RequestErrors.Value(),
		"request_latency":      m.RequestLatency.Stats(),
	}
}

// Reset resets the counters. Gauges are left alone since they describe
// live state.
func (m *Metrics) Reset() {
	m.DataChanges.Reset()
	m.DroppedDataChanges.Reset()
	m.StatusChanges.Reset()
	m.Timeouts.Reset()
	m.RequestErrors.Reset()
	m.RequestLatency.Reset()
}
