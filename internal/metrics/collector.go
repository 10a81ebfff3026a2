// Package metrics provides runtime statistics for the name and chat pipelines,
// kept in memory and mirrored to Prometheus.
package metrics

import (
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names for the collector.
const (
	OpLLMGenerate = "llm_generate"
	OpNames       = "names"
	OpChat        = "chat"
)

// Pipeline outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

// OperationMetrics holds aggregated timings for a single operation type.
type OperationMetrics struct {
	Count     int64
	Errors    int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	Errors      int64   `json:"errors"`
	TotalTimeMs int64   `json:"totalTimeMs"`
	AvgTimeMs   float64 `json:"avgTimeMs"`
	MinTimeMs   int64   `json:"minTimeMs"`
	MaxTimeMs   int64   `json:"maxTimeMs"`
}

// Snapshot represents the full statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64                     `json:"uptimeSeconds"`
	LLMGenerate   *OperationSnapshot          `json:"llmGenerate,omitempty"`
	Names         *OperationSnapshot          `json:"names,omitempty"`
	Chat          *OperationSnapshot          `json:"chat,omitempty"`
	Outcomes      map[string]map[string]int64 `json:"outcomes"`
}

// Collector aggregates runtime statistics.
// All methods are thread-safe and safe to call on a nil *Collector.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
	outcomes  map[string]map[string]int64

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector creates a new metrics collector. Its Prometheus series are
// only exported once Register is called.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
		outcomes:  make(map[string]map[string]int64),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astroname_pipeline_requests_total",
				Help: "Pipeline invocations by pipeline and outcome",
			},
			[]string{"pipeline", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astroname_operation_duration_seconds",
				Help:    "Duration of pipeline and LLM operations in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
	}
}

// Register exposes the collector's series on reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	if c == nil {
		return nil
	}
	for _, col := range []prometheus.Collector{c.requests, c.duration} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation; failed marks it as an error.
func (c *Collector) RecordTiming(op string, duration time.Duration, failed bool) {
	if c == nil {
		return
	}
	c.duration.WithLabelValues(op).Observe(duration.Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration
	if failed {
		m.Errors++
	}
	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordOutcome counts a pipeline result, e.g. ("names", OutcomeFallback).
func (c *Collector) RecordOutcome(pipeline, outcome string) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(pipeline, outcome).Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	byOutcome, ok := c.outcomes[pipeline]
	if !ok {
		byOutcome = make(map[string]int64)
		c.outcomes[pipeline] = byOutcome
	}
	byOutcome[outcome]++
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}
	return &OperationSnapshot{
		Count:       m.Count,
		Errors:      m.Errors,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{Outcomes: map[string]map[string]int64{}}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	outcomes := make(map[string]map[string]int64, len(c.outcomes))
	for pipeline, byOutcome := range c.outcomes {
		copied := make(map[string]int64, len(byOutcome))
		for k, v := range byOutcome {
			copied[k] = v
		}
		outcomes[pipeline] = copied
	}

	return Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		LLMGenerate:   snapshotOp(c.ops[OpLLMGenerate]),
		Names:         snapshotOp(c.ops[OpNames]),
		Chat:          snapshotOp(c.ops[OpChat]),
		Outcomes:      outcomes,
	}
}
