// Package prom exports scope and channel events as Prometheus metrics.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/NetPo4ki/go-syncx/chanx"
	"github.com/NetPo4ki/go-syncx/scope"
)

const namespace = "syncx"

var (
	_ scope.Observer       = (*Metrics)(nil)
	_ chanx.Observer       = (*Metrics)(nil)
	_ prometheus.Collector = (*Metrics)(nil)
)

// Metrics is an observer for scopes and channels backed by Prometheus
// collectors. Register it with a prometheus.Registerer to export it.
type Metrics struct {
	// tasks
	activeTasks   prometheus.Gauge
	tasksStarted  prometheus.Counter
	tasksFinished *prometheus.CounterVec
	taskDuration  prometheus.Histogram

	// scopes
	scopesCreated   prometheus.Counter
	scopesCancelled prometheus.Counter
	joinWait        prometheus.Histogram

	// channels
	sends           *prometheus.CounterVec
	receives        *prometheus.CounterVec
	sendsBlocked    *prometheus.CounterVec
	receivesBlocked *prometheus.CounterVec
	sendWait        *prometheus.HistogramVec
	receiveWait     *prometheus.HistogramVec
}

// New returns a new Metrics observer.
func New() *Metrics {
	taskBuckets := prometheus.DefBuckets
	waitBuckets := prometheus.ExponentialBuckets(1e-6, 10, 8)
	byChannel := []string{"channel"}

	return &Metrics{
		activeTasks:   prometheus.NewGauge(prometheus.GaugeOpts(opts("scope", "active_tasks", "Tasks currently running inside a scope."))),
		tasksStarted:  prometheus.NewCounter(prometheus.CounterOpts(opts("scope", "tasks_started_total", "Tasks started."))),
		tasksFinished: prometheus.NewCounterVec(prometheus.CounterOpts(opts("scope", "tasks_finished_total", "Tasks finished, by result (ok, error, panic).")), []string{"result"}),
		taskDuration:  prometheus.NewHistogram(histOpts("scope", "task_duration_seconds", "Task run time.", taskBuckets)),

		scopesCreated:   prometheus.NewCounter(prometheus.CounterOpts(opts("scope", "created_total", "Scopes created."))),
		scopesCancelled: prometheus.NewCounter(prometheus.CounterOpts(opts("scope", "cancelled_total", "Scopes cancelled."))),
		joinWait:        prometheus.NewHistogram(histOpts("scope", "join_wait_seconds", "Time spent in Wait.", taskBuckets)),

		sends:           prometheus.NewCounterVec(prometheus.CounterOpts(opts("chan", "sends_total", "Values sent.")), byChannel),
		receives:        prometheus.NewCounterVec(prometheus.CounterOpts(opts("chan", "receives_total", "Values received.")), byChannel),
		sendsBlocked:    prometheus.NewCounterVec(prometheus.CounterOpts(opts("chan", "sends_blocked_total", "Sends that found the channel full.")), byChannel),
		receivesBlocked: prometheus.NewCounterVec(prometheus.CounterOpts(opts("chan", "receives_blocked_total", "Receives that found the channel empty.")), byChannel),
		sendWait:        prometheus.NewHistogramVec(histOpts("chan", "send_wait_seconds", "Time from calling Send to its return.", waitBuckets), byChannel),
		receiveWait:     prometheus.NewHistogramVec(histOpts("chan", "receive_wait_seconds", "Time from calling Receive to its return.", waitBuckets), byChannel),
	}
}

func opts(subsystem, name, help string) prometheus.Opts {
	return prometheus.Opts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help}
}

func histOpts(subsystem, name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.activeTasks, m.tasksStarted, m.tasksFinished, m.taskDuration,
		m.scopesCreated, m.scopesCancelled, m.joinWait,
		m.sends, m.receives, m.sendsBlocked, m.receivesBlocked, m.sendWait, m.receiveWait,
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// ScopeCreated records scope creation.
func (m *Metrics) ScopeCreated(_ context.Context) {
	m.scopesCreated.Inc()
}

// ScopeCancelled records scope cancellation.
func (m *Metrics) ScopeCancelled(_ context.Context, _ error) {
	m.scopesCancelled.Inc()
}

// ScopeJoined records a join and its wait time.
func (m *Metrics) ScopeJoined(_ context.Context, wait time.Duration) {
	m.joinWait.Observe(wait.Seconds())
}

// TaskStarted increments active and started counters.
func (m *Metrics) TaskStarted(_ context.Context) {
	m.activeTasks.Inc()
	m.tasksStarted.Inc()
}

// TaskFinished decrements active tasks and records the result and duration.
// Panicked tasks report no duration.
func (m *Metrics) TaskFinished(_ context.Context, dur time.Duration, err error, panicked bool) {
	result := "ok"
	switch {
	case panicked:
		result = "panic"
	case err != nil:
		result = "error"
	}
	m.activeTasks.Dec()
	m.tasksFinished.WithLabelValues(result).Inc()
	if !panicked {
		m.taskDuration.Observe(dur.Seconds())
	}
}

// SendBlocked records a send that had to wait for room.
func (m *Metrics) SendBlocked(name string) {
	m.sendsBlocked.WithLabelValues(name).Inc()
}

// ReceiveBlocked records a receive that had to wait for a value.
func (m *Metrics) ReceiveBlocked(name string) {
	m.receivesBlocked.WithLabelValues(name).Inc()
}

// Sent records a completed send.
func (m *Metrics) Sent(name string, wait time.Duration) {
	m.sends.WithLabelValues(name).Inc()
	m.sendWait.WithLabelValues(name).Observe(wait.Seconds())
}

// Received records a completed receive.
func (m *Metrics) Received(name string, wait time.Duration) {
	m.receives.WithLabelValues(name).Inc()
	m.receiveWait.WithLabelValues(name).Observe(wait.Seconds())
}

// Snapshot exposes a copy of current metric values for inspection.
type Snapshot struct {
	ActiveTasks     int64
	TasksStarted    int64
	TasksFinished   int64
	TasksErrored    int64
	TasksPanicked   int64
	ScopesCreated   int64
	ScopesCancelled int64
	Joins           int64
}

// ChannelSnapshot holds the counters of one channel.
type ChannelSnapshot struct {
	Sends           int64
	Receives        int64
	SendsBlocked    int64
	ReceivesBlocked int64
}

// GetSnapshot returns the current scope metrics.
func (m *Metrics) GetSnapshot() Snapshot {
	ok := counterValue(m.tasksFinished.WithLabelValues("ok"))
	errored := counterValue(m.tasksFinished.WithLabelValues("error"))
	panicked := counterValue(m.tasksFinished.WithLabelValues("panic"))
	return Snapshot{
		ActiveTasks:     gaugeValue(m.activeTasks),
		TasksStarted:    counterValue(m.tasksStarted),
		TasksFinished:   ok + errored + panicked,
		TasksErrored:    errored,
		TasksPanicked:   panicked,
		ScopesCreated:   counterValue(m.scopesCreated),
		ScopesCancelled: counterValue(m.scopesCancelled),
		Joins:           histogramCount(m.joinWait),
	}
}

// GetChannelSnapshot returns the counters recorded for the named channel.
func (m *Metrics) GetChannelSnapshot(name string) ChannelSnapshot {
	return ChannelSnapshot{
		Sends:           counterValue(m.sends.WithLabelValues(name)),
		Receives:        counterValue(m.receives.WithLabelValues(name)),
		SendsBlocked:    counterValue(m.sendsBlocked.WithLabelValues(name)),
		ReceivesBlocked: counterValue(m.receivesBlocked.WithLabelValues(name)),
	}
}

func read(m prometheus.Metric) *dto.Metric {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return &dto.Metric{}
	}
	return &out
}

func counterValue(c prometheus.Counter) int64 {
	return int64(read(c).GetCounter().GetValue())
}

func gaugeValue(g prometheus.Gauge) int64 {
	return int64(read(g).GetGauge().GetValue())
}

func histogramCount(h prometheus.Histogram) int64 {
	return int64(read(h).GetHistogram().GetSampleCount())
}
