package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/vicore/internal/event"
)

// Metrics counts keys fed to the session and the events it sends.
type Metrics struct {
	keyCount   atomic.Uint64
	keyTotalNs atomic.Int64
	keyMaxNs   atomic.Int64
	keyErrors  atomic.Uint64

	bufferChanges atomic.Uint64
	modeChanges   atomic.Uint64
	cursorMoves   atomic.Uint64
	notices       atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records the handling of one key.
func (m *Metrics) RecordKey(d time.Duration, err error) {
	ns := d.Nanoseconds()
	m.keyCount.Add(1)
	m.keyTotalNs.Add(ns)
	if err != nil {
		m.keyErrors.Add(1)
	}
	for {
		old := m.keyMaxNs.Load()
		if ns <= old || m.keyMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent counts a session event. It is a bus handler.
func (m *Metrics) RecordEvent(e event.Event) {
	switch e.Kind {
	case event.BufferChanged:
		m.bufferChanges.Add(1)
	case event.ModeChanged:
		m.modeChanges.Add(1)
	case event.CursorMoved:
		m.cursorMoves.Add(1)
	case event.Notice:
		m.notices.Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Keys          uint64
	KeyErrors     uint64
	KeyAvg        time.Duration
	KeyMax        time.Duration
	BufferChanges uint64
	ModeChanges   uint64
	CursorMoves   uint64
	Notices       uint64
	Uptime        time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Keys:          m.keyCount.Load(),
		KeyErrors:     m.keyErrors.Load(),
		KeyMax:        time.Duration(m.keyMaxNs.Load()),
		BufferChanges: m.bufferChanges.Load(),
		ModeChanges:   m.modeChanges.Load(),
		CursorMoves:   m.cursorMoves.Load(),
		Notices:       m.notices.Load(),
		Uptime:        time.Since(m.startTime),
	}
	if s.Keys > 0 {
		s.KeyAvg = time.Duration(m.keyTotalNs.Load() / int64(s.Keys))
	}
	return s
}
