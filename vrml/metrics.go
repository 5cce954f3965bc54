// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the prometheus metrics of a [Browser].
// A nil *Metrics records nothing.
type Metrics struct {
	EventsEnqueued  prometheus.Counter
	EventsDelivered prometheus.Counter
	EventsEvicted   prometheus.Counter
	EventsFailed    prometheus.Counter
	Frames          prometheus.Counter
	Loads           *prometheus.CounterVec
	QueueDepth      prometheus.Gauge
}

// NewMetrics returns new metrics registered with reg.
// If reg is nil, the metrics are not registered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		EventsEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrml", Subsystem: "events", Name: "enqueued_total",
			Help: "Events added to the event queue.",
		}),
		EventsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrml", Subsystem: "events", Name: "delivered_total",
			Help: "Events delivered to their eventIn.",
		}),
		EventsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrml", Subsystem: "events", Name: "evicted_total",
			Help: "Events discarded because the event queue was full.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrml", Subsystem: "events", Name: "failed_total",
			Help: "Events whose delivery returned an error.",
		}),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrml", Subsystem: "browser", Name: "frames_total",
			Help: "Calls to Update.",
		}),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vrml", Subsystem: "browser", Name: "loads_total",
			Help: "World loads by result.",
		}, []string{"result"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrml", Subsystem: "events", Name: "queue_depth",
			Help: "Events in the event queue after the last update.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.EventsEnqueued, m.EventsDelivered, m.EventsEvicted, m.EventsFailed, m.Frames, m.Loads, m.QueueDepth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) enqueued(evicted bool) {
	if m == nil {
		return
	}
	m.EventsEnqueued.Inc()
	if evicted {
		m.EventsEvicted.Inc()
	}
}

func (m *Metrics) delivered(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.EventsFailed.Inc()
		return
	}
	m.EventsDelivered.Inc()
}

func (m *Metrics) frame(depth int) {
	if m == nil {
		return
	}
	m.Frames.Inc()
	m.QueueDepth.Set(float64(depth))
}

func (m *Metrics) load(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.Loads.WithLabelValues(result).Inc()
}
