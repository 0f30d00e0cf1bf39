// Copyright 2026 OpenRailAssociation Authors
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

// Package obsmetrics exposes ambient Prometheus instrumentation for the
// simulation engine process itself — events published, handler errors,
// faults recorded, and the current virtual clock — as distinct from the
// domain metrics pipeline in pkg/metrics, which is what answers
// capacity-planning questions about the yard. A nil *Registry is always
// safe: every method no-ops, so the core never requires a Prometheus
// registry to run.
package obsmetrics

import "github.com/prometheus/client_golang/prometheus"

// Registry bundles the ambient counters/gauges for one simulation run.
type Registry struct {
	reg *prometheus.Registry

	EventsPublished *prometheus.CounterVec
	HandlerErrors   prometheus.Counter
	ProcessFaults   *prometheus.CounterVec
	ClockMinutes    prometheus.Gauge
}

// NewRegistry builds and registers a fresh set of collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "popupsim_events_published_total",
			Help: "Domain events published on the event bus, by kind.",
		}, []string{"kind"}),
		HandlerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "popupsim_handler_errors_total",
			Help: "Event bus subscriber handlers that panicked or returned an error.",
		}),
		ProcessFaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "popupsim_process_faults_total",
			Help: "Coordinator process faults recorded by the engine, by coordinator.",
		}, []string{"coordinator"}),
		ClockMinutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "popupsim_sim_clock_minutes",
			Help: "Current virtual clock reading, in simulated minutes.",
		}),
	}

	reg.MustRegister(r.EventsPublished, r.HandlerErrors, r.ProcessFaults, r.ClockMinutes)
	return r
}

// Registerer exposes the underlying Prometheus registerer, e.g. to serve
// /metrics over HTTP. Returns nil for a nil Registry.
func (r *Registry) Registerer() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// ObserveEvent increments the published-event counter for kind.
func (r *Registry) ObserveEvent(kind string) {
	if r == nil {
		return
	}
	r.EventsPublished.WithLabelValues(kind).Inc()
}

// ObserveHandlerError increments the handler-error counter.
func (r *Registry) ObserveHandlerError() {
	if r == nil {
		return
	}
	r.HandlerErrors.Inc()
}

// ObserveFault increments the process-fault counter for coordinator.
func (r *Registry) ObserveFault(coordinator string) {
	if r == nil {
		return
	}
	r.ProcessFaults.WithLabelValues(coordinator).Inc()
}

// SetClock sets the clock gauge to the given simulated minutes.
func (r *Registry) SetClock(minutes float64) {
	if r == nil {
		return
	}
	r.ClockMinutes.Set(minutes)
}
