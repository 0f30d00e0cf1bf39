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

// Package tracing wraps the OpenTelemetry SDK around a simulation run. It is
// ambient observability about the run itself (how long did it take, which
// coordinator was active) — distinct from the domain metrics pipeline in
// pkg/metrics, which answers capacity-planning questions from the event
// stream. A nil *Provider is always safe to use: every method no-ops when
// tracing was never configured, so the simulation core never requires an
// OpenTelemetry collector to be present.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Provider owns a tracer provider scoped to one simulation run.
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer trace.Tracer
}

// NewProvider builds a Provider for the given service name/version. Callers
// that don't want tracing can simply not call this and pass a nil *Provider
// around; every method below tolerates it.
func NewProvider(serviceName, version string, opts ...sdktrace.TracerProviderOption) (*Provider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracing: build resource: %w", err)
	}

	allOpts := append([]sdktrace.TracerProviderOption{sdktrace.WithResource(res)}, opts...)
	tp := sdktrace.NewTracerProvider(allOpts...)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp, tracer: tp.Tracer("popupsim/orchestrator")}, nil
}

// Shutdown flushes pending spans and releases resources.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

// StartRun opens the root span for one orchestrator.Run call.
func (p *Provider) StartRun(ctx context.Context, scenarioID string) (context.Context, trace.Span) {
	if p == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return p.tracer.Start(ctx, "simulation.run", trace.WithAttributes(
		attribute.String("scenario.id", scenarioID),
	))
}

// StartCoordinatorStep opens a child span for one coordinator loop
// iteration, tagged with the simulated clock reading so traces can be
// correlated with the event stream.
func (p *Provider) StartCoordinatorStep(ctx context.Context, coordinator string, simTime float64) (context.Context, trace.Span) {
	if p == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return p.tracer.Start(ctx, "coordinator."+coordinator, trace.WithAttributes(
		attribute.String("coordinator", coordinator),
		attribute.Float64("sim_time", simTime),
	))
}

// EndWithError ends a span, recording err as the span's status when non-nil.
// Safe to call with a nil span (as returned when tracing is disabled).
func EndWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
