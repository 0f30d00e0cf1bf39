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

// Package orchestrator builds the engine, the event bus, every service and
// coordinator, and the metrics pipeline from a scenario (§4.I), runs the
// simulation to a deadline or quiescence, and returns the result record of
// §6.3/§6.4: a success flag, a duration, and the metrics dictionary.
package orchestrator

import (
	"context"
	"log/slog"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/log"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/obsmetrics"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/scenario"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/simerr"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/tracing"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/coordinators"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/engine"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/eventbus"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/metrics"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/resources"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/services"
)

// Result is the record §6.3/§6.4 name: whether the run succeeded, how long
// it simulated, the aggregated metrics by category, and every fault the run
// recorded without aborting.
type Result struct {
	Success           bool
	Duration          float64
	Metrics           map[string][]metrics.Result
	FailureMessage    string
	EngineFaults      []engine.Fault
	CoordinatorFaults []coordinators.FaultEntry
	QuiescedEarly     bool
}

// Option configures an orchestrator run beyond the scenario itself.
type Option func(*runConfig)

type runConfig struct {
	logger        *slog.Logger
	obs           *obsmetrics.Registry
	tracer        *tracing.Provider
	bucketMinutes float64
}

// WithLogger overrides the default logger (internal/log's DefaultConfig).
func WithLogger(logger *slog.Logger) Option {
	return func(rc *runConfig) { rc.logger = logger }
}

// WithObservability wires ambient Prometheus counters into the run. A nil
// registry (the default) makes every observation a no-op.
func WithObservability(obs *obsmetrics.Registry) Option {
	return func(rc *runConfig) { rc.obs = obs }
}

// WithTracing wires an OpenTelemetry provider into the run. A nil provider
// (the default) makes every span a no-op.
func WithTracing(tracer *tracing.Provider) Option {
	return func(rc *runConfig) { rc.tracer = tracer }
}

// WithTrackBucketMinutes overrides the track-occupancy collector's bucket
// width; non-positive falls back to the 60-minute default.
func WithTrackBucketMinutes(minutes float64) Option {
	return func(rc *runConfig) { rc.bucketMinutes = minutes }
}

// Run validates sc, builds the simulation from it, and runs it to until (nil
// meaning run until every coordinator blocks forever, which in practice
// means the caller should always pass a deadline — the five coordinators
// never terminate on their own except train-arrival). It never returns a Go
// error for a failed simulation run; failures are reported inside Result,
// per §7's "result includes a success flag ... failures carry a message and
// the clock at failure". A non-nil error return means the scenario itself
// was rejected before any process was scheduled (a configuration fault).
func Run(ctx context.Context, sc *scenario.Scenario, until *float64, opts ...Option) (*Result, error) {
	rc := &runConfig{logger: log.New(log.DefaultConfig())}
	for _, opt := range opts {
		opt(rc)
	}

	if err := scenario.Validate(sc); err != nil {
		return nil, err
	}

	_, span := rc.tracer.StartRun(ctx, sc.ID)
	defer tracing.EndWithError(span, nil)

	eng := engine.New()
	bus := eventbus.New()
	bus.OnPostPublish(func(event domain.Event) {
		rc.obs.ObserveEvent(string(event.Kind))
	})

	registry := metrics.NewRegistry()
	registry.Register(bus, metrics.NewWagonFlowTimeCollector())
	registry.Register(bus, metrics.NewLocomotiveBreakdownCollector())
	registry.Register(bus, metrics.NewWagonMovementCollector())
	registry.Register(bus, metrics.NewWorkshopCollector())
	registry.Register(bus, metrics.NewTrackOccupancyCollector(rc.bucketMinutes))
	registry.Register(bus, metrics.NewBottleneckDetector(metrics.DefaultBottleneckThresholds()))
	eng.OnPreRun(registry.Reset)

	runtime, err := build(eng, bus, sc)
	if err != nil {
		return nil, err
	}

	bus.Publish(domain.NewEvent(domain.KindSimulationStarted, 0, "orchestrator", domain.SimulationStartedPayload{ScenarioID: sc.ID}))

	for name, fn := range runtime.processes {
		eng.Schedule(name, fn)
	}

	logger := log.WithContext(rc.logger, "orchestrator")
	if err := eng.Run(until); err != nil {
		bus.Publish(domain.NewEvent(domain.KindSimulationFailed, eng.CurrentTime(), "orchestrator", domain.SimulationFailedPayload{
			Coordinator: "orchestrator",
			Message:     err.Error(),
		}))
		logger.Error("simulation run failed", log.Error(err))
		return &Result{
			Success:           false,
			Duration:          eng.CurrentTime(),
			Metrics:           registry.ByCategory(),
			FailureMessage:    err.Error(),
			EngineFaults:      eng.Faults(),
			CoordinatorFaults: runtime.ctx.Faults.Entries(),
		}, nil
	}

	for _, f := range eng.Faults() {
		rc.obs.ObserveFault(f.Process)
	}
	rc.obs.SetClock(eng.CurrentTime())

	if eng.QuiescedEarly() {
		logger.Warn("simulation reached early quiescence", slog.Float64(log.SimTimeKey, eng.CurrentTime()))
	}

	bus.Publish(domain.NewEvent(domain.KindSimulationEnded, eng.CurrentTime(), "orchestrator", domain.SimulationEndedPayload{
		Success:  true,
		Duration: eng.CurrentTime(),
	}))

	return &Result{
		Success:           true,
		Duration:          eng.CurrentTime(),
		Metrics:           registry.ByCategory(),
		EngineFaults:      eng.Faults(),
		CoordinatorFaults: runtime.ctx.Faults.Entries(),
		QuiescedEarly:     eng.QuiescedEarly(),
	}, nil
}

// runtime bundles everything build assembled: the shared coordinator
// context plus every named process ready for Engine.Schedule.
type runtime struct {
	ctx       *coordinators.Context
	processes map[string]engine.ProcessFunc
}

// build translates a validated scenario into running simulation state:
// tracks, locomotives, workshops, routes, the coordinator Context, and the
// full set of coordinator processes (one dispatch coordinator, one
// train-arrival coordinator, and one feed/pickup pair per workshop).
func build(eng *engine.Engine, bus *eventbus.Bus, sc *scenario.Scenario) (*runtime, error) {
	tracks := make([]*domain.Track, 0, len(sc.Tracks))
	for _, tc := range sc.Tracks {
		tracks = append(tracks, domain.NewTrack(tc.ID, domain.TrackType(tc.Type), tc.Length))
	}
	trackMgr := resources.NewTrackCapacityManager(tracks, sc.RetrofitSelectionStrategy, sc.ParkingSelectionStrategy, 1, bus)

	locos := make([]*domain.Locomotive, 0, len(sc.Locomotives))
	for _, lc := range sc.Locomotives {
		locos = append(locos, domain.NewLocomotive(lc.ID, lc.Track, lc.MaxCapacity))
	}
	locoPool := resources.NewLocomotivePool(eng, locos)

	routes := make([]domain.Route, 0, len(sc.Routes))
	for _, rc := range sc.Routes {
		routes = append(routes, domain.Route{ID: rc.ID, TrackSequence: rc.TrackSequence, DurationMinutes: rc.DurationMinutes})
	}
	routeTable := domain.NewRouteTable(routes)

	times := domain.ProcessTimes{
		TrainToHumpDelay:         sc.ProcessTimes.TrainToHumpDelay,
		WagonHumpInterval:        sc.ProcessTimes.WagonHumpInterval,
		ScrewCouplingTime:        sc.ProcessTimes.ScrewCouplingTime,
		ScrewDecouplingTime:      sc.ProcessTimes.ScrewDecouplingTime,
		DACCouplingTime:          sc.ProcessTimes.DACCouplingTime,
		DACDecouplingTime:        sc.ProcessTimes.DACDecouplingTime,
		WagonMoveBetweenStations: sc.ProcessTimes.WagonMoveBetweenStations,
		RetrofitTime:             sc.ProcessTimes.RetrofitTime,
		ParkingDelay:             sc.ProcessTimes.ParkingDelay,
	}
	locoSvc := services.NewLocomotiveService(locoPool, routeTable, times, bus)

	workshops := make([]*domain.Workshop, 0, len(sc.Workshops))
	workshopPools := make(map[string]*resources.WorkshopStationPool, len(sc.Workshops))
	queues := make(map[string]*coordinators.WorkshopQueues, len(sc.Workshops))
	for _, wc := range sc.Workshops {
		ws := domain.NewWorkshop(wc.ID, wc.Track, wc.RetrofitStations)
		workshops = append(workshops, ws)
		workshopPools[wc.ID] = resources.NewWorkshopStationPool(eng, ws)
		queues[wc.ID] = &coordinators.WorkshopQueues{
			Ready:     eng.CreateStore(0),
			Completed: eng.CreateStore(0),
		}
	}

	collectionTrackID, retrofittedTrackID, err := trackRoles(sc.Tracks)
	if err != nil {
		return nil, err
	}

	cctx := &coordinators.Context{
		Engine:      eng,
		Bus:         bus,
		Locomotives: locoSvc,
		Tracks:      trackMgr,
		WagonState:  services.NewWagonStateManager(bus),
		Selector:    services.NewWagonSelector(),
		Distributor: services.NewWorkshopDistributor(workshops),

		Workshops: workshopPools,
		Queues:    queues,

		CollectionTrackID:  collectionTrackID,
		RetrofittedTrackID: retrofittedTrackID,
		Times:              times,
		DeliveryStrategy:   sc.LocoDeliveryStrategy,

		Inbound:          eng.CreateStore(0),
		RetrofitReady:    eng.CreateStore(0),
		RetrofittedReady: eng.CreateStore(0),

		Faults: &coordinators.FaultLog{},
	}

	trains := make([]*domain.Train, 0, len(sc.Trains))
	for _, tc := range sc.Trains {
		wagons := make([]*domain.Wagon, 0, len(tc.Wagons))
		for _, wc := range tc.Wagons {
			wagons = append(wagons, domain.NewWagon(wc.ID, wc.Length, wc.NeedsRetrofit, wc.IsLoaded, domain.CouplerType(wc.CouplerType), tc.ArrivalTime))
		}
		trains = append(trains, &domain.Train{ID: tc.ID, ArrivalTime: tc.ArrivalTime, Wagons: wagons})
	}

	const pollInterval = 1.0
	const stragglerWait = 5.0

	processes := map[string]engine.ProcessFunc{
		"train-arrival":      coordinators.NewTrainArrivalCoordinator(cctx, trains),
		"pickup-to-retrofit": coordinators.NewPickupToRetrofitCoordinator(cctx, pollInterval),
		"workshop-dispatch":  coordinators.NewWorkshopDispatchCoordinator(cctx, pollInterval),
		"parking":            coordinators.NewParkingCoordinator(cctx, pollInterval),
	}
	for _, wc := range sc.Workshops {
		processes["workshop-feed-"+wc.ID] = coordinators.NewWorkshopFeedCoordinator(cctx, wc.ID)
		processes["retrofitted-pickup-"+wc.ID] = coordinators.NewRetrofittedPickupCoordinator(cctx, wc.ID, stragglerWait, pollInterval)
	}

	return &runtime{ctx: cctx, processes: processes}, nil
}

// trackRoles finds the scenario's single collection track and single
// retrofitted-holding track. Validate already confirmed every track
// reference resolves; this additionally confirms exactly one of each role
// exists, which is a structural requirement the coordinators assume but
// Validate does not check.
func trackRoles(tracks []scenario.TrackConfig) (collection, retrofitted string, err error) {
	for _, tc := range tracks {
		switch domain.TrackType(tc.Type) {
		case domain.TrackCollection:
			if collection != "" {
				return "", "", simerr.ConfigFault("scenario defines more than one collection track")
			}
			collection = tc.ID
		case domain.TrackRetrofitted:
			if retrofitted != "" {
				return "", "", simerr.ConfigFault("scenario defines more than one retrofitted-holding track")
			}
			retrofitted = tc.ID
		}
	}
	if collection == "" {
		return "", "", simerr.ConfigFault("scenario has no collection track")
	}
	if retrofitted == "" {
		return "", "", simerr.ConfigFault("scenario has no retrofitted-holding track")
	}
	return collection, retrofitted, nil
}
