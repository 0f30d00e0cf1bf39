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

// Package services encapsulates the life cycle of using a locomotive for a
// yard move (§4.E) and the wagon state/dispatch services coordinators call
// into (§4.G).
package services

import (
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/engine"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/eventbus"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/resources"
)

// LocomotiveService is the only component that touches a Locomotive's
// status and history fields; every caller goes through allocate/move/
// couple/decouple/release so the event stream and the status history stay
// consistent.
type LocomotiveService struct {
	pool   *resources.LocomotivePool
	routes *domain.RouteTable
	times  domain.ProcessTimes
	bus    *eventbus.Bus
}

// NewLocomotiveService wires a locomotive service over pool, routes and
// times, publishing every lifecycle event to bus.
func NewLocomotiveService(pool *resources.LocomotivePool, routes *domain.RouteTable, times domain.ProcessTimes, bus *eventbus.Bus) *LocomotiveService {
	return &LocomotiveService{pool: pool, routes: routes, times: times, bus: bus}
}

// Allocate acquires a locomotive from the pool, emitting ResourceAllocated.
func (s *LocomotiveService) Allocate(p *engine.Process, purpose string) *domain.Locomotive {
	loco := s.pool.Allocate(p)
	s.bus.Publish(domain.NewEvent(domain.KindResourceAllocated, p.Now(), "locomotive-service", domain.ResourceEventPayload{
		ResourceID: loco.ID,
		Purpose:    purpose,
	}))
	return loco
}

// Release returns loco to the pool, setting status PARKING and emitting
// ResourceReleased. Callers arrange for this to run on every exit path via
// WithLocomotive.
func (s *LocomotiveService) Release(p *engine.Process, loco *domain.Locomotive) {
	loco.SetStatus(p.Now(), domain.LocoParking)
	s.publishStatus(p, loco)
	s.pool.Release(p, loco)
	s.bus.Publish(domain.NewEvent(domain.KindResourceReleased, p.Now(), "locomotive-service", domain.ResourceEventPayload{
		ResourceID: loco.ID,
	}))
}

// WithLocomotive allocates a locomotive for purpose, runs fn, and releases
// the locomotive on every exit path — including when fn returns an error —
// matching §4.E's "ensure release on every exit path" contract.
func (s *LocomotiveService) WithLocomotive(p *engine.Process, purpose string, fn func(loco *domain.Locomotive) error) error {
	loco := s.Allocate(p, purpose)
	defer s.Release(p, loco)
	return fn(loco)
}

// Move delays by the route's transit time between from and to, recording
// MOVING for the duration and updating loco.CurrentTrack on arrival.
func (s *LocomotiveService) Move(p *engine.Process, loco *domain.Locomotive, from, to string) {
	loco.SetStatus(p.Now(), domain.LocoMoving)
	s.publishStatus(p, loco)

	duration := s.routes.Duration(from, to)
	p.Delay(duration)

	loco.CurrentTrack = to
	loco.SetStatus(p.Now(), domain.LocoParking)
	s.publishStatus(p, loco)
}

// Couple delays by n x the coupling time for couplerType; status is
// COUPLING for that interval, MOVING immediately before and after. A batch
// of zero wagons does not toggle status at all.
func (s *LocomotiveService) Couple(p *engine.Process, loco *domain.Locomotive, n int, couplerType domain.CouplerType) {
	if n == 0 {
		return
	}
	loco.SetStatus(p.Now(), domain.LocoCoupling)
	s.publishStatus(p, loco)
	p.Delay(float64(n) * s.times.CouplingTime(couplerType))
	loco.SetStatus(p.Now(), domain.LocoMoving)
	s.publishStatus(p, loco)
}

// Decouple is symmetric to Couple, using the decoupling time for
// couplerType (SCREW by default).
func (s *LocomotiveService) Decouple(p *engine.Process, loco *domain.Locomotive, n int, couplerType domain.CouplerType) {
	if n == 0 {
		return
	}
	if couplerType == "" {
		couplerType = domain.CouplerScrew
	}
	loco.SetStatus(p.Now(), domain.LocoDecoupling)
	s.publishStatus(p, loco)
	p.Delay(float64(n) * s.times.DecouplingTime(couplerType))
	loco.SetStatus(p.Now(), domain.LocoMoving)
	s.publishStatus(p, loco)
}

func (s *LocomotiveService) publishStatus(p *engine.Process, loco *domain.Locomotive) {
	s.bus.Publish(domain.NewEvent(domain.KindLocomotiveStatusChanged, p.Now(), "locomotive-service", domain.LocomotiveStatusChangedPayload{
		LocomotiveID: loco.ID,
		Status:       loco.Status,
	}))
}
