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

// Package scenario defines the Go struct form of the configuration record
// of §6.1 and the thin external loader the core hands off to. The core
// never reads a file directly; cmd/popupsim is the only caller of LoadYAML.
package scenario

import "github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/resources"

// LocomotiveConfig describes one locomotive in the scenario.
type LocomotiveConfig struct {
	ID          string `yaml:"id"`
	Track       string `yaml:"track"`
	MaxCapacity int    `yaml:"max_capacity"`
}

// TrackConfig describes one track in the scenario.
type TrackConfig struct {
	ID     string   `yaml:"id"`
	Type   string   `yaml:"type"`
	Length float64  `yaml:"length"`
	Edges  []string `yaml:"edges"`
}

// WorkshopConfig describes one workshop in the scenario.
type WorkshopConfig struct {
	ID              string `yaml:"id"`
	Track           string `yaml:"track"`
	RetrofitStations int   `yaml:"retrofit_stations"`
}

// WagonConfig describes one wagon within a train.
type WagonConfig struct {
	ID            string  `yaml:"id"`
	Length        float64 `yaml:"length"`
	IsLoaded      bool    `yaml:"is_loaded"`
	NeedsRetrofit bool    `yaml:"needs_retrofit"`
	CouplerType   string  `yaml:"coupler_type"`
}

// TrainConfig describes one train and its ordered wagons.
type TrainConfig struct {
	ID          string        `yaml:"id"`
	ArrivalTime float64       `yaml:"arrival_time"`
	Wagons      []WagonConfig `yaml:"wagons"`
}

// RouteConfig describes one route between two tracks.
type RouteConfig struct {
	ID              string   `yaml:"id"`
	TrackSequence   []string `yaml:"track_sequence"`
	DurationMinutes float64  `yaml:"duration_minutes"`
}

// ProcessTimesConfig mirrors domain.ProcessTimes in scenario-file form.
type ProcessTimesConfig struct {
	TrainToHumpDelay         float64 `yaml:"train_to_hump_delay"`
	WagonHumpInterval        float64 `yaml:"wagon_hump_interval"`
	ScrewCouplingTime        float64 `yaml:"screw_coupling_time"`
	ScrewDecouplingTime      float64 `yaml:"screw_decoupling_time"`
	DACCouplingTime          float64 `yaml:"dac_coupling_time"`
	DACDecouplingTime        float64 `yaml:"dac_decoupling_time"`
	WagonMoveBetweenStations float64 `yaml:"wagon_move_between_stations"`
	RetrofitTime             float64 `yaml:"retrofit_time"`
	ParkingDelay             float64 `yaml:"parking_delay"`
}

// Scenario is the full configuration record of §6.1.
type Scenario struct {
	ID          string             `yaml:"id"`
	StartDate   string             `yaml:"start_date"`
	EndDate     string             `yaml:"end_date"`
	Locomotives []LocomotiveConfig `yaml:"locomotives"`
	Tracks      []TrackConfig      `yaml:"tracks"`
	Workshops   []WorkshopConfig   `yaml:"workshops"`
	Trains      []TrainConfig      `yaml:"trains"`
	Routes      []RouteConfig      `yaml:"routes"`
	ProcessTimes ProcessTimesConfig `yaml:"process_times"`

	TrackSelectionStrategy    resources.TrackSelectionStrategy `yaml:"track_selection_strategy"`
	RetrofitSelectionStrategy resources.TrackSelectionStrategy `yaml:"retrofit_selection_strategy"`
	WorkshopSelectionStrategy resources.LocoPriorityStrategy   `yaml:"workshop_selection_strategy"`
	ParkingSelectionStrategy  resources.TrackSelectionStrategy `yaml:"parking_selection_strategy"`
	LocoDeliveryStrategy      resources.LocoDeliveryStrategy   `yaml:"loco_delivery_strategy"`
	LocoPriorityStrategy      resources.LocoPriorityStrategy   `yaml:"loco_priority_strategy"`
}
