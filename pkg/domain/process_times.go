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

package domain

// ProcessTimes are the named durations driving every delay in the
// coordinators. Immutable for the lifetime of a scenario.
type ProcessTimes struct {
	TrainToHumpDelay       float64
	WagonHumpInterval      float64
	ScrewCouplingTime      float64
	ScrewDecouplingTime    float64
	DACCouplingTime        float64
	DACDecouplingTime      float64
	WagonMoveBetweenStations float64
	RetrofitTime           float64
	ParkingDelay           float64
}

// CouplingTime returns the per-wagon coupling time for coupler.
func (p ProcessTimes) CouplingTime(coupler CouplerType) float64 {
	if coupler == CouplerDAC {
		return p.DACCouplingTime
	}
	return p.ScrewCouplingTime
}

// DecouplingTime returns the per-wagon decoupling time for coupler.
func (p ProcessTimes) DecouplingTime(coupler CouplerType) float64 {
	if coupler == CouplerDAC {
		return p.DACDecouplingTime
	}
	return p.ScrewDecouplingTime
}
