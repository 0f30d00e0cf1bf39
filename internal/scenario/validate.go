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

package scenario

import "github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/simerr"

// Validate performs only minimal structural checks: the scenario has at
// least one track and one locomotive, and every workshop, route and
// locomotive refers to a known track. It does not check which track types
// are present; a missing collection track is rejected by the orchestrator,
// not here. Deeper validation is explicitly out of scope for the core.
func Validate(s *Scenario) error {
	if len(s.Tracks) == 0 {
		return simerr.ConfigFault("scenario has no tracks")
	}
	if len(s.Locomotives) == 0 {
		return simerr.ConfigFault("scenario has no locomotives")
	}

	trackIDs := make(map[string]bool, len(s.Tracks))
	for _, t := range s.Tracks {
		trackIDs[t.ID] = true
	}

	for _, ws := range s.Workshops {
		if !trackIDs[ws.Track] {
			return simerr.ConfigFault("workshop " + ws.ID + " refers to unknown track " + ws.Track)
		}
	}

	for _, r := range s.Routes {
		for _, id := range r.TrackSequence {
			if !trackIDs[id] {
				return simerr.ConfigFault("route " + r.ID + " refers to unknown track " + id)
			}
		}
	}

	for _, loco := range s.Locomotives {
		if !trackIDs[loco.Track] {
			return simerr.ConfigFault("locomotive " + loco.ID + " refers to unknown track " + loco.Track)
		}
	}

	return nil
}
