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

// DefaultRouteDuration is used when no route is defined between a pair of
// tracks. Per §9, this is a defined default, not an error.
const DefaultRouteDuration = 1.0

// Route is undirected for duration lookup: either end may be origin.
type Route struct {
	ID             string
	TrackSequence  []string
	DurationMinutes float64
}

// RouteTable resolves transit duration between two tracks.
type RouteTable struct {
	routes []Route
}

// NewRouteTable builds a lookup table over routes.
func NewRouteTable(routes []Route) *RouteTable {
	return &RouteTable{routes: routes}
}

// endpoints returns the first and last track of a route's sequence.
func (r Route) endpoints() (string, string) {
	if len(r.TrackSequence) == 0 {
		return "", ""
	}
	return r.TrackSequence[0], r.TrackSequence[len(r.TrackSequence)-1]
}

// Duration returns the transit time between from and to, checking both
// directions, falling back to DefaultRouteDuration when no route matches.
func (t *RouteTable) Duration(from, to string) float64 {
	for _, r := range t.routes {
		a, b := r.endpoints()
		if (a == from && b == to) || (a == to && b == from) {
			return r.DurationMinutes
		}
	}
	return DefaultRouteDuration
}
