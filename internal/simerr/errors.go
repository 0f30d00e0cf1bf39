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

// Package simerr classifies every error the simulation core can produce,
// per the error handling design of the specification: configuration faults,
// resource faults, deadlock/early-quiescence warnings, and fatal errors.
package simerr

import "fmt"

// Kind classifies an error for the orchestrator's handling policy.
type Kind string

const (
	// KindConfigFault is a static configuration problem detected before the
	// run starts (missing collection, unreachable route, workshop
	// referencing an unknown track). The core refuses to start.
	KindConfigFault Kind = "config_fault"

	// KindResourceFault is a programming error at run time: capacity
	// overflow/underflow, decoupling more wagons than coupled, an illegal
	// wagon status transition. The coordinator logs it, rolls back locally,
	// and the run continues.
	KindResourceFault Kind = "resource_fault"

	// KindDeadlock marks early quiescence: the engine reached a state with
	// no runnable process before the requested deadline. This is a warning,
	// not a failure.
	KindDeadlock Kind = "deadlock"

	// KindFatal is an error that escaped the orchestrator and terminates
	// the run.
	KindFatal Kind = "fatal"
)

// Error is the single error type produced by the simulation core. It always
// carries a Kind so callers can branch on classification instead of string
// matching, plus the simulated clock reading at the moment of failure.
type Error struct {
	// Kind classifies the error for handling/reporting.
	Kind Kind

	// Message is the human-readable description.
	Message string

	// Context is the bounded-context tag active when the error occurred
	// (e.g. "retrofit_workflow", "shunting_operations").
	Context string

	// SimTime is the virtual clock reading, in minutes, when the error
	// occurred.
	SimTime float64

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Context != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Context)
	}
	msg = fmt.Sprintf("%s (t=%.2f)", msg, e.SimTime)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ConfigFault constructs a KindConfigFault error.
func ConfigFault(message string) *Error {
	return &Error{Kind: KindConfigFault, Message: message}
}

// ResourceFault constructs a KindResourceFault error carrying the context
// tag and simulated clock reading active when the fault happened.
func ResourceFault(context string, simTime float64, message string) *Error {
	return &Error{Kind: KindResourceFault, Context: context, SimTime: simTime, Message: message}
}

// Deadlock constructs a KindDeadlock warning for early quiescence.
func Deadlock(simTime float64, message string) *Error {
	return &Error{Kind: KindDeadlock, SimTime: simTime, Message: message}
}

// Fatal wraps cause as a KindFatal error.
func Fatal(context string, simTime float64, cause error) *Error {
	return &Error{Kind: KindFatal, Context: context, SimTime: simTime, Message: "fatal error", Cause: cause}
}

// Is reports whether err is a *Error of the given kind. It allows callers to
// write `simerr.Is(err, simerr.KindResourceFault)` instead of a type
// assertion followed by a field comparison.
func Is(err error, kind Kind) bool {
	var e *Error
	if !asError(err, &e) {
		return false
	}
	return e.Kind == kind
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
