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

// Package log provides a structured logger shared by every component of the
// retrofit-yard simulation core. It wraps log/slog with a fixed set of field
// keys so a coordinator and the orchestrator never disagree on what a given
// piece of context is called.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs in JSON format for machine parsing.
	FormatJSON Format = "json"
	// FormatText outputs logs in human-readable text format.
	FormatText Format = "text"
)

// Standard field keys for structured logging. These ensure every coordinator
// and service logs simulation context under the same names.
const (
	// SimTimeKey is the field key for the virtual clock reading, in minutes,
	// at the moment the log line was emitted.
	SimTimeKey = "sim_time"
	// ContextKey is the field key for the bounded-context tag carried by
	// every domain event (e.g. "retrofit_workflow", "shunting_operations").
	ContextKey = "context"
	// EventKey is the field key for a domain event kind.
	EventKey = "event"
	// EventIDKey is the field key for a domain event's unique id.
	EventIDKey = "event_id"
	// WagonIDKey is the field key for a wagon identifier.
	WagonIDKey = "wagon_id"
	// TrainIDKey is the field key for a train identifier.
	TrainIDKey = "train_id"
	// TrackIDKey is the field key for a track identifier.
	TrackIDKey = "track_id"
	// WorkshopIDKey is the field key for a workshop identifier.
	WorkshopIDKey = "workshop_id"
	// LocomotiveIDKey is the field key for a locomotive identifier.
	LocomotiveIDKey = "locomotive_id"
	// CoordinatorKey is the field key for the coordinator name that emitted
	// the log line.
	CoordinatorKey = "coordinator"
	// DurationKey is the field key for a duration in simulated minutes.
	DurationKey = "duration_minutes"
)

// Config holds the logging configuration.
type Config struct {
	// Level sets the minimum log level (debug, info, warn, error).
	// Default: info
	Level string

	// Format sets the output format (json, text).
	// Default: json
	Format Format

	// Output is the writer for log output.
	// Default: os.Stderr
	Output io.Writer

	// AddSource adds source file and line information to logs.
	// Default: false
	AddSource bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:     "info",
		Format:    FormatJSON,
		Output:    os.Stderr,
		AddSource: false,
	}
}

// FromEnv creates a Config from environment variables.
// Supported environment variables:
//   - POPUPSIM_LOG_LEVEL: debug, info, warn, error (default: info)
//   - POPUPSIM_LOG_FORMAT: json, text (default: json)
//   - POPUPSIM_LOG_SOURCE: 1 to enable source file/line (default: 0)
func FromEnv() *Config {
	cfg := DefaultConfig()

	if level := os.Getenv("POPUPSIM_LOG_LEVEL"); level != "" {
		cfg.Level = strings.ToLower(level)
	}
	if format := os.Getenv("POPUPSIM_LOG_FORMAT"); format != "" {
		cfg.Format = Format(strings.ToLower(format))
	}
	if os.Getenv("POPUPSIM_LOG_SOURCE") == "1" {
		cfg.AddSource = true
	}

	return cfg
}

// New creates a new structured logger from the given configuration.
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatText:
		handler = slog.NewTextHandler(cfg.Output, opts)
	case FormatJSON:
		fallthrough
	default:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSimTime returns a new logger carrying the current virtual clock
// reading. Every coordinator calls this before logging so the simulated
// time, not wall-clock time, is what shows up in the log stream.
func WithSimTime(logger *slog.Logger, simTime float64) *slog.Logger {
	return logger.With(slog.Float64(SimTimeKey, simTime))
}

// WithCoordinator returns a new logger tagged with the coordinator name that
// produced the log line.
func WithCoordinator(logger *slog.Logger, name string) *slog.Logger {
	return logger.With(slog.String(CoordinatorKey, name))
}

// WithContext returns a new logger tagged with a bounded-context name.
func WithContext(logger *slog.Logger, context string) *slog.Logger {
	return logger.With(slog.String(ContextKey, context))
}

// Error creates an error attribute.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
