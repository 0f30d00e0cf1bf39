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

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/log"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/obsmetrics"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/scenario"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/tracing"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/orchestrator"
)

// runResult is the shape printed to stdout: the orchestrator's Result with
// json/yaml tags, since orchestrator.Result carries none of its own.
type runResult struct {
	Success           bool                    `json:"success" yaml:"success"`
	Duration          float64                 `json:"duration_minutes" yaml:"duration_minutes"`
	QuiescedEarly     bool                    `json:"quiesced_early" yaml:"quiesced_early"`
	FailureMessage    string                  `json:"failure_message,omitempty" yaml:"failure_message,omitempty"`
	Metrics           map[string][]metricItem `json:"metrics" yaml:"metrics"`
	EngineFaultCount  int                     `json:"engine_fault_count" yaml:"engine_fault_count"`
	CoordinatorFaults int                     `json:"coordinator_fault_count" yaml:"coordinator_fault_count"`
}

type metricItem struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
	Unit  string `json:"unit" yaml:"unit"`
}

func newRunCommand() *cobra.Command {
	var (
		until       float64
		hasUntil    bool
		logLevel    string
		logFormatFl string
	)

	cmd := &cobra.Command{
		Use:   "run <scenario-file>",
		Short: "Run a scenario and print the resulting metrics",
		Long: `run loads a scenario file (YAML or JSON, detected by extension),
builds the simulation, runs it to the given deadline (or until quiescence
if --until is omitted), and prints the metrics result.

Exit code is zero on a successful run, non-zero otherwise: 2 if the
scenario itself was rejected (a configuration fault), 1 if the run
completed but the simulation reported failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, args[0], untilPtr(until, hasUntil), logLevel, logFormatFl)
		},
	}

	cmd.Flags().Float64Var(&until, "until", 0, "simulated minutes to run to (omit to run until quiescence)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFormatFl, "log-format", "json", "log format: json, text")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasUntil = cmd.Flags().Changed("until")
	}

	return cmd
}

func untilPtr(until float64, has bool) *float64 {
	if !has {
		return nil
	}
	return &until
}

func runScenario(cmd *cobra.Command, path string, until *float64, logLevel, logFormat string) error {
	sc, err := loadScenario(path)
	if err != nil {
		return &exitError{Code: 2, Message: err.Error()}
	}

	logger := log.New(&log.Config{Level: logLevel, Format: log.Format(logFormat), Output: cmd.ErrOrStderr()})
	obs := obsmetrics.NewRegistry()

	tracer, err := tracing.NewProvider("popupsim", "dev")
	if err != nil {
		tracer = nil
	}

	result, err := orchestrator.Run(context.Background(), sc, until,
		orchestrator.WithLogger(logger),
		orchestrator.WithObservability(obs),
		orchestrator.WithTracing(tracer),
	)
	if err != nil {
		return &exitError{Code: 2, Message: fmt.Sprintf("scenario rejected: %v", err)}
	}

	if err := printResult(cmd, result); err != nil {
		return &exitError{Code: 1, Message: err.Error()}
	}

	if !result.Success {
		return &exitError{Code: 1}
	}
	return nil
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if len(path) > 5 && path[len(path)-5:] == ".json" {
		return scenario.LoadJSON(path)
	}
	return scenario.LoadYAML(path)
}

func printResult(cmd *cobra.Command, result *orchestrator.Result) error {
	rr := runResult{
		Success:           result.Success,
		Duration:          result.Duration,
		QuiescedEarly:     result.QuiescedEarly,
		FailureMessage:    result.FailureMessage,
		Metrics:           make(map[string][]metricItem, len(result.Metrics)),
		EngineFaultCount:  len(result.EngineFaults),
		CoordinatorFaults: len(result.CoordinatorFaults),
	}
	for category, items := range result.Metrics {
		out := make([]metricItem, 0, len(items))
		for _, item := range items {
			out = append(out, metricItem{Name: item.Name, Value: item.Value, Unit: item.Unit})
		}
		rr.Metrics[category] = out
	}

	if jsonOutput {
		data, err := json.MarshalIndent(rr, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	data, err := yaml.Marshal(rr)
	if err != nil {
		return err
	}
	cmd.Print(string(data))
	return nil
}
