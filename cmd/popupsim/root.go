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

import "github.com/spf13/cobra"

var jsonOutput bool

// newRootCommand creates the root popupsim command.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "popupsim",
		Short: "Pop-up retrofit yard discrete-event simulator",
		Long: `popupsim simulates a railway retrofit workshop yard: trains arrive,
wagons needing the digital automatic coupler are pulled to a workshop,
retrofitted, and parked, while the rest are rejected back out. Run a
scenario file and print the resulting capacity-planning metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the result as JSON instead of YAML")

	return cmd
}
