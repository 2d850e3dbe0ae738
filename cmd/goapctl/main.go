/*
   Copyright 2024 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command goapctl exposes the four query-surface operations of spec.md
// section 4.6 (areGoalsSatisfied, singleStep, enabledTransitions,
// generateActionPlan) over a model file, as a local CLI -- the thin
// collaborator spec.md names as out of core scope, made concrete.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "goapctl",
		Short: "Query a declarative GOAP model",
	}
	root.AddCommand(
		newPlanCmd(),
		newGoalsCmd(),
		newEnabledCmd(),
		newStepCmd(),
	)
	return root
}
