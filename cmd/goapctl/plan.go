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

package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	goap "github.com/joeycumines/go-goap"
	"github.com/joeycumines/go-goap/config"
)

func newPlanCmd() *cobra.Command {
	var (
		verbose bool
		trace   bool
	)
	cmd := &cobra.Command{
		Use:   "plan <model.yaml>",
		Short: "Generate an action plan from an initial state to the model's goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, state, err := loadAndBuild(args[0])
			if err != nil {
				return err
			}

			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
			}

			opts := []goap.PlannerOption{
				goap.WithMaxExpansions(model.MaxExpansions),
				goap.WithLogger(logger),
			}
			if trace {
				opts = append(opts, goap.WithTrace())
			}

			plan, err := goap.GenerateActionPlan(context.Background(), model.Variables, model.Transitions, state, model.Goal, opts...)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		},
	}
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log each node expansion")
	cmd.Flags().BoolVar(&trace, "trace", false, "include a per-expansion trace in the output plan")
	return cmd
}

func loadAndBuild(path string) (config.Model, goap.WorldState, error) {
	model, err := config.Load(path)
	if err != nil {
		return config.Model{}, goap.WorldState{}, err
	}
	state, err := goap.Build(model.Variables, model.Initial)
	if err != nil {
		return config.Model{}, goap.WorldState{}, err
	}
	return model, state, nil
}
