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
	"fmt"

	"github.com/spf13/cobra"

	goap "github.com/joeycumines/go-goap"
)

func newGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals <model.yaml>",
		Short: "Report whether the model's initial state already satisfies its goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, state, err := loadAndBuild(args[0])
			if err != nil {
				return err
			}
			ok, err := goap.GoalsSatisfied(model.Goal, state)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}
