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

func newEnabledCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enabled <model.yaml>",
		Short: "List the ids of transitions currently enabled against the model's initial state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, state, err := loadAndBuild(args[0])
			if err != nil {
				return err
			}
			ids, err := goap.EnabledTransitions(model.Variables, state.Values(), model.Transitions)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
