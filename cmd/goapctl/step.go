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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	goap "github.com/joeycumines/go-goap"
)

func newStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <model.yaml> <transitionId>",
		Short: "Fire a single transition against the model's initial state, if enabled",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, state, err := loadAndBuild(args[0])
			if err != nil {
				return err
			}
			var target *goap.Transition
			for i := range model.Transitions {
				if model.Transitions[i].ID == args[1] {
					target = &model.Transitions[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("goapctl: no such transition %q", args[1])
			}
			values, err := goap.SingleStep(model.Variables, state.Values(), *target)
			if err != nil {
				return err
			}
			if values == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not enabled")
				return nil
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(values)
		},
	}
}
