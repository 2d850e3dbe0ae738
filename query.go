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

package goap

// This file implements the four thin query-surface operations of section
// 4.6. They are deliberately dumb: build a WorldState, delegate to the
// core operations already defined in state.go / transition.go /
// planner.go, reshape the result. The schema/resolver layer that would
// expose these over a network is the external collaborator named out of
// scope in section 1 -- these functions are the whole of what that layer
// calls into.

// AreGoalsSatisfied builds a WorldState from vars/values and reports
// whether goals holds against it.
func AreGoalsSatisfied(vars []Variable, values []VariableValue, goals []Condition) (bool, error) {
	state, err := Build(vars, values)
	if err != nil {
		return false, err
	}
	return GoalsSatisfied(goals, state)
}

// SingleStep builds a WorldState, and if t is enabled against it, fires t
// and returns the full resulting state's values in canonical order. If t
// is not enabled, it returns (nil, nil) -- there is no successor state to
// report, and that is not itself an error.
func SingleStep(vars []Variable, values []VariableValue, t Transition) ([]VariableValue, error) {
	state, err := Build(vars, values)
	if err != nil {
		return nil, err
	}
	enabled, err := IsEnabled(t, state)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, nil
	}
	next, err := Fire(t, state)
	if err != nil {
		return nil, err
	}
	return next.Values(), nil
}

// EnabledTransitions builds a WorldState, filters transitions by
// IsEnabled, and returns the ids of the enabled ones, preserving the
// input order (section 4.6's determinism requirement).
func EnabledTransitions(vars []Variable, values []VariableValue, transitions []Transition) ([]string, error) {
	state, err := Build(vars, values)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, t := range transitions {
		enabled, err := IsEnabled(t, state)
		if err != nil {
			return nil, err
		}
		if enabled {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}
