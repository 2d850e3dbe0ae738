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

// Package executor compiles a goap.ActionPlan into a behavior tree (using
// the teacher library's own go-behaviortree package) that ticks an
// Actuator once per transition, in plan order, re-validating each
// transition's preconditions against the live world before it fires.
//
// This package executes a fixed, already-computed plan step by step,
// failing a step outright if the world has drifted since GenerateActionPlan
// ran. It never repairs or recomputes the plan in flight -- incremental
// replanning is out of scope for this module (see spec.md section 1), so a
// stale precondition is reported as a failed step, not patched over.
package executor

import (
	"fmt"

	bt "github.com/joeycumines/go-behaviortree"

	goap "github.com/joeycumines/go-goap"
)

// Actuator performs the real-world (or simulated) work for one fired
// transition's action. It returns bt.Running while the action is still in
// flight, bt.Success once complete, or an error to abort the whole plan.
type Actuator interface {
	Act(transition goap.Transition) (bt.Status, error)
}

// ActuatorFunc adapts a plain function to an Actuator.
type ActuatorFunc func(transition goap.Transition) (bt.Status, error)

func (f ActuatorFunc) Act(transition goap.Transition) (bt.Status, error) { return f(transition) }

// WorldReader supplies the executor's live view of the world, so each
// step can re-validate the transition's preconditions before ticking the
// Actuator -- the plan's precomputed path is only a guide once the world
// can move independently of the plan (see the Non-goals around
// incremental replanning in spec.md section 1; this executor does not
// replan on a stale precondition, it simply fails that step).
type WorldReader interface {
	WorldState() goap.WorldState
}

// Compile builds a bt.Node that, when ticked to completion (bt.Success),
// will have executed every transition in plan.Transitions, in order,
// against actuator. transitions supplies the full Transition records the
// plan's ids refer to (plan.Transitions is a list of ids per spec.md
// section 3).
//
// Mirrors the teacher's own node-construction idiom in util.go: a
// bt.Sequence of leaf bt.New nodes, one per step.
func Compile(plan goap.ActionPlan, transitions []goap.Transition, world WorldReader, actuator Actuator) (bt.Node, error) {
	byID := make(map[string]goap.Transition, len(transitions))
	for _, t := range transitions {
		byID[t.ID] = t
	}

	children := make([]bt.Node, 0, len(plan.Transitions))
	for _, id := range plan.Transitions {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("executor: plan references unknown transition %q", id)
		}
		children = append(children, stepNode(t, world, actuator))
	}

	return bt.New(bt.Sequence, children...), nil
}

func stepNode(t goap.Transition, world WorldReader, actuator Actuator) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		enabled, err := goap.IsEnabled(t, world.WorldState())
		if err != nil {
			return bt.Failure, err
		}
		if !enabled {
			return bt.Failure, fmt.Errorf("executor: transition %q no longer enabled", t.ID)
		}
		return actuator.Act(t)
	})
}
