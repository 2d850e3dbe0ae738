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

// Package planverify is a testing tool, not a planning feature: it
// derives a plan for a fixed model using the teacher's own PA-BT
// tree-repair algorithm (github.com/joeycumines/go-pabt) and reports the
// transitions it fired, so the test suite can cross-check
// GenerateActionPlan's A* result against an independently implemented
// search strategy over the same model.
//
// PA-BT is depended on as a normal module, not vendored -- there is no
// domain adaptation to be done to its generic tree-repair engine itself,
// only to this package's State/Condition/Effect/Action adapters, which
// is where goap's types actually flow through.
//
// It runs the PA-BT tree exactly once to completion against a single,
// unchanging initial WorldState -- it does not watch the world for
// changes and does not offer any way to re-drive a plan once the world
// has moved on, because incremental replanning is explicitly out of
// scope for this module (spec section 1). PA-BT's internal mechanism
// happens to be repair-based; that is an implementation detail of how it
// searches, not a capability this package exposes to callers.
package planverify

import (
	bt "github.com/joeycumines/go-behaviortree"
	"github.com/joeycumines/go-pabt"

	goap "github.com/joeycumines/go-goap"
)

// Run derives a plan for goal against initial using transitions as the
// candidate action set, ticking a PA-BT tree to completion. It returns
// the ids of the transitions PA-BT fired, in firing order. maxTicks
// bounds the tick loop against a non-terminating tree (mirrors
// GenerateActionPlan's expansion bound).
func Run(vars []goap.Variable, transitions []goap.Transition, initial goap.WorldState, goal []goap.Condition, maxTicks int) ([]string, error) {
	if err := goap.ValidateModel(vars, transitions, goal); err != nil {
		return nil, err
	}
	state := &oneShotState{current: initial, transitions: transitions}
	goalConditions, err := newConditions(goal)
	if err != nil {
		return nil, err
	}
	plan, err := pabt.INew(state, []pabt.Conditions{goalConditions})
	if err != nil {
		return nil, err
	}
	node := plan.Node()
	for i := 0; i < maxTicks; i++ {
		status, err := node.Tick()
		if err != nil {
			return nil, err
		}
		if status == bt.Success {
			return state.fired, nil
		}
	}
	return nil, goap.NewError(goap.KindSchemaError, "planverify: did not converge within %d ticks", maxTicks)
}

type oneShotState struct {
	current     goap.WorldState
	transitions []goap.Transition
	fired       []string
}

func (s *oneShotState) Variable(key interface{}) (interface{}, error) {
	id, _ := key.(string)
	v, ok := s.current.Lookup(id)
	if !ok {
		return nil, goap.NewError(goap.KindSchemaError, "planverify: unknown variable %q", id)
	}
	return v, nil
}

func (s *oneShotState) Actions(failed pabt.Condition) ([]pabt.IAction, error) {
	id, _ := failed.Key().(string)
	var out []pabt.IAction
	for _, t := range s.transitions {
		if _, err := newConditions(t.Conditions); err != nil {
			continue
		}
		for _, eff := range t.Effects {
			if eff.VariableID == id {
				out = append(out, &oneShotAction{state: s, transition: t})
				break
			}
		}
	}
	return out, nil
}

type oneShotCondition struct {
	variableID string
	value      goap.Value
	negate     bool
}

func newConditions(conds []goap.Condition) (pabt.Conditions, error) {
	out := make(pabt.Conditions, 0, len(conds))
	for _, c := range conds {
		if c.Argument.VariableID != "" {
			return nil, goap.NewError(goap.KindUnsupportedOperator, "planverify: condition on %q references another variable", c.VariableID)
		}
		oc := &oneShotCondition{variableID: c.VariableID, value: *c.Argument.Literal}
		switch c.Operator {
		case goap.OpEQ:
		case goap.OpNE:
			oc.negate = true
		default:
			return nil, goap.NewError(goap.KindUnsupportedOperator, "planverify: operator %q on %q is not supported", c.Operator, c.VariableID)
		}
		out = append(out, oc)
	}
	return out, nil
}

func (c *oneShotCondition) Key() interface{} { return c.variableID }

func (c *oneShotCondition) Match(value interface{}) bool {
	v, ok := value.(goap.Value)
	if !ok {
		return false
	}
	eq := goap.Equal(v, c.value)
	if c.negate {
		return !eq
	}
	return eq
}

type oneShotEffect struct {
	variableID string
	value      goap.Value
}

func (e *oneShotEffect) Key() interface{}   { return e.variableID }
func (e *oneShotEffect) Value() interface{} { return e.value }

type oneShotAction struct {
	state      *oneShotState
	transition goap.Transition
}

func (a *oneShotAction) Conditions() []pabt.Conditions {
	conds, _ := newConditions(a.transition.Conditions)
	if len(conds) == 0 {
		return nil
	}
	return []pabt.Conditions{conds}
}

func (a *oneShotAction) Effects() pabt.Effects {
	after, err := goap.Fire(a.transition, a.state.current)
	if err != nil {
		return nil
	}
	out := make(pabt.Effects, 0, len(a.transition.Effects))
	for _, eff := range a.transition.Effects {
		out = append(out, &oneShotEffect{variableID: eff.VariableID, value: after.Get(eff.VariableID)})
	}
	return out
}

func (a *oneShotAction) Node() bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		enabled, err := goap.IsEnabled(a.transition, a.state.current)
		if err != nil {
			return bt.Failure, err
		}
		if !enabled {
			return bt.Failure, nil
		}
		next, err := goap.Fire(a.transition, a.state.current)
		if err != nil {
			return bt.Failure, err
		}
		a.state.current = next
		a.state.fired = append(a.state.fired, a.transition.ID)
		return bt.Success, nil
	})
}
