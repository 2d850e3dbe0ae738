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

import "math"

// VariableOrValue is either a literal Value or a reference to another
// variable, resolved against the current WorldState at evaluation time.
// Exactly one of Literal / VariableID is set -- see Resolve.
type VariableOrValue struct {
	Literal    *Value
	VariableID string
}

// Lit wraps a literal Value as a VariableOrValue.
func Lit(v Value) VariableOrValue { return VariableOrValue{Literal: &v} }

// Ref wraps a variable-id reference as a VariableOrValue.
func Ref(variableID string) VariableOrValue { return VariableOrValue{VariableID: variableID} }

// Resolve evaluates v against state: a reference looks up the current
// value of the referenced variable, a literal returns itself.
func (v VariableOrValue) Resolve(state WorldState) (Value, error) {
	hasLit := v.Literal != nil
	hasRef := v.VariableID != ""
	if hasLit == hasRef {
		return Value{}, newErr(KindMalformedArgument, "exactly one of literal or variableId must be set")
	}
	if hasLit {
		return *v.Literal, nil
	}
	val, ok := state.Lookup(v.VariableID)
	if !ok {
		return Value{}, newErr(KindSchemaError, "reference to unknown variable %q", v.VariableID)
	}
	return val, nil
}

// Condition tests one variable's current value against an operator and an
// argument (literal or reference).
type Condition struct {
	VariableID string
	Operator   ComparisonOperator
	Argument   VariableOrValue
}

// Effect updates one variable's value via an operator applied to its
// current value and an argument (literal or reference).
type Effect struct {
	VariableID string
	Operator   AssignmentOperator
	Argument   VariableOrValue
}

// Transition is a guarded, costed, functional update: it fires iff every
// Condition holds, and produces a successor WorldState by applying every
// Effect in list order. Action, when set, is the label the planner emits
// in ActionPlan.Actions; transitions without an Action still count toward
// Transitions / TotalSteps but contribute nothing to Actions.
type Transition struct {
	ID          string
	Conditions  []Condition
	Effects     []Effect
	Action      string
	Cost        float64
	Description string
}

// evalCondition implements section 4.4's evalCondition: resolve both
// sides, require matching types, then dispatch the comparison operator.
func evalCondition(c Condition, state WorldState) (bool, error) {
	lhs, ok := state.Lookup(c.VariableID)
	if !ok {
		return false, newErr(KindSchemaError, "condition references unknown variable %q", c.VariableID)
	}
	rhs, err := c.Argument.Resolve(state)
	if err != nil {
		return false, err
	}
	if lhs.TypeOf() != rhs.TypeOf() {
		return false, newErr(KindTypeMismatch, "condition on %q: %v vs %v", c.VariableID, lhs.TypeOf(), rhs.TypeOf())
	}
	return evalComparison(c.Operator, lhs, rhs)
}

// IsEnabled reports whether every one of t.Conditions holds against state
// -- the conjunction of evalCondition, per section 4.4. An empty condition
// list is trivially enabled. An error from any condition (for example a
// TypeMismatch or UnsupportedOperator) is returned together with false;
// ValidateModel reports such model errors up front, before a search.
func IsEnabled(t Transition, state WorldState) (bool, error) {
	for _, c := range t.Conditions {
		ok, err := evalCondition(c, state)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Fire applies t's effects, in list order, to state, returning the
// successor WorldState. Each effect's argument is resolved against the
// *working* copy, so later effects observe earlier effects of the same
// transition (section 4.4's accumulator semantics) -- not against the
// original state.
//
// Fire does not itself check IsEnabled; callers (the planner, and
// query.SingleStep) are expected to have already confirmed enablement.
// A division by zero (or other ArithmeticError) during effect evaluation
// aborts only this Fire call -- the caller treats the transition as not
// applicable for this state, exactly as if IsEnabled had returned false.
func Fire(t Transition, state WorldState) (WorldState, error) {
	working := state
	for _, e := range t.Effects {
		lhs, ok := working.Lookup(e.VariableID)
		if !ok {
			return WorldState{}, newErr(KindSchemaError, "effect references unknown variable %q", e.VariableID)
		}
		rhs, err := e.Argument.Resolve(working)
		if err != nil {
			return WorldState{}, err
		}
		if lhs.TypeOf() != rhs.TypeOf() {
			return WorldState{}, newErr(KindTypeMismatch, "effect on %q: %v vs %v", e.VariableID, lhs.TypeOf(), rhs.TypeOf())
		}
		newVal, err := evalAssignment(e.Operator, lhs, rhs)
		if err != nil {
			return WorldState{}, err
		}
		working = working.With(e.VariableID, newVal)
	}
	return working, nil
}

// GoalsSatisfied is the goal test of section 4.4: the conjunction of
// evalCondition over goals. An empty goal list is trivially satisfied.
func GoalsSatisfied(goals []Condition, state WorldState) (bool, error) {
	for _, c := range goals {
		ok, err := evalCondition(c, state)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// ValidateModel performs the up-front, whole-model checks required by
// section 7: every referenced variable-id must resolve in vars, every
// condition/effect's argument type must agree with its variable's type
// (literals only -- a Ref argument's type is checked against the
// referenced variable's declared type, since the runtime value is not yet
// known), every operator-id must be registered for its variable's type,
// and every transition's Cost must be finite and non-negative.
func ValidateModel(vars []Variable, transitions []Transition, goal []Condition) error {
	byID := make(map[string]Variable, len(vars))
	for _, v := range vars {
		if v.TypeOf < TypeString || v.TypeOf > TypeBoolean {
			return newErr(KindSchemaError, "variable %q has unknown typeOf", v.ID)
		}
		byID[v.ID] = v
	}

	checkArg := func(lhsType Type, arg VariableOrValue) error {
		hasLit := arg.Literal != nil
		hasRef := arg.VariableID != ""
		if hasLit == hasRef {
			return newErr(KindMalformedArgument, "exactly one of literal or variableId must be set")
		}
		if hasLit {
			if arg.Literal.TypeOf() != lhsType {
				return newErr(KindTypeMismatch, "literal argument type %v does not match variable type %v", arg.Literal.TypeOf(), lhsType)
			}
			return nil
		}
		rv, ok := byID[arg.VariableID]
		if !ok {
			return newErr(KindSchemaError, "reference to unknown variable %q", arg.VariableID)
		}
		if rv.TypeOf != lhsType {
			return newErr(KindTypeMismatch, "reference %q type %v does not match variable type %v", arg.VariableID, rv.TypeOf, lhsType)
		}
		return nil
	}

	checkCondition := func(c Condition) error {
		v, ok := byID[c.VariableID]
		if !ok {
			return newErr(KindSchemaError, "condition references unknown variable %q", c.VariableID)
		}
		// probe the operator with the variable type's zero values: an
		// unknown operator or an unsupported (operator, type) pair errors
		if _, err := evalComparison(c.Operator, Zero(v.TypeOf), Zero(v.TypeOf)); err != nil {
			return err
		}
		return checkArg(v.TypeOf, c.Argument)
	}

	checkEffect := func(e Effect) error {
		v, ok := byID[e.VariableID]
		if !ok {
			return newErr(KindSchemaError, "effect references unknown variable %q", e.VariableID)
		}
		// as above; the probe divides by zero for DIV, which is not a
		// model error
		if _, err := evalAssignment(e.Operator, Zero(v.TypeOf), Zero(v.TypeOf)); err != nil && KindOf(err) != KindArithmeticError {
			return err
		}
		return checkArg(v.TypeOf, e.Argument)
	}

	for _, c := range goal {
		if err := checkCondition(c); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(transitions))
	for _, t := range transitions {
		if t.ID == "" {
			return newErr(KindSchemaError, "transition missing id")
		}
		if seen[t.ID] {
			return newErr(KindSchemaError, "duplicate transition id %q", t.ID)
		}
		seen[t.ID] = true
		if t.Cost < 0 {
			return newErr(KindSchemaError, "transition %q has negative cost", t.ID)
		}
		if isNaNOrInf(t.Cost) {
			return newErr(KindSchemaError, "transition %q has non-finite cost", t.ID)
		}
		for _, c := range t.Conditions {
			if err := checkCondition(c); err != nil {
				return err
			}
		}
		for _, e := range t.Effects {
			if err := checkEffect(e); err != nil {
				return err
			}
		}
	}
	return nil
}

func isNaNOrInf(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
