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

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGenerateActionPlan_S1_trivialSatisfied is scenario S1 of section 8.
func TestGenerateActionPlan_S1_trivialSatisfied(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt, Weight: 1}}
	initial, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(5)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(5))}}

	plan, err := GenerateActionPlan(context.Background(), vars, nil, initial, goal)
	require.NoError(t, err)
	require.Equal(t, StatusFound, plan.Status)
	require.Equal(t, 0, plan.TotalSteps)
	require.Equal(t, float64(0), plan.TotalCost)
}

// TestGenerateActionPlan_S2_singleStep is scenario S2 of section 8.
func TestGenerateActionPlan_S2_singleStep(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt}}
	t1 := Transition{
		ID:         "t1",
		Conditions: []Condition{{VariableID: "x", Operator: OpLT, Argument: Lit(Int(10))}},
		Effects:    []Effect{{VariableID: "x", Operator: AssignSet, Argument: Lit(Int(10))}},
		Action:     "A",
		Cost:       1,
	}
	initial, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(5)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(10))}}

	plan, err := GenerateActionPlan(context.Background(), vars, []Transition{t1}, initial, goal)
	require.NoError(t, err)
	require.Equal(t, StatusFound, plan.Status)
	require.Equal(t, []string{"t1"}, plan.Transitions)
	require.Equal(t, []string{"A"}, plan.Actions)
	require.Equal(t, float64(1), plan.TotalCost)
	require.Equal(t, Int(10), mustValue(t, plan.FinalState, "x"))
}

// TestGenerateActionPlan_S3_twoStepAccumulate is scenario S3 of section 8.
func TestGenerateActionPlan_S3_twoStepAccumulate(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt}}
	tInc := Transition{
		ID:         "t_inc",
		Conditions: []Condition{{VariableID: "x", Operator: OpLT, Argument: Lit(Int(3))}},
		Effects:    []Effect{{VariableID: "x", Operator: AssignAdd, Argument: Lit(Int(1))}},
		Action:     "inc",
		Cost:       1,
	}
	initial, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(1)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(3))}}

	plan, err := GenerateActionPlan(context.Background(), vars, []Transition{tInc}, initial, goal)
	require.NoError(t, err)
	require.Equal(t, StatusFound, plan.Status)
	require.Equal(t, []string{"t_inc", "t_inc"}, plan.Transitions)
	require.Equal(t, float64(2), plan.TotalCost)
	require.Equal(t, Int(3), mustValue(t, plan.FinalState, "x"))
}

// TestGenerateActionPlan_traceRecordsTransitions exercises WithTrace: each
// non-initial trace entry must carry the transition that produced its
// state, not a permanently blank Transition field.
func TestGenerateActionPlan_traceRecordsTransitions(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt}}
	tInc := Transition{
		ID:         "t_inc",
		Conditions: []Condition{{VariableID: "x", Operator: OpLT, Argument: Lit(Int(3))}},
		Effects:    []Effect{{VariableID: "x", Operator: AssignAdd, Argument: Lit(Int(1))}},
		Action:     "inc",
		Cost:       1,
	}
	initial, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(1)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(3))}}

	plan, err := GenerateActionPlan(context.Background(), vars, []Transition{tInc}, initial, goal, WithTrace())
	require.NoError(t, err)
	require.Equal(t, StatusFound, plan.Status)
	require.NotEmpty(t, plan.Trace)
	require.Empty(t, plan.Trace[0].Transition, "the initial state's expansion has no firing transition")
	for _, entry := range plan.Trace[1:] {
		require.Equal(t, "t_inc", entry.Transition)
	}
}

// TestGenerateActionPlan_S4_choosesCheaper is scenario S4 of section 8.
func TestGenerateActionPlan_S4_choosesCheaper(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt}}
	tBig := Transition{
		ID:      "t_big",
		Effects: []Effect{{VariableID: "x", Operator: AssignSet, Argument: Lit(Int(10))}},
		Cost:    5,
	}
	tTwoSmall := Transition{
		ID:         "t_two_small",
		Conditions: []Condition{{VariableID: "x", Operator: OpLT, Argument: Lit(Int(10))}},
		Effects:    []Effect{{VariableID: "x", Operator: AssignAdd, Argument: Lit(Int(5))}},
		Cost:       1,
	}
	initial, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(0)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(10))}}

	plan, err := GenerateActionPlan(context.Background(), vars, []Transition{tBig, tTwoSmall}, initial, goal)
	require.NoError(t, err)
	require.Equal(t, StatusFound, plan.Status)
	require.Equal(t, []string{"t_two_small", "t_two_small"}, plan.Transitions)
	require.Equal(t, float64(2), plan.TotalCost)
}

// TestGenerateActionPlan_S5_unreachable is scenario S5 of section 8.
func TestGenerateActionPlan_S5_unreachable(t *testing.T) {
	vars := []Variable{{ID: "flag", TypeOf: TypeBoolean}}
	initial, err := Build(vars, []VariableValue{{VariableID: "flag", Value: Bool(false)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "flag", Operator: OpEQ, Argument: Lit(Bool(true))}}

	plan, err := GenerateActionPlan(context.Background(), vars, nil, initial, goal)
	require.NoError(t, err)
	require.Equal(t, StatusUnreachable, plan.Status)
	require.Empty(t, plan.Transitions)
	require.Empty(t, plan.Actions)
}

// TestGenerateActionPlan_S6_zeroCostLoopGuarded is scenario S6 of section 8:
// a zero-cost transition whose own condition it never invalidates must not
// be re-enqueued forever, and the query must report UNREACHABLE (not
// ABORTED) well within the default expansion bound.
func TestGenerateActionPlan_S6_zeroCostLoopGuarded(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt}}
	tNoop := Transition{
		ID:         "t_noop",
		Conditions: []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(0))}},
		Effects:    []Effect{{VariableID: "x", Operator: AssignSet, Argument: Lit(Int(0))}},
		Cost:       0,
	}
	initial, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(0)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(1))}}

	plan, err := GenerateActionPlan(context.Background(), vars, []Transition{tNoop}, initial, goal, WithMaxExpansions(1000))
	require.NoError(t, err)
	require.Equal(t, StatusUnreachable, plan.Status)
}

func TestGenerateActionPlan_contextCancelled(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt}}
	tInc := Transition{
		ID:         "inc",
		Conditions: []Condition{{VariableID: "x", Operator: OpLT, Argument: Lit(Int(1000))}},
		Effects:    []Effect{{VariableID: "x", Operator: AssignAdd, Argument: Lit(Int(1))}},
		Cost:       1,
	}
	initial, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(0)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(1000))}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan, err := GenerateActionPlan(ctx, vars, []Transition{tInc}, initial, goal)
	require.NoError(t, err)
	require.Equal(t, StatusAborted, plan.Status)
}

func TestGenerateActionPlan_invalidModelSurfacesUpFront(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt}}
	initial, err := Build(vars, nil)
	require.NoError(t, err)
	goal := []Condition{{VariableID: "nope", Operator: OpEQ, Argument: Lit(Int(1))}}

	_, err = GenerateActionPlan(context.Background(), vars, nil, initial, goal)
	require.Error(t, err)
	require.Equal(t, KindSchemaError, KindOf(err))
}

// TestGenerateActionPlan_arithmeticErrorPrunesEdge confirms section 4.1/7's
// rule that an ArithmeticError during Fire makes that transition
// unavailable for this state rather than failing the whole query.
func TestGenerateActionPlan_arithmeticErrorPrunesEdge(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt}}
	tDivZero := Transition{
		ID:      "div_zero",
		Effects: []Effect{{VariableID: "x", Operator: AssignDiv, Argument: Lit(Int(0))}},
		Cost:    1,
	}
	tSet := Transition{
		ID:      "set_one",
		Effects: []Effect{{VariableID: "x", Operator: AssignSet, Argument: Lit(Int(1))}},
		Cost:    1,
	}
	initial, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(5)}})
	require.NoError(t, err)
	goal := []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(1))}}

	plan, err := GenerateActionPlan(context.Background(), vars, []Transition{tDivZero, tSet}, initial, goal)
	require.NoError(t, err)
	require.Equal(t, StatusFound, plan.Status)
	require.Equal(t, []string{"set_one"}, plan.Transitions)
}

func TestIndicatorHeuristic(t *testing.T) {
	vars := []Variable{{ID: "x", TypeOf: TypeInt, Weight: 3}}
	s, err := Build(vars, []VariableValue{{VariableID: "x", Value: Int(0)}})
	require.NoError(t, err)

	h := IndicatorHeuristic(vars, s, []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(5))}})
	require.Equal(t, float64(3), h, "unsatisfied condition contributes its variable's Weight")

	h = IndicatorHeuristic(vars, s, []Condition{{VariableID: "x", Operator: OpEQ, Argument: Lit(Int(0))}})
	require.Equal(t, float64(0), h, "satisfied conditions contribute nothing")
}

func mustValue(t *testing.T, values []VariableValue, id string) Value {
	t.Helper()
	for _, vv := range values {
		if vv.VariableID == id {
			return vv.Value
		}
	}
	t.Fatalf("no value for variable %q", id)
	return Value{}
}
