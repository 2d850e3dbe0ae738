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

// ComparisonOperator is an operator-id accepted by Condition.Operator.
type ComparisonOperator string

const (
	OpEQ ComparisonOperator = "EQ"
	OpNE ComparisonOperator = "NE"
	OpLT ComparisonOperator = "LT"
	OpLE ComparisonOperator = "LE"
	OpGT ComparisonOperator = "GT"
	OpGE ComparisonOperator = "GE"
	OpAnd ComparisonOperator = "AND"
	OpOr  ComparisonOperator = "OR"
)

// AssignmentOperator is an operator-id accepted by Effect.Operator.
type AssignmentOperator string

const (
	AssignSet    AssignmentOperator = "SET"
	AssignAdd    AssignmentOperator = "ADD"
	AssignSub    AssignmentOperator = "SUB"
	AssignMul    AssignmentOperator = "MUL"
	AssignDiv    AssignmentOperator = "DIV"
	AssignAnd    AssignmentOperator = "AND"
	AssignOr     AssignmentOperator = "OR"
	AssignXor    AssignmentOperator = "XOR"
	AssignConcat AssignmentOperator = "CONCAT"
)

type comparisonFunc func(a, b Value) (bool, error)
type assignmentFunc func(a, b Value) (Value, error)

// comparisonTable and assignmentTable are the two fixed registries of
// section 4.1, keyed first by operator-id then narrowed by type within
// each implementation. A two-level lookup -- operator-id, then the
// implementation function itself type-switches -- beats a giant
// conditional and keeps the table a first-class extension point (see
// design notes, section 9).
var comparisonTable = map[ComparisonOperator]comparisonFunc{
	OpEQ: func(a, b Value) (bool, error) { return Equal(a, b), nil },
	OpNE: func(a, b Value) (bool, error) { return !Equal(a, b), nil },
	OpLT: orderedCompare(func(c int) bool { return c < 0 }),
	OpLE: orderedCompare(func(c int) bool { return c <= 0 }),
	OpGT: orderedCompare(func(c int) bool { return c > 0 }),
	OpGE: orderedCompare(func(c int) bool { return c >= 0 }),
	OpAnd: boolCompare(func(a, b bool) bool { return a && b }),
	OpOr:  boolCompare(func(a, b bool) bool { return a || b }),
}

func orderedCompare(accept func(int) bool) comparisonFunc {
	return func(a, b Value) (bool, error) {
		if a.TypeOf() != TypeInt && a.TypeOf() != TypeFloat && a.TypeOf() != TypeString {
			return false, newErr(KindUnsupportedOperator, "ordering comparison on type %v", a.TypeOf())
		}
		c, err := Compare(a, b)
		if err != nil {
			return false, err
		}
		return accept(c), nil
	}
}

func boolCompare(f func(a, b bool) bool) comparisonFunc {
	return func(a, b Value) (bool, error) {
		if a.TypeOf() != TypeBoolean || b.TypeOf() != TypeBoolean {
			return false, newErr(KindTypeMismatch, "logical operator requires BOOLEAN, got %v/%v", a.TypeOf(), b.TypeOf())
		}
		return f(a.BoolValue(), b.BoolValue()), nil
	}
}

var assignmentTable = map[AssignmentOperator]assignmentFunc{
	AssignSet: func(a, b Value) (Value, error) { return b, nil },
	// the int funcs report false on int64 overflow
	AssignAdd: arithmetic(func(a, b int64) (int64, bool) {
		r := a + b
		return r, (a^r)&(b^r) >= 0
	}, func(a, b float64) float64 { return a + b }),
	AssignSub: arithmetic(func(a, b int64) (int64, bool) {
		r := a - b
		return r, (a^b)&(a^r) >= 0
	}, func(a, b float64) float64 { return a - b }),
	AssignMul: arithmetic(func(a, b int64) (int64, bool) {
		r := a * b
		return r, a == 0 || (r/a == b && !(a == -1 && b == -1<<63))
	}, func(a, b float64) float64 { return a * b }),
	AssignDiv: divide,
	AssignAnd: logical(func(a, b bool) bool { return a && b }),
	AssignOr:  logical(func(a, b bool) bool { return a || b }),
	AssignXor: logical(func(a, b bool) bool { return a != b }),
	AssignConcat: func(a, b Value) (Value, error) {
		if a.TypeOf() != TypeString || b.TypeOf() != TypeString {
			return Value{}, newErr(KindTypeMismatch, "CONCAT requires STRING, got %v/%v", a.TypeOf(), b.TypeOf())
		}
		return String(a.StringValue() + b.StringValue()), nil
	},
}

func arithmetic(ints func(a, b int64) (int64, bool), floats func(a, b float64) float64) assignmentFunc {
	return func(a, b Value) (Value, error) {
		if a.TypeOf() != b.TypeOf() {
			return Value{}, newErr(KindTypeMismatch, "arithmetic operator requires matching types, got %v/%v", a.TypeOf(), b.TypeOf())
		}
		switch a.TypeOf() {
		case TypeInt:
			r, ok := ints(a.IntValue(), b.IntValue())
			if !ok {
				return Value{}, newErr(KindArithmeticError, "integer overflow")
			}
			return Int(r), nil
		case TypeFloat:
			return Float(floats(a.FloatValue(), b.FloatValue())), nil
		default:
			return Value{}, newErr(KindUnsupportedOperator, "arithmetic operator on type %v", a.TypeOf())
		}
	}
}

func divide(a, b Value) (Value, error) {
	if a.TypeOf() != b.TypeOf() {
		return Value{}, newErr(KindTypeMismatch, "DIV requires matching types, got %v/%v", a.TypeOf(), b.TypeOf())
	}
	switch a.TypeOf() {
	case TypeInt:
		if b.IntValue() == 0 {
			return Value{}, newErr(KindArithmeticError, "division by zero")
		}
		return Int(a.IntValue() / b.IntValue()), nil
	case TypeFloat:
		if b.FloatValue() == 0 {
			return Value{}, newErr(KindArithmeticError, "division by zero")
		}
		return Float(a.FloatValue() / b.FloatValue()), nil
	default:
		return Value{}, newErr(KindUnsupportedOperator, "DIV on type %v", a.TypeOf())
	}
}

func logical(f func(a, b bool) bool) assignmentFunc {
	return func(a, b Value) (Value, error) {
		if a.TypeOf() != TypeBoolean || b.TypeOf() != TypeBoolean {
			return Value{}, newErr(KindTypeMismatch, "logical operator requires BOOLEAN, got %v/%v", a.TypeOf(), b.TypeOf())
		}
		return Bool(f(a.BoolValue(), b.BoolValue())), nil
	}
}

// evalComparison dispatches (op, lhs.TypeOf()) against comparisonTable.
// lhs and rhs must already be the same type; callers (evalCondition)
// enforce that before calling in.
func evalComparison(op ComparisonOperator, lhs, rhs Value) (bool, error) {
	f, ok := comparisonTable[op]
	if !ok {
		return false, newErr(KindUnsupportedOperator, "unknown comparison operator %q", op)
	}
	return f(lhs, rhs)
}

// evalAssignment dispatches (op, lhs.TypeOf()) against assignmentTable.
func evalAssignment(op AssignmentOperator, lhs, rhs Value) (Value, error) {
	f, ok := assignmentTable[op]
	if !ok {
		return Value{}, newErr(KindUnsupportedOperator, "unknown assignment operator %q", op)
	}
	return f(lhs, rhs)
}
