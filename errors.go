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
	"errors"
	"fmt"
)

// Kind classifies the errors this package returns, per the error handling
// design: model-level errors are reported once up front (before a query's
// search begins), ArithmeticError is the sole runtime error folded into
// search (it prunes an edge rather than aborting), and ExpansionLimitExceeded
// never surfaces as an error at all -- it becomes ActionPlan.Status ABORTED.
type Kind int

const (
	// KindSchemaError is a missing required input field.
	KindSchemaError Kind = iota + 1
	// KindMalformedValue is zero or more than one value field set.
	KindMalformedValue
	// KindMalformedArgument is a VariableOrValue with neither or both of a
	// literal and a variableId set.
	KindMalformedArgument
	// KindTypeMismatch is operand types disagreeing with the governing
	// variable's type.
	KindTypeMismatch
	// KindUnsupportedOperator is an (operator-id, type) pair absent from
	// the relevant operator table.
	KindUnsupportedOperator
	// KindDuplicateAssignment is two values given for the same variable
	// while building an initial WorldState.
	KindDuplicateAssignment
	// KindArithmeticError is a division by zero (or integer overflow) while
	// evaluating an effect; the firing transition is treated as not
	// applicable rather than failing the whole query.
	KindArithmeticError
)

func (k Kind) String() string {
	switch k {
	case KindSchemaError:
		return "SchemaError"
	case KindMalformedValue:
		return "MalformedValue"
	case KindMalformedArgument:
		return "MalformedArgument"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindUnsupportedOperator:
		return "UnsupportedOperator"
	case KindDuplicateAssignment:
		return "DuplicateAssignment"
	case KindArithmeticError:
		return "ArithmeticError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by this package. Use
// errors.As to recover the Kind for programmatic handling.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "goap: " + e.Kind.String()
	}
	return "goap: " + e.Kind.String() + ": " + e.Msg
}

func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NewError builds an *Error of the given Kind, for use by external
// collaborators (e.g. the config package) that need to surface the same
// error kinds this package does at the model-input boundary.
func NewError(kind Kind, format string, args ...any) error {
	return newErr(kind, format, args...)
}

// KindOf extracts the Kind from err, or returns 0 if err is nil or not one
// of this package's errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
