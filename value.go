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
	"encoding/json"
	"fmt"
)

// Type tags the four scalar kinds a Value may carry.
type Type int

const (
	TypeString Type = iota + 1
	TypeInt
	TypeFloat
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// Value is a tagged scalar over {STRING, INT, FLOAT, BOOLEAN}. The zero
// Value is invalid; construct with String, Int, Float or Bool.
//
// Value is a sum type in spirit: exactly one of the fields below is ever
// read, gated by typ. The wire (input/output) form remains the
// four-nullable-field record shape described by spec.md section 6;
// conversion happens at the boundary (see the config package), not here.
type Value struct {
	typ Type
	str string
	num int64
	flt float64
	b   bool
}

func String(v string) Value { return Value{typ: TypeString, str: v} }
func Int(v int64) Value     { return Value{typ: TypeInt, num: v} }
func Float(v float64) Value { return Value{typ: TypeFloat, flt: v} }
func Bool(v bool) Value     { return Value{typ: TypeBoolean, b: v} }

// Zero returns the zero value for t: "", 0, 0.0 or false.
func Zero(t Type) Value {
	switch t {
	case TypeString:
		return String("")
	case TypeInt:
		return Int(0)
	case TypeFloat:
		return Float(0)
	case TypeBoolean:
		return Bool(false)
	default:
		panic(fmt.Errorf("goap: zero: unknown type %v", t))
	}
}

// TypeOf returns the value's type tag.
func (v Value) TypeOf() Type { return v.typ }

func (v Value) StringValue() string  { return v.str }
func (v Value) IntValue() int64      { return v.num }
func (v Value) FloatValue() float64  { return v.flt }
func (v Value) BoolValue() bool      { return v.b }

func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeInt:
		return fmt.Sprintf("%d", v.num)
	case TypeFloat:
		return fmt.Sprintf("%g", v.flt)
	case TypeBoolean:
		return fmt.Sprintf("%t", v.b)
	default:
		return "<invalid>"
	}
}

// Equal is structural equality: both the type tag and the underlying
// scalar must agree. Values of differing type are never equal.
func Equal(a, b Value) bool {
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeString:
		return a.str == b.str
	case TypeInt:
		return a.num == b.num
	case TypeFloat:
		return a.flt == b.flt
	case TypeBoolean:
		return a.b == b.b
	default:
		return false
	}
}

// Compare returns -1, 0 or 1 per the usual convention. Ordering is defined
// for INT/FLOAT (numeric) and STRING (lexicographic); BOOLEAN has no
// ordering beyond equality, so Compare on two booleans reports TypeMismatch.
func Compare(a, b Value) (int, error) {
	if a.typ != b.typ {
		return 0, newErr(KindTypeMismatch, "compare: %v vs %v", a.typ, b.typ)
	}
	switch a.typ {
	case TypeString:
		switch {
		case a.str < b.str:
			return -1, nil
		case a.str > b.str:
			return 1, nil
		default:
			return 0, nil
		}
	case TypeInt:
		switch {
		case a.num < b.num:
			return -1, nil
		case a.num > b.num:
			return 1, nil
		default:
			return 0, nil
		}
	case TypeFloat:
		switch {
		case a.flt < b.flt:
			return -1, nil
		case a.flt > b.flt:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, newErr(KindTypeMismatch, "compare: type %v has no ordering", a.typ)
	}
}

// InputValue is the wire (four-nullable-field) form of Value, used at the
// boundary of the core -- schema/config layers decode into this shape,
// exactly one of the four fields populated, then call ParseInputValue.
type InputValue struct {
	String  *string  `json:"STRING,omitempty" mapstructure:"string"`
	Int     *int64   `json:"INT,omitempty" mapstructure:"int"`
	Float   *float64 `json:"FLOAT,omitempty" mapstructure:"float"`
	Boolean *bool    `json:"BOOLEAN,omitempty" mapstructure:"boolean"`
}

// ParseInputValue converts the wire form to a Value, requiring that
// exactly one field is set; MalformedValue otherwise.
func ParseInputValue(in InputValue) (Value, error) {
	var (
		v     Value
		count int
	)
	if in.String != nil {
		v = String(*in.String)
		count++
	}
	if in.Int != nil {
		v = Int(*in.Int)
		count++
	}
	if in.Float != nil {
		v = Float(*in.Float)
		count++
	}
	if in.Boolean != nil {
		v = Bool(*in.Boolean)
		count++
	}
	if count != 1 {
		return Value{}, newErr(KindMalformedValue, "expected exactly one of STRING|INT|FLOAT|BOOLEAN, got %d", count)
	}
	return v, nil
}

// ToInputValue converts a Value back to its wire form, for output records.
func ToInputValue(v Value) InputValue {
	switch v.typ {
	case TypeString:
		s := v.str
		return InputValue{String: &s}
	case TypeInt:
		n := v.num
		return InputValue{Int: &n}
	case TypeFloat:
		f := v.flt
		return InputValue{Float: &f}
	case TypeBoolean:
		b := v.b
		return InputValue{Boolean: &b}
	default:
		panic(fmt.Errorf("goap: toInputValue: invalid value"))
	}
}

// MarshalJSON encodes a Value in its wire (four-nullable-field) form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToInputValue(v))
}

// UnmarshalJSON decodes a Value from its wire form, enforcing the
// exactly-one-field rule via ParseInputValue.
func (v *Value) UnmarshalJSON(data []byte) error {
	var in InputValue
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	parsed, err := ParseInputValue(in)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
