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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_EqualAndCompare(t *testing.T) {
	require.True(t, Equal(Int(5), Int(5)))
	require.False(t, Equal(Int(5), Int(6)))
	require.False(t, Equal(Int(5), Float(5)), "cross-type values are never equal")

	cmp, err := Compare(Int(1), Int(2))
	require.NoError(t, err)
	require.Equal(t, -1, cmp)

	cmp, err = Compare(String("b"), String("a"))
	require.NoError(t, err)
	require.Equal(t, 1, cmp)

	_, err = Compare(Bool(true), Bool(false))
	require.Error(t, err)
	require.Equal(t, KindTypeMismatch, KindOf(err))

	_, err = Compare(Int(1), Float(1))
	require.Error(t, err)
	require.Equal(t, KindTypeMismatch, KindOf(err))
}

func TestValue_ZeroAndString(t *testing.T) {
	require.Equal(t, Int(0), Zero(TypeInt))
	require.Equal(t, String(""), Zero(TypeString))
	require.Equal(t, Float(0), Zero(TypeFloat))
	require.Equal(t, Bool(false), Zero(TypeBoolean))

	require.Equal(t, "5", Int(5).String())
	require.Equal(t, "true", Bool(true).String())
}

func TestParseInputValue(t *testing.T) {
	n := int64(3)
	v, err := ParseInputValue(InputValue{Int: &n})
	require.NoError(t, err)
	require.Equal(t, Int(3), v)

	s := "x"
	b := true
	_, err = ParseInputValue(InputValue{String: &s, Boolean: &b})
	require.Error(t, err, "exactly-one-of-four must be enforced")
	require.Equal(t, KindMalformedValue, KindOf(err))

	_, err = ParseInputValue(InputValue{})
	require.Error(t, err)
	require.Equal(t, KindMalformedValue, KindOf(err))
}

func TestValue_JSONRoundTrip(t *testing.T) {
	for _, v := range []Value{Int(42), Float(3.5), String("hi"), Bool(true)} {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		var out Value
		require.NoError(t, json.Unmarshal(data, &out))
		require.True(t, Equal(v, out))
	}
}
