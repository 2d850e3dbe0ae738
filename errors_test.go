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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, Kind(0), KindOf(nil))
	require.Equal(t, Kind(0), KindOf(fmt.Errorf("plain error")))
	require.Equal(t, KindSchemaError, KindOf(NewError(KindSchemaError, "missing %s", "x")))
}

func TestError_Error(t *testing.T) {
	err := NewError(KindTypeMismatch, "expected %v got %v", TypeInt, TypeString)
	require.Equal(t, "goap: TypeMismatch: expected INT got STRING", err.Error())
}
