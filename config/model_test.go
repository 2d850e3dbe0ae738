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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	goap "github.com/joeycumines/go-goap"
)

const sampleYAML = `
variables:
  - id: x
    type: INT
    weight: 2
  - id: ready
    type: BOOLEAN
initial:
  - variableId: x
    int: 5
transitions:
  - id: inc
    action: increment
    cost: 1
    conditions:
      - variableId: x
        operator: LT
        argument:
          int: 10
    effects:
      - variableId: x
        operator: ADD
        argument:
          int: 1
goal:
  - variableId: x
    operator: EQ
    argument:
      int: 10
planner:
  maxExpansions: 500
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_convertsDocumentToModel(t *testing.T) {
	path := writeTemp(t, sampleYAML)

	model, err := Load(path)
	require.NoError(t, err)
	require.Len(t, model.Variables, 2)
	require.Len(t, model.Transitions, 1)
	require.Equal(t, 500, model.MaxExpansions)

	require.Equal(t, "x", model.Initial[0].VariableID)
	require.Equal(t, goap.Int(5), model.Initial[0].Value)

	tr := model.Transitions[0]
	require.Equal(t, "inc", tr.ID)
	require.Equal(t, "increment", tr.Action)
	require.Equal(t, float64(1), tr.Cost)
}

func TestLoad_defaultsMaxExpansionsWhenUnset(t *testing.T) {
	path := writeTemp(t, `
variables:
  - id: x
    type: INT
goal: []
`)
	model, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, goap.DefaultMaxExpansions, model.MaxExpansions)
}

func TestConvert_rejectsUnknownType(t *testing.T) {
	_, err := Convert(Document{Variables: []VariableDoc{{ID: "x", Type: "BOGUS"}}})
	require.Error(t, err)
	require.Equal(t, goap.KindSchemaError, goap.KindOf(err))
}

func TestConvert_rejectsMissingVariableID(t *testing.T) {
	_, err := Convert(Document{Variables: []VariableDoc{{Type: "INT"}}})
	require.Error(t, err)
	require.Equal(t, goap.KindSchemaError, goap.KindOf(err))
}

func TestConvert_rejectsAmbiguousArgument(t *testing.T) {
	i := int64(1)
	doc := Document{
		Variables: []VariableDoc{{ID: "x", Type: "INT"}},
		Goal: []ConditionDoc{{
			VariableID: "x",
			Operator:   "EQ",
			Argument:   ArgumentDoc{ValueDoc: ValueDoc{Int: &i}, VariableID: "x"},
		}},
	}
	_, err := Convert(doc)
	require.Error(t, err)
	require.Equal(t, goap.KindMalformedArgument, goap.KindOf(err))
}

func TestConvert_resultIsAcceptedByValidateModel(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	model, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, goap.ValidateModel(model.Variables, model.Transitions, model.Goal))
}
