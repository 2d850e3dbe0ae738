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

// Package config loads a declarative GOAP model -- variables, transitions,
// and a goal -- plus planner options, from a YAML document, converting the
// wire (four-nullable-field) value shape of spec.md section 6 into the
// typed goap.Variable / goap.Transition / goap.Condition records the core
// engine expects.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	goap "github.com/joeycumines/go-goap"
)

// Document is the wire shape of a model file.
type Document struct {
	Variables   []VariableDoc   `mapstructure:"variables"`
	Transitions []TransitionDoc `mapstructure:"transitions"`
	Initial     []InitialDoc    `mapstructure:"initial"`
	Goal        []ConditionDoc  `mapstructure:"goal"`
	Planner     PlannerDoc      `mapstructure:"planner"`
}

// InitialDoc binds one variable to an initial value; variables omitted
// here default to their type's zero value, per spec.md section 4.3.
type InitialDoc struct {
	VariableID string   `mapstructure:"variableId"`
	ValueDoc   `mapstructure:",squash"`
}

type VariableDoc struct {
	ID          string  `mapstructure:"id"`
	Type        string  `mapstructure:"type"`
	Weight      float64 `mapstructure:"weight"`
	Description string  `mapstructure:"description"`
}

type ValueDoc struct {
	String  *string  `mapstructure:"string"`
	Int     *int64   `mapstructure:"int"`
	Float   *float64 `mapstructure:"float"`
	Boolean *bool    `mapstructure:"boolean"`
}

type ArgumentDoc struct {
	ValueDoc   `mapstructure:",squash"`
	VariableID string `mapstructure:"variableId"`
}

type ConditionDoc struct {
	VariableID string      `mapstructure:"variableId"`
	Operator   string      `mapstructure:"operator"`
	Argument   ArgumentDoc `mapstructure:"argument"`
}

type EffectDoc struct {
	VariableID string      `mapstructure:"variableId"`
	Operator   string      `mapstructure:"operator"`
	Argument   ArgumentDoc `mapstructure:"argument"`
}

type TransitionDoc struct {
	ID          string         `mapstructure:"id"`
	Conditions  []ConditionDoc `mapstructure:"conditions"`
	Effects     []EffectDoc    `mapstructure:"effects"`
	Action      string         `mapstructure:"action"`
	Cost        float64        `mapstructure:"cost"`
	Description string         `mapstructure:"description"`
}

type PlannerDoc struct {
	MaxExpansions int `mapstructure:"maxExpansions"`
}

// Model is the converted, typed form of a Document -- ready to pass
// straight to goap.Build and goap.GenerateActionPlan.
type Model struct {
	Variables     []goap.Variable
	Transitions   []goap.Transition
	Initial       []goap.VariableValue
	Goal          []goap.Condition
	MaxExpansions int
}

// Load reads path as YAML (whatever its extension) into a Document, then
// converts it to the core engine's types.
func Load(path string) (Model, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return Model{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var doc Document
	if err := vp.Unmarshal(&doc); err != nil {
		return Model{}, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return Convert(doc)
}

// Convert applies the wire-to-core conversion described in SPEC_FULL.md's
// ambient configuration section, enforcing the SchemaError /
// MalformedValue / MalformedArgument rules of spec.md section 6 at this
// boundary, before anything reaches ValidateModel.
func Convert(doc Document) (Model, error) {
	vars := make([]goap.Variable, 0, len(doc.Variables))
	for _, v := range doc.Variables {
		typ, err := parseType(v.Type)
		if err != nil {
			return Model{}, err
		}
		if v.ID == "" {
			return Model{}, goap.NewError(goap.KindSchemaError, "variable missing id")
		}
		vars = append(vars, goap.Variable{
			ID:          v.ID,
			TypeOf:      typ,
			Weight:      v.Weight,
			Description: v.Description,
		})
	}

	goal := make([]goap.Condition, 0, len(doc.Goal))
	for _, c := range doc.Goal {
		cond, err := convertCondition(c)
		if err != nil {
			return Model{}, err
		}
		goal = append(goal, cond)
	}

	transitions := make([]goap.Transition, 0, len(doc.Transitions))
	for _, t := range doc.Transitions {
		if t.ID == "" {
			return Model{}, goap.NewError(goap.KindSchemaError, "transition missing id")
		}
		conds := make([]goap.Condition, 0, len(t.Conditions))
		for _, c := range t.Conditions {
			cond, err := convertCondition(c)
			if err != nil {
				return Model{}, err
			}
			conds = append(conds, cond)
		}
		effects := make([]goap.Effect, 0, len(t.Effects))
		for _, e := range t.Effects {
			eff, err := convertEffect(e)
			if err != nil {
				return Model{}, err
			}
			effects = append(effects, eff)
		}
		transitions = append(transitions, goap.Transition{
			ID:          t.ID,
			Conditions:  conds,
			Effects:     effects,
			Action:      t.Action,
			Cost:        t.Cost,
			Description: t.Description,
		})
	}

	initial := make([]goap.VariableValue, 0, len(doc.Initial))
	for _, i := range doc.Initial {
		if i.VariableID == "" {
			return Model{}, goap.NewError(goap.KindSchemaError, "initial value missing variableId")
		}
		v, _, err := convertValueDoc(i.ValueDoc)
		if err != nil {
			return Model{}, err
		}
		initial = append(initial, goap.VariableValue{VariableID: i.VariableID, Value: v})
	}

	maxExpansions := doc.Planner.MaxExpansions
	if maxExpansions <= 0 {
		maxExpansions = goap.DefaultMaxExpansions
	}

	return Model{
		Variables:     vars,
		Transitions:   transitions,
		Initial:       initial,
		Goal:          goal,
		MaxExpansions: maxExpansions,
	}, nil
}

func parseType(s string) (goap.Type, error) {
	switch s {
	case "STRING":
		return goap.TypeString, nil
	case "INT":
		return goap.TypeInt, nil
	case "FLOAT":
		return goap.TypeFloat, nil
	case "BOOLEAN":
		return goap.TypeBoolean, nil
	default:
		return 0, goap.NewError(goap.KindSchemaError, "unknown typeOf %q", s)
	}
}

func convertArgument(a ArgumentDoc) (goap.VariableOrValue, error) {
	hasVar := a.VariableID != ""
	v, hasLit, err := convertValueDoc(a.ValueDoc)
	if err != nil {
		return goap.VariableOrValue{}, err
	}
	if hasVar && hasLit {
		return goap.VariableOrValue{}, goap.NewError(goap.KindMalformedArgument, "both variableId and a literal field set")
	}
	if !hasVar && !hasLit {
		return goap.VariableOrValue{}, goap.NewError(goap.KindMalformedArgument, "neither variableId nor a literal field set")
	}
	if hasVar {
		return goap.Ref(a.VariableID), nil
	}
	return goap.Lit(v), nil
}

func convertValueDoc(v ValueDoc) (goap.Value, bool, error) {
	in := goap.InputValue{String: v.String, Int: v.Int, Float: v.Float, Boolean: v.Boolean}
	if v.String == nil && v.Int == nil && v.Float == nil && v.Boolean == nil {
		return goap.Value{}, false, nil
	}
	val, err := goap.ParseInputValue(in)
	if err != nil {
		return goap.Value{}, false, err
	}
	return val, true, nil
}

func convertCondition(c ConditionDoc) (goap.Condition, error) {
	if c.VariableID == "" || c.Operator == "" {
		return goap.Condition{}, goap.NewError(goap.KindSchemaError, "condition missing variableId or operator")
	}
	arg, err := convertArgument(c.Argument)
	if err != nil {
		return goap.Condition{}, err
	}
	return goap.Condition{
		VariableID: c.VariableID,
		Operator:   goap.ComparisonOperator(c.Operator),
		Argument:   arg,
	}, nil
}

func convertEffect(e EffectDoc) (goap.Effect, error) {
	if e.VariableID == "" || e.Operator == "" {
		return goap.Effect{}, goap.NewError(goap.KindSchemaError, "effect missing variableId or operator")
	}
	arg, err := convertArgument(e.Argument)
	if err != nil {
		return goap.Effect{}, err
	}
	return goap.Effect{
		VariableID: e.VariableID,
		Operator:   goap.AssignmentOperator(e.Operator),
		Argument:   arg,
	}, nil
}
