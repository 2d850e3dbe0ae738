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
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
)

// Variable describes one state slot in the declarative model: its id, its
// type, a weight reserved for heuristic distance weighting, and an
// optional human-readable description.
type Variable struct {
	ID          string
	TypeOf      Type
	Weight      float64
	Description string
}

// VariableValue pairs a variable id with a concrete Value; Value.TypeOf()
// is expected to equal the referenced Variable's TypeOf.
type VariableValue struct {
	VariableID string `json:"variableId"`
	Value      Value  `json:"value"`
}

// Hash identifies a WorldState's canonical content.
type Hash uint64

// WorldState is a total, immutable mapping from every variable-id in a
// model to a matching-typed Value. Two WorldState values are value-equal
// (and share a Hash) iff their canonical (sorted by variable-id) forms
// agree field by field -- see Equal.
//
// The zero WorldState is empty/invalid; build one with Build.
type WorldState struct {
	// slots is sorted by id, giving WorldState a canonical form for
	// hashing and equality without an explicit "canonicalize" step.
	slots []stateSlot
	index map[string]int
}

type stateSlot struct {
	id    string
	value Value
}

// Build constructs a WorldState over vars, seeded from values. Any
// variable absent from values defaults to its type's zero value.
// Duplicate assignments to the same variable in values, or a value whose
// type disagrees with the variable's declared type, are rejected.
func Build(vars []Variable, values []VariableValue) (WorldState, error) {
	index := make(map[string]int, len(vars))
	slots := make([]stateSlot, len(vars))
	for i, v := range vars {
		index[v.ID] = i
		slots[i] = stateSlot{id: v.ID, value: Zero(v.TypeOf)}
	}

	seen := make(map[string]bool, len(values))
	for _, vv := range values {
		i, ok := index[vv.VariableID]
		if !ok {
			return WorldState{}, newErr(KindSchemaError, "value given for unknown variable %q", vv.VariableID)
		}
		if seen[vv.VariableID] {
			return WorldState{}, newErr(KindDuplicateAssignment, "variable %q assigned more than once", vv.VariableID)
		}
		seen[vv.VariableID] = true
		if vv.Value.TypeOf() != vars[i].TypeOf {
			return WorldState{}, newErr(KindTypeMismatch, "variable %q: expected %v, got %v", vv.VariableID, vars[i].TypeOf, vv.Value.TypeOf())
		}
		slots[i].value = vv.Value
	}

	sorted := make([]stateSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].id < sorted[j].id })
	sortedIndex := make(map[string]int, len(sorted))
	for i, s := range sorted {
		sortedIndex[s.id] = i
	}

	return WorldState{slots: sorted, index: sortedIndex}, nil
}

// Get returns the value bound to id. id must be present -- an absent key
// is a programmer error (a malformed WorldState built outside Build/With).
func (s WorldState) Get(id string) Value {
	i, ok := s.index[id]
	if !ok {
		panic(newErr(KindSchemaError, "variable %q not present in world state", id))
	}
	return s.slots[i].value
}

// Lookup is the non-panicking form of Get.
func (s WorldState) Lookup(id string) (Value, bool) {
	i, ok := s.index[id]
	if !ok {
		return Value{}, false
	}
	return s.slots[i].value, true
}

// With returns a new WorldState with id rebound to newValue; s is
// unchanged. The slot array is copied with the one changed cell
// rewritten; the id index is shared with s.
func (s WorldState) With(id string, newValue Value) WorldState {
	i, ok := s.index[id]
	if !ok {
		panic(newErr(KindSchemaError, "variable %q not present in world state", id))
	}
	slots := make([]stateSlot, len(s.slots))
	copy(slots, s.slots)
	slots[i] = stateSlot{id: id, value: newValue}
	return WorldState{slots: slots, index: s.index}
}

// Values returns every (variableId, Value) pair in canonical (sorted by
// id) order, as VariableValue records -- the shape ActionPlan.initialState
// / finalState and query.SingleStep return.
func (s WorldState) Values() []VariableValue {
	out := make([]VariableValue, len(s.slots))
	for i, slot := range s.slots {
		out[i] = VariableValue{VariableID: slot.id, Value: slot.value}
	}
	return out
}

// Identity returns a content hash of the canonical (variableId, tag,
// value-bytes) sequence. Equal WorldStates always share an Identity;
// differing WorldStates are overwhelmingly likely (but, as with any hash,
// not guaranteed) to differ -- Equal is the authoritative comparison.
func (s WorldState) Identity() Hash {
	h := fnv.New64a()
	var buf [8]byte
	for _, slot := range s.slots {
		_, _ = h.Write([]byte(slot.id))
		_, _ = h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], uint64(slot.value.TypeOf()))
		_, _ = h.Write(buf[:])
		switch slot.value.TypeOf() {
		case TypeString:
			_, _ = h.Write([]byte(slot.value.StringValue()))
		case TypeInt:
			binary.LittleEndian.PutUint64(buf[:], uint64(slot.value.IntValue()))
			_, _ = h.Write(buf[:])
		case TypeFloat:
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(slot.value.FloatValue()))
			_, _ = h.Write(buf[:])
		case TypeBoolean:
			if slot.value.BoolValue() {
				_, _ = h.Write([]byte{1})
			} else {
				_, _ = h.Write([]byte{0})
			}
		}
		_, _ = h.Write([]byte{0xff})
	}
	return Hash(h.Sum64())
}

// Equal holds iff the canonical forms of a and b agree field-wise. This is
// the authoritative comparison; Identity is an optimization over it for
// use as a map key (see planner.go's closed set).
func (a WorldState) Equal(b WorldState) bool {
	if len(a.slots) != len(b.slots) {
		return false
	}
	for i := range a.slots {
		if a.slots[i].id != b.slots[i].id || !Equal(a.slots[i].value, b.slots[i].value) {
			return false
		}
	}
	return true
}
