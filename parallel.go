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

	"golang.org/x/sync/errgroup"
)

// Query bundles one GenerateActionPlan call's arguments, for use with
// PlanAll.
type Query struct {
	Vars         []Variable
	Transitions  []Transition
	InitialState WorldState
	Goal         []Condition
	Options      []PlannerOption
}

// PlanAll runs queries concurrently, one goroutine per query, per
// section 5: "multiple queries may execute in parallel across
// independent threads/tasks provided each holds its own copy ... the
// engine performs no internal synchronization because it mutates nothing
// visible to other queries". Each Query gets its own open/closed/came-from
// state inside GenerateActionPlan; nothing is shared between them beyond
// the caller's own (read-only) Vars/Transitions slices.
//
// Every query is launched up front. If any single query's
// GenerateActionPlan returns a non-nil error (a model-level error, per
// section 7 -- not an ABORTED status, which is a normal result, not an
// error), the shared context is cancelled, so queries still searching
// return ABORTED, and PlanAll returns that error; results already
// computed for other queries are discarded, matching errgroup's
// fail-fast semantics. If ctx itself is cancelled, the affected queries
// return ABORTED plans and PlanAll returns them with a nil error. This is plain concurrent fan-out, not incremental
// replanning or shared-state search -- see the Non-goals of section 1.
func PlanAll(ctx context.Context, queries []Query) ([]ActionPlan, error) {
	results := make([]ActionPlan, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			plan, err := GenerateActionPlan(ctx, q.Vars, q.Transitions, q.InitialState, q.Goal, q.Options...)
			if err != nil {
				return err
			}
			results[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
