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
	"container/heap"
	"context"

	"go.uber.org/zap"
)

// Status is the terminal state of a planning query.
type Status string

const (
	StatusFound       Status = "FOUND"
	StatusUnreachable Status = "UNREACHABLE"
	StatusAborted     Status = "ABORTED"
)

// ActionPlan is the result of GenerateActionPlan: an ordered sequence of
// transitions (and the subset of those that carry an action label),
// bracketed by the initial and final world-states, per section 3.
type ActionPlan struct {
	Actions      []string        `json:"actions"`
	Transitions  []string        `json:"transitions"`
	TotalSteps   int             `json:"totalSteps"`
	TotalCost    float64         `json:"totalCost"`
	InitialState []VariableValue `json:"initialState"`
	FinalState   []VariableValue `json:"finalState"`
	Status       Status          `json:"status"`

	// QueryID correlates this plan with its log lines (see WithLogger) --
	// a supplemental field beyond the distilled spec, not required by
	// any invariant in section 8.
	QueryID string `json:"queryId,omitempty"`
	// Trace is populated only when WithTrace is supplied: one entry per
	// node expansion, in expansion order.
	Trace []TraceEntry `json:"trace,omitempty"`
}

// TraceEntry records one A* node expansion, for callers that opt into
// WithTrace.
type TraceEntry struct {
	State      Hash
	G          float64
	F          float64
	Transition string
}

// DefaultMaxExpansions is the search bound of section 4.5: hitting it
// yields ABORTED rather than looping forever, which matters chiefly for
// zero-cost-transition models (section 4.5's zero-cost cycle guard).
const DefaultMaxExpansions = 100_000

// Heuristic estimates the remaining cost from state to a state satisfying
// goal. It must be admissible (never overestimate the true remaining
// cost) for GenerateActionPlan's optimality guarantee (section 8,
// property 7) to hold. See design notes section 9: kept abstract so a
// tighter heuristic is a swappable performance lever, not a correctness
// requirement.
type Heuristic func(vars []Variable, state WorldState, goal []Condition) float64

// IndicatorHeuristic is the safe default of section 4.5: for each
// unsatisfied goal condition, add 1 * the variable's Weight, regardless
// of comparison operator or how far the value is from satisfying it. This
// is admissible as long as no unsatisfied condition's Weight exceeds the
// cheapest cost of satisfying it (e.g. Weight <= 1 with transition costs
// >= 1). A Weight of 0 contributes 0 per unsatisfied condition, which is
// always admissible, but a zero heuristic degrades A* to plain Dijkstra.
func IndicatorHeuristic(vars []Variable, state WorldState, goal []Condition) float64 {
	weight := make(map[string]float64, len(vars))
	for _, v := range vars {
		weight[v.ID] = v.Weight
	}
	var total float64
	for _, c := range goal {
		ok, err := evalCondition(c, state)
		if err != nil || !ok {
			total += weight[c.VariableID]
		}
	}
	return total
}

type plannerConfig struct {
	maxExpansions int
	heuristic     Heuristic
	logger        *zap.Logger
	trace         bool
	queryID       string
	onExpand      func()
}

// PlannerOption configures GenerateActionPlan; see WithMaxExpansions,
// WithHeuristic, WithLogger, WithTrace, WithQueryID and WithExpansionHook.
type PlannerOption func(*plannerConfig)

func WithMaxExpansions(n int) PlannerOption {
	return func(c *plannerConfig) { c.maxExpansions = n }
}

func WithHeuristic(h Heuristic) PlannerOption {
	return func(c *plannerConfig) { c.heuristic = h }
}

// WithLogger attaches a zap.Logger for structured per-expansion debug
// traces and a per-query info-level summary. Nil-safe: omit this option
// (or pass zap.NewNop()) to run silently, which is the default.
func WithLogger(l *zap.Logger) PlannerOption {
	return func(c *plannerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTrace records a TraceEntry per node expansion on the returned
// ActionPlan. Off by default, since most callers don't need it and it
// costs an allocation per expansion.
func WithTrace() PlannerOption {
	return func(c *plannerConfig) { c.trace = true }
}

// WithQueryID overrides the random query correlation id (see newQueryID,
// which uses google/uuid) with a caller-supplied one.
func WithQueryID(id string) PlannerOption {
	return func(c *plannerConfig) { c.queryID = id }
}

// WithExpansionHook registers a callback invoked once per node expansion,
// after the bound/cancellation checks -- used by the metrics package to
// increment an expansion counter without the core importing prometheus.
func WithExpansionHook(f func()) PlannerOption {
	return func(c *plannerConfig) { c.onExpand = f }
}

type searchNode struct {
	state WorldState
	g     float64
	f     float64
	seq   int // insertion order, for tie-breaking
}

// frontier is a min-heap ordered by f, then by higher g (deeper states
// first), then by insertion order -- the tie-break rule of section 4.5,
// required for determinism (property: identical inputs produce identical
// plans).
type frontier []*searchNode

func (q frontier) Len() int { return len(q) }
func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].g != q[j].g {
		return q[i].g > q[j].g
	}
	return q[i].seq < q[j].seq
}
func (q frontier) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *frontier) Push(x any)        { *q = append(*q, x.(*searchNode)) }
func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

type cameFromEntry struct {
	predecessor Hash
	transition  string
}

// GenerateActionPlan runs the A* search of section 4.5 over world-states,
// using transitions as edges weighted by their Cost. Model-level errors
// (schema, type, operator validity) are reported once, up front, via
// ValidateModel, before any node is expanded -- per section 7, only
// ArithmeticError is folded into the search itself (it prunes an edge).
//
// ctx is checked once per node expansion (section 5); a cancelled ctx
// yields Status ABORTED with no partial plan.
func GenerateActionPlan(ctx context.Context, vars []Variable, transitions []Transition, initialState WorldState, goal []Condition, opts ...PlannerOption) (ActionPlan, error) {
	cfg := plannerConfig{
		maxExpansions: DefaultMaxExpansions,
		heuristic:     IndicatorHeuristic,
		logger:        zap.NewNop(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.queryID == "" {
		cfg.queryID = newQueryID()
	}
	log := cfg.logger.With(zap.String("query_id", cfg.queryID))

	if err := ValidateModel(vars, transitions, goal); err != nil {
		return ActionPlan{}, err
	}

	initialValues := initialState.Values()

	satisfied, err := GoalsSatisfied(goal, initialState)
	if err != nil {
		return ActionPlan{}, err
	}
	if satisfied {
		log.Info("plan found: initial state already satisfies goal", zap.Int("steps", 0))
		return ActionPlan{
			Status:       StatusFound,
			InitialState: initialValues,
			FinalState:   initialValues,
			QueryID:      cfg.queryID,
		}, nil
	}

	// bestG holds the best known g for every state discovered so far,
	// whether still open or already expanded -- it backs both the
	// lazy-deletion skip check on dequeue and the re-push decision below,
	// per section 4.5.
	bestG := map[Hash]float64{initialState.Identity(): 0}
	cameFrom := make(map[Hash]cameFromEntry)

	var trace []TraceEntry

	open := &frontier{}
	heap.Init(open)
	seq := 0
	push := func(s WorldState, g float64) {
		h := cfg.heuristic(vars, s, goal)
		heap.Push(open, &searchNode{state: s, g: g, f: g + h, seq: seq})
		seq++
	}
	push(initialState, 0)

	expansions := 0
	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			log.Info("plan aborted: context cancelled", zap.Int("expansions", expansions))
			return ActionPlan{Status: StatusAborted, InitialState: initialValues, FinalState: initialValues, QueryID: cfg.queryID}, nil
		default:
		}

		if expansions >= cfg.maxExpansions {
			log.Info("plan aborted: expansion limit reached", zap.Int("limit", cfg.maxExpansions))
			return ActionPlan{Status: StatusAborted, InitialState: initialValues, FinalState: initialValues, QueryID: cfg.queryID}, nil
		}

		current := heap.Pop(open).(*searchNode)
		currentHash := current.state.Identity()

		if best, ok := bestG[currentHash]; ok && current.g > best {
			continue
		}
		expansions++
		if cfg.onExpand != nil {
			cfg.onExpand()
		}
		var via string
		if cf, ok := cameFrom[currentHash]; ok {
			via = cf.transition
		}
		if cfg.trace {
			trace = append(trace, TraceEntry{State: currentHash, G: current.g, F: current.f, Transition: via})
		}
		log.Debug("expand", zap.Uint64("state", uint64(currentHash)), zap.Float64("g", current.g), zap.Float64("f", current.f), zap.String("transition", via))

		satisfied, err := GoalsSatisfied(goal, current.state)
		if err != nil {
			return ActionPlan{}, err
		}
		if satisfied {
			plan, err := reconstructPlan(cfg.queryID, transitions, cameFrom, initialState, current.state, current.g, trace)
			if err == nil {
				log.Info("plan found", zap.Int("steps", plan.TotalSteps), zap.Float64("cost", plan.TotalCost), zap.Int("expansions", expansions))
			}
			return plan, err
		}

		for _, t := range transitions {
			enabled, err := IsEnabled(t, current.state)
			if err != nil {
				return ActionPlan{}, err
			}
			if !enabled {
				continue
			}
			successor, err := Fire(t, current.state)
			if err != nil {
				if KindOf(err) == KindArithmeticError {
					// this transition is treated as not applicable for
					// planning purposes (section 4.1 / 7); try the next one.
					continue
				}
				return ActionPlan{}, err
			}
			g := current.g + t.Cost
			successorHash := successor.Identity()
			if best, ok := bestG[successorHash]; ok && g >= best {
				// not a strictly better g: skip, per section 4.5 (this is
				// also what guards against zero-cost cycles re-enqueuing
				// the same state forever).
				continue
			}
			bestG[successorHash] = g
			cameFrom[successorHash] = cameFromEntry{predecessor: currentHash, transition: t.ID}
			push(successor, g)
		}
	}

	log.Info("plan unreachable", zap.Int("expansions", expansions))
	return ActionPlan{
		Status:       StatusUnreachable,
		InitialState: initialValues,
		FinalState:   initialValues,
		QueryID:      cfg.queryID,
	}, nil
}

func reconstructPlan(queryID string, transitions []Transition, cameFrom map[Hash]cameFromEntry, initialState, goalState WorldState, totalCost float64, trace []TraceEntry) (ActionPlan, error) {
	byID := make(map[string]Transition, len(transitions))
	for _, t := range transitions {
		byID[t.ID] = t
	}

	var transitionIDs []string
	cursor := goalState.Identity()
	initialHash := initialState.Identity()
	for cursor != initialHash {
		entry, ok := cameFrom[cursor]
		if !ok {
			return ActionPlan{}, newErr(KindSchemaError, "internal error: broken came-from chain")
		}
		transitionIDs = append(transitionIDs, entry.transition)
		cursor = entry.predecessor
	}
	// reverse, since we walked goal -> start
	for i, j := 0, len(transitionIDs)-1; i < j; i, j = i+1, j-1 {
		transitionIDs[i], transitionIDs[j] = transitionIDs[j], transitionIDs[i]
	}

	var actions []string
	for _, id := range transitionIDs {
		if t := byID[id]; t.Action != "" {
			actions = append(actions, t.Action)
		}
	}

	return ActionPlan{
		Actions:      actions,
		Transitions:  transitionIDs,
		TotalSteps:   len(transitionIDs),
		TotalCost:    totalCost,
		InitialState: initialState.Values(),
		FinalState:   goalState.Values(),
		Status:       StatusFound,
		QueryID:      queryID,
		Trace:        trace,
	}, nil
}
