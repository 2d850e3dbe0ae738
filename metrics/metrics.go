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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	goap "github.com/joeycumines/go-goap"
)

// Metrics holds the prometheus collectors for planner instrumentation:
// nodes expanded, queries by terminal status, and per-query wall-clock
// duration. Instrumentation is optional -- the core engine never imports
// this package; callers wire it in via goap.WithExpansionHook and the
// helpers below.
type Metrics struct {
	Expansions prometheus.Counter
	Queries    *prometheus.CounterVec
	Duration   prometheus.Histogram
}

// New constructs a Metrics set, unregistered. The Queries counter starts
// with a zero-valued child for each terminal status, so every collector
// is exported from the moment it is registered.
func New() *Metrics {
	m := &Metrics{
		Expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goap_planner_expansions_total",
			Help: "Total number of A* node expansions across all planning queries.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goap_planner_queries_total",
			Help: "Total number of planning queries, by terminal status.",
		}, []string{"status"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "goap_planner_query_duration_seconds",
			Help:    "Wall-clock duration of a planning query.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	for _, s := range []goap.Status{goap.StatusFound, goap.StatusUnreachable, goap.StatusAborted} {
		m.Queries.WithLabelValues(string(s))
	}
	return m
}

// Register registers every collector in m with reg. A nil reg is a no-op.
func (m *Metrics) Register(reg prometheus.Registerer) {
	if reg == nil {
		return
	}
	reg.MustRegister(m.Expansions, m.Queries, m.Duration)
}

// ExpansionHook returns a goap.PlannerOption suitable for
// goap.GenerateActionPlan, incrementing Expansions once per node
// expansion.
func (m *Metrics) ExpansionHook() goap.PlannerOption {
	return goap.WithExpansionHook(func() { m.Expansions.Inc() })
}

// Observe records a completed query's terminal status and duration. Call
// this around a GenerateActionPlan call:
//
//	start := time.Now()
//	plan, err := goap.GenerateActionPlan(ctx, vars, transitions, state, goal, m.ExpansionHook())
//	if err == nil {
//	    m.Observe(plan.Status, time.Since(start))
//	}
func (m *Metrics) Observe(status goap.Status, d time.Duration) {
	m.Queries.WithLabelValues(string(status)).Inc()
	m.Duration.Observe(d.Seconds())
}
