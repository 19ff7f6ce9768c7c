// Copyright 2026 The Puminer Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package minestats provides opt-in, low-overhead telemetry for a mining
// run: patterns found, candidates pruned by reason, phase durations, and
// cache occupancy. It is designed to be safe to call from hot paths: when
// disabled, every public function is a no-op.
package minestats

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls whether and how telemetry is exposed for a run.
//
//   - MetricsAddr, when non-empty, starts a dedicated HTTP server serving
//     /metrics. If the host process already exposes Prometheus elsewhere,
//     leave this empty and register promhttp yourself.
type Config struct {
	Enabled     bool
	MetricsAddr string
}

var enabled atomic.Bool

var (
	patternsFoundTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "puminer_patterns_found_total",
		Help: "Total number of closed patterns accepted into the top-k heap across all runs",
	})
	candidatesPrunedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "puminer_candidates_pruned_total",
		Help: "Total candidates dropped without full evaluation, by pruning reason",
	}, []string{"reason"})
	candidatesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "puminer_candidates_processed_total",
		Help: "Total candidates popped from the Phase 3 priority queue",
	})
	phaseDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "puminer_phase_duration_seconds",
		Help:    "Wall-clock duration of each mining phase",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})
	cacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "puminer_cache_entries",
		Help: "Number of memoized itemset evaluations held by the last observed run",
	})
	topKMinSupport = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "puminer_topk_min_support",
		Help: "Current minimum support retained in the top-k heap (0 until the heap fills)",
	})
)

func init() {
	prometheus.MustRegister(
		patternsFoundTotal,
		candidatesPrunedTotal,
		candidatesProcessedTotal,
		phaseDuration,
		cacheSize,
		topKMinSupport,
	)
}

// Enable turns telemetry collection on or off and, if cfg.MetricsAddr is
// set, starts a background HTTP server exposing /metrics. Safe to call
// multiple times.
func Enable(cfg Config) {
	enabled.Store(cfg.Enabled)
	if cfg.MetricsAddr != "" {
		startMetricsEndpoint(cfg.MetricsAddr)
	}
}

// Enabled reports whether telemetry collection is active.
func Enabled() bool { return enabled.Load() }

// ObservePatternFound records one accepted closed pattern.
func ObservePatternFound() {
	if !enabled.Load() {
		return
	}
	patternsFoundTotal.Inc()
}

// ObserveCandidatePruned records one candidate dropped for reason.
func ObserveCandidatePruned(reason string) {
	if !enabled.Load() {
		return
	}
	candidatesPrunedTotal.WithLabelValues(reason).Inc()
}

// ObserveCandidateProcessed records one candidate popped off the frontier.
func ObserveCandidateProcessed() {
	if !enabled.Load() {
		return
	}
	candidatesProcessedTotal.Inc()
}

// ObservePhaseDuration records how long a named phase took.
func ObservePhaseDuration(phase string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// ObserveCacheSize records the current number of memoized cache entries.
func ObserveCacheSize(n int) {
	if !enabled.Load() {
		return
	}
	cacheSize.Set(float64(n))
}

// ObserveTopKMinSupport records the heap's current dynamic threshold.
func ObserveTopKMinSupport(support int) {
	if !enabled.Load() {
		return
	}
	topKMinSupport.Set(float64(support))
}

func startMetricsEndpoint(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
}
