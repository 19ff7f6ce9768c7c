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

// Package main provides the puminer command-line entry point: it loads a
// line-oriented uncertain transaction file, runs the top-k closed frequent
// itemset miner over it, and prints the result.
//
// Usage:
//
//	puminer mine <file> [-minsup N] [-tau F] [-k N] [-calculator NAME] [-metrics_addr ADDR]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"puminer/internal/ingest"
	"puminer/internal/mining"
	"puminer/internal/telemetry/minestats"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "mine":
		os.Exit(runMine(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: puminer mine <file> [-minsup N] [-tau F] [-k N] [-calculator NAME] [-metrics_addr ADDR]")
}

func runMine(args []string) int {
	fs := flag.NewFlagSet("mine", flag.ExitOnError)
	minsup := fs.Int("minsup", 2, "Minimum probabilistic support a pattern must reach")
	tau := fs.Float64("tau", 0.7, "Frequentness probability threshold in (0, 1]")
	k := fs.Int("k", 5, "Number of top patterns to return")
	calculator := fs.String("calculator", "poly-dp", "Support calculator: poly-dp, fft-dc, or naive-dc")
	workers := fs.Int("workers", 0, "Phase 1 worker count; 0 selects a default based on GOMAXPROCS")
	metricsEnabled := fs.Bool("metrics", false, "Enable in-process mining telemetry (opt-in)")
	metricsAddr := fs.String("metrics_addr", "", "If non-empty, expose Prometheus /metrics on this address (e.g., :9090)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		usage()
		return 2
	}
	path := fs.Arg(0)

	minestats.Enable(minestats.Config{Enabled: *metricsEnabled, MetricsAddr: *metricsAddr})

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "puminer: opening %s: %v\n", path, err)
		return 1
	}
	defer file.Close()

	vocab, store, err := ingest.Parse(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "puminer: parsing %s: %v\n", path, err)
		return 1
	}
	db := ingest.NewTextDatabase(vocab, store)

	cfg := mining.Config{
		MinSupport: *minsup,
		Tau:        *tau,
		K:          *k,
		Calculator: *calculator,
		Workers:    *workers,
	}

	reporter := mining.NewReporter(mining.NewTelemetryObserver())
	engine, err := mining.NewEngine(cfg, db.Store(), reporter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "puminer: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	patterns, err := engine.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "puminer: mining failed: %v\n", err)
		return 1
	}

	fmt.Printf("mined %d transactions, %d items, %d patterns in %s\n",
		db.Size(), vocab.Size(), len(patterns), time.Since(start))
	for _, p := range patterns {
		printPattern(vocab, p)
	}
	return 0
}

func printPattern(vocab interface{ Name(int) string }, p mining.Pattern) {
	names := make([]string, 0, p.Itemset.Len())
	for _, id := range p.Itemset.Items() {
		names = append(names, vocab.Name(id))
	}
	fmt.Printf("%v\tsupport=%d\tprobability=%.6f\n", names, p.Support, p.Probability)
}
