// Package tune searches controller tunings by solving the closed-loop
// scenario for each candidate and ranking them by tracking error.
package tune

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/san-kum/procsim/internal/metrics"
	"github.com/san-kum/procsim/internal/model"
	"github.com/san-kum/procsim/internal/process"
)

// Candidate is one evaluated tuning.
type Candidate struct {
	Gain      float64
	TimeI     float64
	IAE       float64
	Overshoot float64
	Converged bool
}

// GridSearch evaluates every combination of the gain and integral-time
// candidates. Each evaluation builds and solves an independent
// flowsheet, so they run concurrently.
type GridSearch struct {
	Gains   []float64
	TimeIs  []float64
	Workers int // defaults to GOMAXPROCS

	SolverOptions map[string]float64
}

// Search solves the scenario for every candidate and returns the results
// ranked best first. Non-converged candidates sort last.
func (g *GridSearch) Search(ctx context.Context, base process.LoopConfig) ([]Candidate, error) {
	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type job struct{ gain, timeI float64 }
	jobs := make([]job, 0, len(g.Gains)*len(g.TimeIs))
	for _, gain := range g.Gains {
		for _, timeI := range g.TimeIs {
			jobs = append(jobs, job{gain, timeI})
		}
	}

	results := make([]Candidate, len(jobs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, j job) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = g.evaluate(base, j.gain, j.timeI)
		}(i, j)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		ca, cb := results[a], results[b]
		if ca.Converged != cb.Converged {
			return ca.Converged
		}
		return ca.IAE < cb.IAE
	})
	return results, nil
}

func (g *GridSearch) evaluate(base process.LoopConfig, gain, timeI float64) Candidate {
	cand := Candidate{Gain: gain, TimeI: timeI, IAE: math.Inf(1)}

	cfg := base
	cfg.Gain = gain
	cfg.TimeI = timeI

	loop, err := process.NewLoop(cfg)
	if err != nil {
		return cand
	}
	res, err := loop.Solve(model.NewNewton(g.SolverOptions))
	if err != nil || !res.OK() {
		return cand
	}

	times, pv, out := loop.Series()
	sp := make([]float64, len(times))
	for i, t := range times {
		sp[i] = loop.PID.Setpoint.At(t)
	}
	vals := metrics.Summarize(times, sp, pv, out, metrics.NewIAE(), metrics.NewOvershoot())

	cand.IAE = vals["iae"]
	cand.Overshoot = vals["overshoot"]
	cand.Converged = true
	return cand
}
