// Package engine searches earthwork parameter spaces for the scenario that
// moves the least material.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitegrade/sitegrade/internal/volume"
	"github.com/sitegrade/sitegrade/pkg/constants"
	"github.com/sitegrade/sitegrade/pkg/mathutil"
)

// State tracks a search run through its lifecycle.
type State int

const (
	// StateInitialized means the run has not started evaluating.
	StateInitialized State = iota
	// StateEvaluating means candidate evaluations are in flight.
	StateEvaluating
	// StateConverged means a best scenario was selected.
	StateConverged
	// StateExhausted means the run ended without a usable scenario.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateEvaluating:
		return "evaluating"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Scenario pairs one candidate with its computed volumes.
type Scenario struct {
	Candidate Candidate
	Volumes   volume.Result
	MaskCells int
}

// Total returns the scenario's objective, the total volume moved.
func (s Scenario) Total() float64 { return s.Volumes.Total() }

// Evaluator computes the volumes for one candidate parameter set. Evaluators
// must be safe for concurrent calls.
type Evaluator interface {
	Evaluate(c Candidate) (Scenario, error)
}

// Options tune a search run.
type Options struct {
	// Workers is the number of concurrent candidate evaluations, minimum 1.
	Workers int
	// KeepAll retains every evaluated scenario on the outcome, ordered by
	// candidate index.
	KeepAll bool
	// Progress, when set, is called after each evaluation with the number of
	// candidates evaluated so far and the total.
	Progress func(evaluated, total int)
}

// Outcome is the result of one search run. On cooperative cancellation the
// scenarios evaluated so far remain valid and Best reflects them.
type Outcome struct {
	RunID     string
	State     State
	Best      *Scenario
	Evaluated int
	Total     int
	Cancelled bool
	Scenarios []Scenario
}

// Engine enumerates a search space exhaustively and selects the scenario
// minimizing total moved volume. Terrain-derived objectives are non-smooth,
// so no gradient method is used. An Engine is immutable after construction
// and Run may be called repeatedly, concurrently if desired.
type Engine struct {
	logger *zap.Logger
	eval   Evaluator
	space  Space
	opts   Options
}

// New constructs an Engine over the given evaluator and search space.
func New(logger *zap.Logger, eval Evaluator, space Space, opts Options) (*Engine, error) {
	if eval == nil {
		return nil, fmt.Errorf("evaluator cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Engine{logger: logger, eval: eval, space: space, opts: opts}, nil
}

type evalResult struct {
	scenario Scenario
	err      error
}

// Run evaluates every candidate in the space and returns the outcome.
// Cancellation is polled between candidate evaluations, never within one;
// a cancelled run still returns the best scenario found so far.
func (e *Engine) Run(ctx context.Context) (*Outcome, error) {
	candidates, err := e.space.candidates()
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		RunID: uuid.New().String()[:8],
		State: StateInitialized,
		Total: len(candidates),
	}
	e.logger.Info("starting earthwork search",
		zap.String("run", out.RunID),
		zap.Int("candidates", out.Total),
		zap.Int("workers", e.opts.Workers),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	out.State = StateEvaluating
	jobs := make(chan Candidate)
	results := make(chan evalResult)

	go func() {
		defer close(jobs)
		for _, c := range candidates {
			select {
			case <-runCtx.Done():
				return
			case jobs <- c:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < e.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				s, evalErr := e.eval.Evaluate(c)
				results <- evalResult{scenario: s, err: evalErr}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	evaluated := make([]*Scenario, len(candidates))
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		out.Evaluated++
		s := r.scenario
		evaluated[s.Candidate.Index] = &s
		if e.opts.Progress != nil {
			e.opts.Progress(out.Evaluated, out.Total)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}

	// Selection runs over candidates in enumeration order once the workers
	// drain. The tolerance ties in better are not transitive, so a fixed
	// reduction order is what keeps the selected scenario independent of
	// worker arrival order.
	var best *Scenario
	for _, s := range evaluated {
		if s == nil {
			continue
		}
		if e.opts.KeepAll {
			out.Scenarios = append(out.Scenarios, *s)
		}
		if s.MaskCells > 0 && better(*s, best) {
			best = s
		}
	}
	out.Cancelled = ctx.Err() != nil

	if best != nil {
		out.Best = best
		out.State = StateConverged
		e.logger.Info("earthwork search converged",
			zap.String("run", out.RunID),
			zap.Int("evaluated", out.Evaluated),
			zap.Int("candidates", out.Total),
			zap.Float64("height", best.Candidate.Height),
			zap.Float64("rotationDeg", best.Candidate.Rotation),
			zap.Float64("totalVolume", best.Total()),
			zap.Float64("netVolume", best.Volumes.Net()),
			zap.Bool("cancelled", out.Cancelled),
		)
		return out, nil
	}

	out.State = StateExhausted
	if out.Cancelled {
		return out, ctx.Err()
	}
	e.logger.Warn("earthwork search exhausted without usable candidates",
		zap.String("run", out.RunID),
		zap.Int("candidates", out.Total),
	)
	return out, &InfeasibleError{Candidates: out.Total}
}

// better applies the selection rule: smallest total moved volume, then the
// smallest cut/fill imbalance, then the earliest candidate in enumeration
// order. Callers must apply it over candidates in a fixed order; the
// tolerance comparisons are not transitive across chains of near-ties.
func better(s Scenario, best *Scenario) bool {
	if best == nil {
		return true
	}
	if !mathutil.WithinTolerance(s.Total(), best.Total(), constants.VolumeTolerance) {
		return s.Total() < best.Total()
	}
	if !mathutil.WithinTolerance(s.Volumes.Imbalance(), best.Volumes.Imbalance(), constants.VolumeTolerance) {
		return s.Volumes.Imbalance() < best.Volumes.Imbalance()
	}
	return s.Candidate.Index < best.Candidate.Index
}
