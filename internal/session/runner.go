package session

import (
	"context"
	"fmt"

	"pinchlab/internal/metrics"
	"pinchlab/internal/world"
)

// Result collects what a run produced: the per-tick series for every
// observer plus the final summary values.
type Result struct {
	Ticks   int
	Series  map[string][]float64
	Metrics map[string]float64
}

// Runner advances a world under a script, feeding observers each tick.
type Runner struct {
	World     *world.World
	Script    *Script
	Observers []metrics.Observer
}

func NewRunner(w *world.World, script *Script) *Runner {
	return &Runner{World: w, Script: script}
}

func (r *Runner) AddObserver(o metrics.Observer) {
	r.Observers = append(r.Observers, o)
}

// Run executes the scripted ticks. The context is checked every tick so
// long runs stay cancellable; a cancelled run returns what it gathered.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.Script == nil {
		return nil, fmt.Errorf("session: no script")
	}

	result := &Result{
		Series:  make(map[string][]float64, len(r.Observers)),
		Metrics: make(map[string]float64, len(r.Observers)),
	}
	for _, o := range r.Observers {
		o.Reset()
		result.Series[o.Name()] = make([]float64, 0, r.Script.Ticks)
	}

	for tick := 0; tick < r.Script.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.World.Update(r.Script.InputsAt(tick))

		for _, o := range r.Observers {
			o.Observe(r.World, tick)
			result.Series[o.Name()] = append(result.Series[o.Name()], o.Value())
		}
		result.Ticks++
	}

	for _, o := range r.Observers {
		result.Metrics[o.Name()] = o.Value()
	}
	return result, nil
}
