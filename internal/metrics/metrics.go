// Package metrics provides per-tick observers over a running world:
// constraint stretch error, a kinetic energy proxy, and orientation
// quaternion drift. Observers accumulate across a run and report a single
// summary value, with the raw series kept by the session recorder.
package metrics

import (
	"math"

	"pinchlab/internal/world"
)

// Observer watches the world once per tick.
type Observer interface {
	Name() string
	Observe(w *world.World, tick int)
	Value() float64
	Reset()
}

// ConstraintError reports the mean relative deviation of stick lengths
// from their rest lengths, averaged over the run. Zero means every
// surviving constraint is satisfied exactly.
type ConstraintError struct {
	total   float64
	samples int
}

func NewConstraintError() *ConstraintError { return &ConstraintError{} }

func (c *ConstraintError) Name() string { return "constraint_error" }

func (c *ConstraintError) Observe(w *world.World, tick int) {
	sum := 0.0
	n := 0
	for _, o := range w.Soft {
		for _, st := range o.Sticks {
			l := o.Points[st.A].Pos.DistanceTo(o.Points[st.B].Pos)
			sum += math.Abs(l-st.Rest) / st.Rest
			n++
		}
	}
	if n > 0 {
		c.total += sum / float64(n)
		c.samples++
	}
}

func (c *ConstraintError) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *ConstraintError) Reset() { c.total, c.samples = 0, 0 }

// KineticEnergy sums implicit soft-body velocities and explicit rigid
// velocities. A proxy, not a conserved quantity: drag removes energy by
// design.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(w *world.World, tick int) {
	e := 0.0
	for _, o := range w.Soft {
		for i := range o.Points {
			v := o.Points[i].Pos.Sub(o.Points[i].Old)
			e += 0.5 * v.Dot(v)
		}
	}
	for _, b := range w.Bodies {
		e += 0.5 * b.Vel.Dot(b.Vel)
	}
	k.total += e
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() { k.total, k.samples = 0, 0 }

// QuatDrift tracks the worst deviation of any body's orientation norm
// from 1 seen during the run. With renormalization after every composed
// spin this should stay at rounding-error scale.
type QuatDrift struct {
	max float64
}

func NewQuatDrift() *QuatDrift { return &QuatDrift{} }

func (q *QuatDrift) Name() string { return "quat_drift" }

func (q *QuatDrift) Observe(w *world.World, tick int) {
	for _, b := range w.Bodies {
		if d := math.Abs(b.Orient.Norm() - 1); d > q.max {
			q.max = d
		}
	}
}

func (q *QuatDrift) Value() float64 { return q.max }

func (q *QuatDrift) Reset() { q.max = 0 }
