package softbody

import (
	"pinchlab/internal/config"
	"pinchlab/internal/vecmath"
)

// Solver advances soft-body objects one tick at a time. It owns no object
// state; the caller passes objects in and the solver mutates them in place.
type Solver struct {
	Cfg           *config.Tuning
	Width, Height float64
}

func NewSolver(cfg *config.Tuning, width, height float64) *Solver {
	return &Solver{Cfg: cfg, Width: width, Height: height}
}

// Step integrates an object and relaxes its constraints for one tick.
func (s *Solver) Step(o *Object) {
	s.integrate(o)
	for i := 0; i < s.Cfg.Iterations; i++ {
		s.relax(o)
	}
}

// integrate performs Verlet integration with boundary clamps. Velocity is
// implicit: v = (pos - old) * drag. Drag is applied every step, so this is
// positional damping rather than an explicit velocity state.
func (s *Solver) integrate(o *Object) {
	t := s.Cfg
	floor := s.Height - t.Margin

	for i := range o.Points {
		p := &o.Points[i]
		if p.Pinned {
			continue
		}

		vx := (p.Pos.X - p.Old.X) * t.SoftDrag
		vy := (p.Pos.Y - p.Old.Y) * t.SoftDrag

		p.Old = p.Pos
		p.Pos.X += vx
		p.Pos.Y += vy + t.Gravity

		// Floor and wall clamps re-derive Old with ground friction so
		// the reflected implicit velocity is damped instead of bounced.
		if p.Pos.Y > floor {
			p.Pos.Y = floor
			p.Old.Y = p.Pos.Y + vy*t.GroundFriction
			p.Old.X = p.Pos.X - vx*t.GroundFriction
		} else if p.Pos.Y < -s.Height {
			// Runaway guard: keep escaped points inside the world.
			p.Pos.Y = -s.Height
			p.Old.Y = p.Pos.Y
		}
		if p.Pos.X < t.Margin {
			p.Pos.X = t.Margin
			p.Old.X = p.Pos.X + vx*t.GroundFriction
		} else if p.Pos.X > s.Width-t.Margin {
			p.Pos.X = s.Width - t.Margin
			p.Old.X = p.Pos.X + vx*t.GroundFriction
		}
	}
}

// relax runs one Gauss-Seidel pass over the sticks in reverse insertion
// order. Walking backward by index keeps removal during iteration safe.
func (s *Solver) relax(o *Object) {
	t := s.Cfg

	for i := len(o.Sticks) - 1; i >= 0; i-- {
		st := &o.Sticks[i]
		a := &o.Points[st.A]
		b := &o.Points[st.B]

		d := b.Pos.Sub(a.Pos)
		dist := d.Length()
		if dist == 0 {
			continue
		}

		if dist > st.Rest*t.BreakThreshold {
			o.Sticks = append(o.Sticks[:i], o.Sticks[i+1:]...)
			continue
		}

		// Each endpoint takes half the correction; a pinned endpoint
		// absorbs nothing and the other side converges over iterations.
		diff := (st.Rest - dist) / dist
		off := d.Scale(diff * 0.5 * t.Stiffness)
		if !a.Pinned {
			a.Pos = a.Pos.Sub(off)
		}
		if !b.Pinned {
			b.Pos = b.Pos.Add(off)
		}
	}
}

// PullPoint lerps a point toward an anchor by the spring-pull fraction.
// This is the attachment integration step: an exponential approach, not a
// physical spring force.
func (s *Solver) PullPoint(o *Object, idx int, anchor vecmath.Vec2) {
	p := &o.Points[idx]
	if p.Pinned {
		return
	}
	p.Pos = p.Pos.Lerp(anchor, s.Cfg.SpringPull)
}
