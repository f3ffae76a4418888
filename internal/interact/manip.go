package interact

import (
	"pinchlab/internal/softbody"
	"pinchlab/internal/vecmath"
)

// Crumple pushes points near center radially outward with randomized
// jitter, scaled by linear falloff with distance and by strength.
// Tracking-linked objects are exempt.
func (r *Router) Crumple(soft []*softbody.Object, center vecmath.Vec2, strength float64) {
	radius := r.Cfg.CrumpleRadius

	for _, o := range soft {
		if o.Kind == softbody.KindTracked {
			continue
		}
		for i := range o.Points {
			p := &o.Points[i]
			if p.Pinned {
				continue
			}
			d := p.Pos.Sub(center)
			dist := d.Length()
			if dist >= radius {
				continue
			}

			falloff := 1 - dist/radius
			dir := d.Normalize()
			if dir == (vecmath.Vec2{}) {
				dir = vecmath.Vec2{X: 1} // point exactly at center; push somewhere
			}

			jx := (r.rng.Float64()*2 - 1) * strength * falloff
			jy := (r.rng.Float64()*2 - 1) * strength * falloff
			p.Pos.X += dir.X*strength*falloff + jx
			p.Pos.Y += dir.Y*strength*falloff + jy
		}
	}
}

// Fold pushes points near center away from it and imparts a fraction of
// the supplied velocity, both with linear falloff. Used for sweep/swat
// gestures where the hand carries momentum through the fabric.
func (r *Router) Fold(soft []*softbody.Object, center vecmath.Vec2, vel vecmath.Vec2, strength float64) {
	radius := r.Cfg.FoldRadius

	for _, o := range soft {
		if o.Kind == softbody.KindTracked {
			continue
		}
		for i := range o.Points {
			p := &o.Points[i]
			if p.Pinned {
				continue
			}
			d := p.Pos.Sub(center)
			dist := d.Length()
			if dist >= radius {
				continue
			}

			falloff := 1 - dist/radius
			dir := d.Normalize()
			p.Pos = p.Pos.Add(dir.Scale(strength * falloff))
			p.Pos = p.Pos.Add(vel.Scale(0.5 * falloff))
		}
	}
}
