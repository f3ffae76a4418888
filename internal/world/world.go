// Package world owns the complete mutable simulation state and runs the
// per-tick pipeline: interaction routing first (so held and attached
// entities skip free-fall in the same tick), then the soft-body solver,
// the spring attachment pull, and finally rigid-body kinematics.
package world

import (
	"pinchlab/internal/config"
	"pinchlab/internal/interact"
	"pinchlab/internal/project"
	"pinchlab/internal/rigid"
	"pinchlab/internal/softbody"
	"pinchlab/internal/vecmath"
)

// World is the single explicit simulation context. It is owned by the
// caller, mutated in place during Update, and never touched concurrently:
// the tick model is single-threaded and cooperative.
type World struct {
	Width, Height float64
	Cfg           *config.Tuning

	Soft   []*softbody.Object
	Bodies []*rigid.Body

	Router *interact.Router
	Camera *project.Camera

	solver *softbody.Solver
	kin    *rigid.Kinematics

	Tick int
}

func New(cfg *config.Tuning, width, height float64, seed int64) *World {
	return &World{
		Width:  width,
		Height: height,
		Cfg:    cfg,
		Router: interact.NewRouter(cfg, seed),
		Camera: project.NewCamera(cfg.FocalLength, width, height),
		solver: softbody.NewSolver(cfg, width, height),
		kin:    rigid.NewKinematics(cfg, height-cfg.BaseSize),
	}
}

// Update advances the simulation one tick. Runs to completion; nothing
// blocks or suspends.
func (w *World) Update(inputs []interact.Input) {
	w.Tick++

	w.Router.Route(inputs, w.Soft, w.Bodies, w.kin, w.Camera)

	for _, o := range w.Soft {
		w.solver.Step(o)
	}

	// Attachment pull runs after all objects are integrated and relaxed.
	for _, s := range w.Router.Springs() {
		if s.Object < len(w.Soft) && s.Point < len(w.Soft[s.Object].Points) {
			w.solver.PullPoint(w.Soft[s.Object], s.Point, s.Anchor)
		}
	}

	for _, b := range w.Bodies {
		w.kin.Step(b, w.Bodies)
	}
}

// SpawnSoft creates a soft-body object from a template tag at the given
// placement. Unknown kinds are ignored (defensive no-op, matching the
// rest of the core's error policy).
func (w *World) SpawnSoft(kind string, x, y float64) *softbody.Object {
	var o *softbody.Object
	switch kind {
	case "cloth":
		o = softbody.NewCloth(x, y, 12, 8, 18)
	case "rope":
		o = softbody.NewRope(x, y, 14, 16)
	case "blob":
		o = softbody.NewBlob(x, y, 10, 45)
	case "tracked":
		o = softbody.NewTrackedRig(x-20, y, x+20, y, 6)
	default:
		return nil
	}
	w.Soft = append(w.Soft, o)
	return o
}

// SpawnBody creates a rigid body from a template tag.
func (w *World) SpawnBody(kind string, pos vecmath.Vec3) *rigid.Body {
	var b *rigid.Body
	switch kind {
	case "cube":
		b = rigid.NewCube(pos, 1, rigid.DefaultCubeColors)
	default:
		return nil
	}
	w.Bodies = append(w.Bodies, b)
	return b
}

// Spawn dispatches a preset spawn entry to the right template family.
func (w *World) Spawn(s config.Spawn) {
	switch s.Kind {
	case "cube":
		w.SpawnBody(s.Kind, vecmath.Vec3{X: s.X, Y: s.Y, Z: s.Z})
	default:
		w.SpawnSoft(s.Kind, s.X, s.Y)
	}
}

// Reset destroys every object and all interaction state. The only way an
// object's lifecycle ends.
func (w *World) Reset() {
	w.Soft = nil
	w.Bodies = nil
	w.Router.Reset()
	w.Tick = 0
}

// DropActor clears hold/spring state for an actor whose input stream
// disappeared. The host decides when a hand is gone.
func (w *World) DropActor(actor int) {
	w.Router.DropActor(actor, w.Bodies, w.kin)
}

// Crumple applies the radial impulse-plus-jitter effect at a point.
func (w *World) Crumple(center vecmath.Vec2, strength float64) {
	w.Router.Crumple(w.Soft, center, strength)
}

// Fold applies the directional displacement effect at a point.
func (w *World) Fold(center, vel vecmath.Vec2, strength float64) {
	w.Router.Fold(w.Soft, center, vel, strength)
}

// BindLandmarks repositions the pinned anchors of a tracking-linked
// object to a landmark pair and rescales the free points around the new
// midpoint. Derived scale and orientation come entirely from the supplied
// pair; nothing is persisted between calls. Non-tracked objects and bad
// indices are no-ops.
func (w *World) BindLandmarks(objIndex int, a, b vecmath.Vec2) {
	if objIndex < 0 || objIndex >= len(w.Soft) {
		return
	}
	o := w.Soft[objIndex]
	if o.Kind != softbody.KindTracked || o.Rig == nil {
		return
	}

	span := a.DistanceTo(b)
	if span == 0 {
		return
	}
	ratio := span / o.Rig.BaseSpan

	oldMid := o.Points[o.Rig.AnchorA].Pos.Add(o.Points[o.Rig.AnchorB].Pos).Scale(0.5)
	newMid := a.Add(b).Scale(0.5)

	o.Points[o.Rig.AnchorA].Pos = a
	o.Points[o.Rig.AnchorA].Old = a
	o.Points[o.Rig.AnchorB].Pos = b
	o.Points[o.Rig.AnchorB].Old = b

	for i := range o.Points {
		p := &o.Points[i]
		if p.Pinned {
			continue
		}
		rel := p.Pos.Sub(oldMid).Scale(ratio)
		p.Pos = newMid.Add(rel)
		p.Old = p.Pos
	}

	// Rest lengths track the new scale so relaxation doesn't fight the
	// rebinding.
	for i := range o.Sticks {
		o.Sticks[i].Rest *= ratio
	}
	o.Rig.BaseSpan = span
}

// Attachments exposes the live spring map for tether rendering.
func (w *World) Attachments() map[int]*interact.Spring {
	return w.Router.Springs()
}

// Kinematics exposes the rigid stepper, mainly for tests and tooling.
func (w *World) Kinematics() *rigid.Kinematics { return w.kin }
