package interact

import (
	"math/rand"

	"github.com/google/uuid"

	"pinchlab/internal/config"
	"pinchlab/internal/project"
	"pinchlab/internal/rigid"
	"pinchlab/internal/softbody"
	"pinchlab/internal/vecmath"
)

// Router tracks per-actor interaction state. Each actor holds at most one
// rigid body and attaches to at most one soft-body point; the two maps are
// independent. Actors are processed in input order within a tick, so the
// first-processed actor wins a contended grab.
type Router struct {
	Cfg *config.Tuning

	holds   map[int]*Hold
	springs map[int]*Spring
	rng     *rand.Rand
}

func NewRouter(cfg *config.Tuning, seed int64) *Router {
	return &Router{
		Cfg:     cfg,
		holds:   make(map[int]*Hold),
		springs: make(map[int]*Spring),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Route processes one tick of inputs. It runs before the solvers so that
// held and attached entities are exempted from free-fall in the same tick.
func (r *Router) Route(inputs []Input, soft []*softbody.Object, bodies []*rigid.Body, kin *rigid.Kinematics, cam *project.Camera) {
	for _, in := range inputs {
		r.routeGrab(in, bodies, kin, cam)
		r.routeSpring(in, soft)
	}
}

// ColliderRadius is the perspective-aware hit radius for a body: its
// visual scale times the base size, widened by a slack factor, shrunk by
// depth the same way the renderer shrinks the body.
func (r *Router) ColliderRadius(b *rigid.Body, cam *project.Camera) float64 {
	return b.Scale.X * r.Cfg.BaseSize * r.Cfg.RadiusFactor * r.Cfg.ColliderSlack * cam.ScaleAt(b.Pos.Z)
}

func (r *Router) routeGrab(in Input, bodies []*rigid.Body, kin *rigid.Kinematics, cam *project.Camera) {
	hold := r.holds[in.Actor]

	switch {
	case in.Grab && hold == nil:
		r.tryGrab(in, bodies, cam)

	case in.Grab && hold != nil:
		if b := rigid.FindBody(bodies, hold.BodyID); b != nil {
			r.followHand(in, hold, b)
		} else {
			// Body vanished under us (reset); drop the record.
			delete(r.holds, in.Actor)
		}

	case !in.Grab && hold != nil:
		if b := rigid.FindBody(bodies, hold.BodyID); b != nil {
			b.Held = false
			kin.CheckSnap(b, bodies)
		}
		delete(r.holds, in.Actor)

	default:
		r.hoverGlow(in, bodies, cam)
	}
}

// tryGrab picks the closest unheld body within its collider radius.
// Bodies held by another actor are excluded from candidacy, which is what
// guarantees hold exclusivity between actors in the same tick.
func (r *Router) tryGrab(in Input, bodies []*rigid.Body, cam *project.Camera) {
	hand := in.Pos.XY()

	var best *rigid.Body
	bestDist := 0.0
	for _, b := range bodies {
		if b.Held {
			continue
		}
		d := hand.DistanceTo(b.Pos.XY())
		if d > r.ColliderRadius(b, cam) {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = b, d
		}
	}
	if best == nil {
		return
	}

	best.Held = true
	best.SnapTarget = uuid.Nil // grabbing breaks it out of a stack
	best.SnapTimer = 0
	best.Glow = 1

	r.holds[in.Actor] = &Hold{
		BodyID:     best.ID,
		Offset:     best.Pos.Sub(in.Pos),
		RefTwist:   in.Twist,
		GrabOrient: best.Orient,
	}
}

// followHand drags the held body toward the hand and converts the twist
// delta since last tick into a spin about the vertical axis. The delta is
// consumed each tick: the reference angle advances with the hand.
func (r *Router) followHand(in Input, hold *Hold, b *rigid.Body) {
	target := in.Pos.Add(hold.Offset)
	b.Pos = b.Pos.Lerp(target, r.Cfg.HoldLerp)
	b.Vel = vecmath.Vec3{}

	dTwist := in.Twist - hold.RefTwist
	if dTwist != 0 {
		spin := vecmath.AxisAngle(vecmath.Vec3{Y: 1}, dTwist*r.Cfg.SpinGain)
		b.Orient = b.Orient.Mul(spin).Normalize()
		hold.RefTwist = in.Twist
	}
}

// hoverGlow raises glow on any body under a non-grabbing hand. Feedback
// only; no interaction state changes.
func (r *Router) hoverGlow(in Input, bodies []*rigid.Body, cam *project.Camera) {
	hand := in.Pos.XY()
	for _, b := range bodies {
		if hand.DistanceTo(b.Pos.XY()) <= r.ColliderRadius(b, cam) && b.Glow < r.Cfg.HoverGlow {
			b.Glow = r.Cfg.HoverGlow
		}
	}
}

func (r *Router) routeSpring(in Input, soft []*softbody.Object) {
	spring := r.springs[in.Actor]

	switch {
	case in.Pinch && spring == nil:
		r.tryAttach(in, soft)

	case in.Pinch && spring != nil:
		if spring.Object >= len(soft) || spring.Point >= len(soft[spring.Object].Points) {
			// Object list changed under us (reset).
			delete(r.springs, in.Actor)
			return
		}
		spring.Anchor = in.Pos.XY()

	case !in.Pinch && spring != nil:
		// No snap-back, no residual velocity.
		delete(r.springs, in.Actor)
	}
}

// tryAttach finds the nearest eligible point within the capture radius.
// Tracking-linked objects are exempt from all interaction.
func (r *Router) tryAttach(in Input, soft []*softbody.Object) {
	hand := in.Pos.XY()

	bestObj, bestPt := -1, -1
	bestDist := r.Cfg.CaptureRadius
	for oi, o := range soft {
		if o.Kind == softbody.KindTracked {
			continue
		}
		for pi := range o.Points {
			d := hand.DistanceTo(o.Points[pi].Pos)
			if d <= bestDist {
				bestObj, bestPt, bestDist = oi, pi, d
			}
		}
	}
	if bestObj < 0 {
		return
	}
	r.springs[in.Actor] = &Spring{Object: bestObj, Point: bestPt, Anchor: hand}
}

// Springs exposes the live attachment map for the solver's pull pass and
// for tether rendering.
func (r *Router) Springs() map[int]*Spring { return r.springs }

// Holds exposes the live hold map.
func (r *Router) Holds() map[int]*Hold { return r.holds }

// DropActor clears all interaction state for an actor whose input stream
// stopped. Absence of input is not auto-detected as release; the host
// calls this explicitly.
func (r *Router) DropActor(actor int, bodies []*rigid.Body, kin *rigid.Kinematics) {
	if hold, ok := r.holds[actor]; ok {
		if b := rigid.FindBody(bodies, hold.BodyID); b != nil {
			b.Held = false
			kin.CheckSnap(b, bodies)
		}
		delete(r.holds, actor)
	}
	delete(r.springs, actor)
}

// Reset drops all interaction state. Used on a full world reset.
func (r *Router) Reset() {
	r.holds = make(map[int]*Hold)
	r.springs = make(map[int]*Spring)
}
