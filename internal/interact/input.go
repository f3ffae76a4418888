// Package interact routes per-actor hand input onto the simulation: an
// exclusive grab machine for rigid bodies, an elastic spring attachment
// for soft-body points, and the stateless crumple/fold manipulators.
package interact

import (
	"github.com/google/uuid"

	"pinchlab/internal/vecmath"
)

// Input is one actor's hand state for a tick. Actor ids are stable across
// ticks for the same physical hand. Grab and Pinch arrive pre-classified
// from the gesture layer; Twist is a continuous angle in radians.
type Input struct {
	Actor int
	Pos   vecmath.Vec3
	Grab  bool
	Pinch bool
	Twist float64
}

// Hold records an actor's grip on a rigid body: the hand-to-body offset
// captured at grab time, the twist reference for the current rotation
// accumulation window, and the orientation at grab time (recorded for
// completeness; following is offset-based).
type Hold struct {
	BodyID     uuid.UUID
	Offset     vecmath.Vec3
	RefTwist   float64
	GrabOrient vecmath.Quat
}

// Spring is an actor's attachment to a soft-body point: object and point
// indices plus the continuously updated anchor.
type Spring struct {
	Object int
	Point  int
	Anchor vecmath.Vec2
}
