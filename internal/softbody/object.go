// Package softbody implements 2D mass-spring objects solved with
// position-based dynamics: Verlet integration of point masses plus
// iterative relaxation of breakable distance constraints.
package softbody

import "pinchlab/internal/vecmath"

// Kind tags an object for rendering and interaction rules.
type Kind int

const (
	KindCloth Kind = iota
	KindRope
	KindBlob
	// KindTracked marks objects whose pinned points follow external
	// landmark data. They are exempt from grabbing, crumple and fold.
	KindTracked
)

func (k Kind) String() string {
	switch k {
	case KindCloth:
		return "cloth"
	case KindRope:
		return "rope"
	case KindBlob:
		return "blob"
	case KindTracked:
		return "tracked"
	default:
		return "unknown"
	}
}

// Point is one mass in a soft body. Velocity is implicit: it is derived
// each tick from the difference between Pos and Old.
type Point struct {
	Pos    vecmath.Vec2
	Old    vecmath.Vec2
	Pinned bool

	// Rendering hints.
	U, V   float64
	Radius float64
	Color  string

	Mass float64 // reserved; integration is currently uniform
}

// Stick is a distance constraint between two points of the same object,
// referenced by index. Rest must be positive. A stick whose current
// length exceeds Rest times the break threshold is removed for good.
type Stick struct {
	A, B int
	Rest float64

	Visible   bool
	Color     string
	Thickness float64
}

// TrackedRig carries the extra fields only tracking-linked objects need:
// which points anchor to the external landmark pair, and the span between
// the anchors at build time (used to rescale the free points).
type TrackedRig struct {
	AnchorA, AnchorB int
	BaseSpan         float64
}

// Object aggregates points and the sticks constraining them. Points are
// owned contiguously; sticks hold indices so removal and serialization
// stay straightforward.
type Object struct {
	Kind   Kind
	Points []Point
	Sticks []Stick

	// Rig is set only for KindTracked objects.
	Rig *TrackedRig
}

// NewPoint places a point at rest (Old == Pos, implicit velocity zero).
func NewPoint(x, y float64) Point {
	p := vecmath.Vec2{X: x, Y: y}
	return Point{Pos: p, Old: p, Mass: 1}
}

// Link appends a stick between points a and b with rest length equal to
// their current distance.
func (o *Object) Link(a, b int, visible bool) {
	rest := o.Points[a].Pos.DistanceTo(o.Points[b].Pos)
	o.Sticks = append(o.Sticks, Stick{A: a, B: b, Rest: rest, Visible: visible, Thickness: 1})
}
