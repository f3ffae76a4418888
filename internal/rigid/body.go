// Package rigid implements the kinematic rigid-body layer: gravity/drag
// integration, floor restitution, stack snapping with a stabilization
// lock, and the hold-following used while a body is grabbed.
//
// This is deliberately not a dynamics engine: there is no torque, no
// inertia tensor and no body-vs-body collision response beyond stacking.
package rigid

import (
	"github.com/google/uuid"

	"pinchlab/internal/vecmath"
)

// Face is an ordered vertex-index loop with a rendering color.
type Face struct {
	Loop  []int
	Color string
}

// Body is one rigid object. SnapTarget references another body by ID and
// may dangle after a reset; the kinematics step clears dangling references
// silently and resumes free-fall.
type Body struct {
	ID   uuid.UUID
	Kind string

	Pos    vecmath.Vec3
	Vel    vecmath.Vec3
	Orient vecmath.Quat
	Scale  vecmath.Vec3

	Verts []vecmath.Vec3
	Faces []Face

	Held       bool
	SnapTarget uuid.UUID
	SnapTimer  int

	// Glow is a decaying visual-feedback scalar in [0,1]. It is owned
	// here because interaction events set it and the step decays it.
	Glow float64
}

var cubeVerts = []vecmath.Vec3{
	{X: -0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: 0.5, Z: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5},
}

var cubeFaces = [][]int{
	{0, 1, 2, 3}, // front
	{5, 4, 7, 6}, // back
	{4, 0, 3, 7}, // left
	{1, 5, 6, 2}, // right
	{4, 5, 1, 0}, // top
	{3, 2, 6, 7}, // bottom
}

// NewCube builds a unit cube body with per-face colors. Scale is a
// dimensionless multiplier of the configured base size; the renderer and
// hit-testing both multiply it by Tuning.BaseSize.
func NewCube(pos vecmath.Vec3, scale float64, colors [6]string) *Body {
	b := &Body{
		ID:     uuid.New(),
		Kind:   "cube",
		Pos:    pos,
		Orient: vecmath.QuatIdentity(),
		Scale:  vecmath.Vec3{X: scale, Y: scale, Z: scale},
		Verts:  append([]vecmath.Vec3(nil), cubeVerts...),
	}
	for i, loop := range cubeFaces {
		b.Faces = append(b.Faces, Face{Loop: append([]int(nil), loop...), Color: colors[i]})
	}
	return b
}

// DefaultCubeColors is the standard toy-block palette.
var DefaultCubeColors = [6]string{"#e74c3c", "#e67e22", "#f1c40f", "#2ecc71", "#3498db", "#9b59b6"}

// FindBody returns the body with the given id, or nil.
func FindBody(bodies []*Body, id uuid.UUID) *Body {
	if id == uuid.Nil {
		return nil
	}
	for _, b := range bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}
