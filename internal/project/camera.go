// Package project implements the perspective-divide projection shared by
// rendering and hit-testing. The same focal formula scales collider radii
// so a body deeper in the scene is harder to hit, matching what the user
// sees on screen.
package project

import "pinchlab/internal/vecmath"

// nearLimit guards the perspective divide; anything closer than this to
// the camera plane is clipped.
const nearLimit = 1e-3

// Camera projects world coordinates onto a screen plane anchored at
// (CX, CY) using scale = Focal / (Focal + depth).
type Camera struct {
	Focal  float64
	CX, CY float64
}

func NewCamera(focal, width, height float64) *Camera {
	return &Camera{Focal: focal, CX: width / 2, CY: height / 2}
}

// ScaleAt returns the perspective scale at the given depth, or 0 when the
// effective depth is inside the near limit.
func (c *Camera) ScaleAt(z float64) float64 {
	d := c.Focal + z
	if d < nearLimit {
		return 0
	}
	return c.Focal / d
}

// Project maps a world position to screen coordinates. ok is false when
// the point is clipped by the near plane; callers should skip it.
func (c *Camera) Project(p vecmath.Vec3) (x, y, scale float64, ok bool) {
	scale = c.ScaleAt(p.Z)
	if scale == 0 {
		return 0, 0, 0, false
	}
	x = c.CX + (p.X-c.CX)*scale
	y = c.CY + (p.Y-c.CY)*scale
	return x, y, scale, true
}

// WorldVertex transforms a local-space vertex into world space: scale,
// rotate by the orientation, then translate.
func WorldVertex(local vecmath.Vec3, orient vecmath.Quat, scale vecmath.Vec3, pos vecmath.Vec3) vecmath.Vec3 {
	return orient.Rotate(local.Mul(scale)).Add(pos)
}
