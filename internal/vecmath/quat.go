package vecmath

import "math"

// Quat is a rotation quaternion. Composition convention throughout the
// kernel is new = old.Mul(delta): the delta rotation is applied in the
// body's local frame after the previous orientation.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity returns the no-rotation quaternion.
func QuatIdentity() Quat { return Quat{W: 1} }

// AxisAngle builds a quaternion rotating by angle radians about axis.
// The axis is normalized here; a zero axis yields the identity rotation.
func AxisAngle(axis Vec3, angle float64) Quat {
	n := axis.Normalize()
	if n == (Vec3{}) {
		return QuatIdentity()
	}
	half := angle * 0.5
	s := math.Sin(half)
	return Quat{
		W: math.Cos(half),
		X: n.X * s,
		Y: n.Y * s,
		Z: n.Z * s,
	}
}

// Mul is the Hamilton product q ⊗ o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize rescales q to unit length. A degenerate zero quaternion
// normalizes to the identity.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return QuatIdentity()
	}
	return Quat{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Rotate applies the sandwich product q v q⁻¹ using the double-cross
// expansion: t = 2(u × v); v' = v + w·t + u × t, where u is the vector
// part of q. Assumes q is (near) unit length.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}
