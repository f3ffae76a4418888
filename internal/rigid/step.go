package rigid

import (
	"github.com/google/uuid"

	"pinchlab/internal/config"
)

// Kinematics advances rigid bodies one tick at a time. FloorY is the
// world-space floor plane (screen coordinates, +Y down).
type Kinematics struct {
	Cfg    *config.Tuning
	FloorY float64
}

func NewKinematics(cfg *config.Tuning, floorY float64) *Kinematics {
	return &Kinematics{Cfg: cfg, FloorY: floorY}
}

// Step runs one tick for a single body. The order matters: glow decays
// unconditionally, then held / snap-locked / snapped bodies skip free-fall.
func (k *Kinematics) Step(b *Body, bodies []*Body) {
	t := k.Cfg

	if b.Glow > 0 {
		b.Glow -= t.GlowDecay
		if b.Glow < 0 {
			b.Glow = 0
		}
	}

	if b.Held {
		return
	}

	if b.SnapTimer > 0 {
		b.SnapTimer--
		return
	}

	if b.SnapTarget != uuid.Nil {
		if target := FindBody(bodies, b.SnapTarget); target != nil {
			// Rigidly follow the stack base.
			b.Pos.X = target.Pos.X
			b.Pos.Z = target.Pos.Z
			b.Pos.Y = target.Pos.Y - t.StackHeight
			b.Orient = target.Orient
			return
		}
		// Dangling reference: clear and fall through to free-fall.
		b.SnapTarget = uuid.Nil
	}

	b.Vel.Y += t.Gravity
	b.Pos = b.Pos.Add(b.Vel)

	if b.Pos.Y > k.FloorY {
		b.Pos.Y = k.FloorY
		b.Vel.Y *= -t.Restitution
		b.Vel.X *= t.GroundFriction
		b.Vel.Z *= t.GroundFriction
	}

	b.Vel = b.Vel.Scale(t.RigidDrag)
}

// CheckSnap scans for a stack base under a just-released body. The first
// qualifying candidate in slice order wins; there is no best-match search.
// On a match the body locks onto the candidate and physics is suspended
// for SnapLockTicks.
func (k *Kinematics) CheckSnap(b *Body, bodies []*Body) bool {
	t := k.Cfg

	for _, cand := range bodies {
		if cand == b || cand.ID == b.ID {
			continue
		}
		dx := cand.Pos.X - b.Pos.X
		dz := cand.Pos.Z - b.Pos.Z
		if dx > t.SnapRadius || dx < -t.SnapRadius || dz > t.SnapRadius || dz < -t.SnapRadius {
			continue
		}
		dy := cand.Pos.Y - b.Pos.Y
		if dy < t.StackHeight*t.SnapGapMin || dy > t.StackHeight*t.SnapGapMax {
			continue
		}

		b.Pos.X = cand.Pos.X
		b.Pos.Z = cand.Pos.Z
		b.Pos.Y = cand.Pos.Y - t.StackHeight
		b.Orient = cand.Orient
		b.Vel = b.Vel.Scale(0)
		b.SnapTarget = cand.ID
		b.SnapTimer = t.SnapLockTicks
		b.Glow = 1
		cand.Glow = 1
		return true
	}
	return false
}
