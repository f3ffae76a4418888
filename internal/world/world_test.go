package world

import (
	"math"
	"testing"

	"pinchlab/internal/config"
	"pinchlab/internal/interact"
	"pinchlab/internal/softbody"
	"pinchlab/internal/vecmath"
)

func newWorld() *World {
	return New(config.DefaultTuning(), 960, 600, 1)
}

func TestSpawnAndReset(t *testing.T) {
	w := newWorld()

	if w.SpawnSoft("cloth", 200, 40) == nil {
		t.Fatal("cloth spawn failed")
	}
	if w.SpawnBody("cube", vecmath.Vec3{X: 400, Y: 200}) == nil {
		t.Fatal("cube spawn failed")
	}
	if w.SpawnSoft("nope", 0, 0) != nil {
		t.Error("unknown soft kind should spawn nothing")
	}
	if len(w.Soft) != 1 || len(w.Bodies) != 1 {
		t.Fatalf("soft=%d bodies=%d", len(w.Soft), len(w.Bodies))
	}

	w.Reset()
	if len(w.Soft) != 0 || len(w.Bodies) != 0 || w.Tick != 0 {
		t.Error("reset left state behind")
	}
}

func TestUpdate_HeldBodyExemptFromGravitySameTick(t *testing.T) {
	w := newWorld()
	b := w.SpawnBody("cube", vecmath.Vec3{X: 300, Y: 300})

	// The router runs before kinematics, so the grab in this tick's
	// input already exempts the body from free-fall this same tick.
	w.Update([]interact.Input{{Actor: 0, Pos: vecmath.Vec3{X: 300, Y: 300}, Grab: true}})

	if !b.Held {
		t.Fatal("body not held")
	}
	if b.Vel.Y != 0 {
		t.Errorf("held body accumulated gravity: vel.y = %f", b.Vel.Y)
	}
}

func TestUpdate_UnheldBodyFalls(t *testing.T) {
	w := newWorld()
	b := w.SpawnBody("cube", vecmath.Vec3{X: 300, Y: 100})

	w.Update(nil)

	if b.Vel.Y <= 0 {
		t.Error("free body did not fall")
	}
}

func TestUpdate_SpringPullsAttachedPoint(t *testing.T) {
	w := newWorld()
	cfg := w.Cfg
	cfg.Gravity = 0
	o := w.SpawnSoft("blob", 300, 300)

	// Attach to the blob center point.
	w.Update([]interact.Input{{Actor: 0, Pos: vecmath.Vec3{X: 300, Y: 300}, Pinch: true}})
	// Drag the anchor to the right; the point should chase it.
	before := o.Points[0].Pos.X
	w.Update([]interact.Input{{Actor: 0, Pos: vecmath.Vec3{X: 400, Y: 300}, Pinch: true}})

	if o.Points[0].Pos.X <= before {
		t.Error("attached point did not move toward the anchor")
	}
}

func TestUpdate_TickAdvances(t *testing.T) {
	w := newWorld()
	for i := 0; i < 5; i++ {
		w.Update(nil)
	}
	if w.Tick != 5 {
		t.Errorf("tick = %d, want 5", w.Tick)
	}
}

func TestDropActor_ReleasesHold(t *testing.T) {
	w := newWorld()
	b := w.SpawnBody("cube", vecmath.Vec3{X: 300, Y: 300})

	w.Update([]interact.Input{{Actor: 2, Pos: vecmath.Vec3{X: 300, Y: 300}, Grab: true}})
	if !b.Held {
		t.Fatal("setup: not held")
	}

	w.DropActor(2)
	if b.Held {
		t.Error("body still held after DropActor")
	}
}

func TestBindLandmarks(t *testing.T) {
	w := newWorld()
	o := w.SpawnSoft("tracked", 300, 300)
	rig := o.Rig

	a := vecmath.Vec2{X: 500, Y: 400}
	b := vecmath.Vec2{X: 580, Y: 400}
	w.BindLandmarks(0, a, b)

	if o.Points[rig.AnchorA].Pos != a || o.Points[rig.AnchorB].Pos != b {
		t.Error("anchors not rebound to landmarks")
	}
	// Original anchor span was 40; the new pair doubles it, so the rig
	// scale doubles with it.
	if math.Abs(rig.BaseSpan-80) > 1e-9 {
		t.Errorf("base span = %f, want 80", rig.BaseSpan)
	}

	// Free points moved with the new midpoint.
	for i := range o.Points {
		if o.Points[i].Pinned {
			continue
		}
		if o.Points[i].Pos.X < 400 {
			t.Errorf("free point %d left behind at %v", i, o.Points[i].Pos)
		}
	}
}

func TestBindLandmarks_NonTrackedNoop(t *testing.T) {
	w := newWorld()
	o := w.SpawnSoft("rope", 300, 50)
	before := o.Points[0].Pos

	w.BindLandmarks(0, vecmath.Vec2{X: 1, Y: 1}, vecmath.Vec2{X: 2, Y: 2})

	if o.Points[0].Pos != before {
		t.Error("non-tracked object mutated by BindLandmarks")
	}
}

func TestUpdate_TrackedExemptFromCrumple(t *testing.T) {
	w := newWorld()
	rig := w.SpawnSoft("tracked", 300, 300)
	cloth := w.SpawnSoft("cloth", 290, 290)

	rigBefore := append([]softbody.Point(nil), rig.Points...)
	w.Crumple(vecmath.Vec2{X: 300, Y: 300}, 15)

	for i := range rig.Points {
		if rig.Points[i].Pos != rigBefore[i].Pos {
			t.Fatal("tracked rig crumpled")
		}
	}

	moved := false
	for i := range cloth.Points {
		if !cloth.Points[i].Pinned && cloth.Points[i].Pos != (vecmath.Vec2{X: 290 + float64(i%12)*18, Y: 290 + float64(i/12)*18}) {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("cloth untouched by crumple")
	}
}
