// Package server bridges a gesture-tracking client to the simulation
// over a websocket: the client streams per-frame hand records, the server
// runs the tick loop and broadcasts world snapshots.
package server

import (
	"encoding/json"
	"fmt"

	"pinchlab/internal/interact"
	"pinchlab/internal/vecmath"
	"pinchlab/internal/world"
)

// Envelope wraps every message with a type tag.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty envelope type")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

// Welcome is sent once after a client connects.
type Welcome struct {
	TickHz int     `json:"tickHz"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// HandFrame is one actor's tracked state for a frame.
type HandFrame struct {
	Actor int     `json:"actor"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Grab  bool    `json:"grab"`
	Pinch bool    `json:"pinch"`
	Twist float64 `json:"twist"`
}

// InputFrame carries the full set of detected hands for a frame. Hands
// absent from consecutive frames are eventually dropped by the server.
type InputFrame struct {
	Hands []HandFrame `json:"hands"`
}

// Command is a one-shot host command: spawn or reset.
type Command struct {
	Op   string  `json:"op"` // "spawn" | "reset"
	Kind string  `json:"kind,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Z    float64 `json:"z,omitempty"`
}

// Snapshot payloads mirror what a renderer needs each tick.

type PointSnap struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type StickSnap struct {
	A int `json:"a"`
	B int `json:"b"`
}

type SoftSnap struct {
	Kind   string      `json:"kind"`
	Points []PointSnap `json:"points"`
	Sticks []StickSnap `json:"sticks"`
}

type BodySnap struct {
	ID     string     `json:"id"`
	Kind   string     `json:"kind"`
	Pos    [3]float64 `json:"pos"`
	Orient [4]float64 `json:"orient"`
	Scale  float64    `json:"scale"`
	Glow   float64    `json:"glow"`
	Held   bool       `json:"held"`
}

type TetherSnap struct {
	Actor int     `json:"actor"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	AX    float64 `json:"ax"`
	AY    float64 `json:"ay"`
}

type StateMsg struct {
	Tick    int          `json:"tick"`
	Soft    []SoftSnap   `json:"soft"`
	Bodies  []BodySnap   `json:"bodies"`
	Tethers []TetherSnap `json:"tethers,omitempty"`
}

// SnapshotWorld flattens the live world into a wire snapshot.
func SnapshotWorld(w *world.World) StateMsg {
	msg := StateMsg{Tick: w.Tick}

	for _, o := range w.Soft {
		snap := SoftSnap{Kind: o.Kind.String()}
		for _, p := range o.Points {
			snap.Points = append(snap.Points, PointSnap{X: p.Pos.X, Y: p.Pos.Y})
		}
		for _, st := range o.Sticks {
			if st.Visible {
				snap.Sticks = append(snap.Sticks, StickSnap{A: st.A, B: st.B})
			}
		}
		msg.Soft = append(msg.Soft, snap)
	}

	for _, b := range w.Bodies {
		msg.Bodies = append(msg.Bodies, BodySnap{
			ID:     b.ID.String(),
			Kind:   b.Kind,
			Pos:    [3]float64{b.Pos.X, b.Pos.Y, b.Pos.Z},
			Orient: [4]float64{b.Orient.W, b.Orient.X, b.Orient.Y, b.Orient.Z},
			Scale:  b.Scale.X,
			Glow:   b.Glow,
			Held:   b.Held,
		})
	}

	for actor, s := range w.Attachments() {
		if s.Object >= len(w.Soft) || s.Point >= len(w.Soft[s.Object].Points) {
			continue
		}
		p := w.Soft[s.Object].Points[s.Point].Pos
		msg.Tethers = append(msg.Tethers, TetherSnap{
			Actor: actor, X: p.X, Y: p.Y, AX: s.Anchor.X, AY: s.Anchor.Y,
		})
	}
	return msg
}

func toInputs(frame InputFrame) []interact.Input {
	inputs := make([]interact.Input, 0, len(frame.Hands))
	for _, h := range frame.Hands {
		inputs = append(inputs, interact.Input{
			Actor: h.Actor,
			Pos:   vecmath.Vec3{X: h.X, Y: h.Y, Z: h.Z},
			Grab:  h.Grab,
			Pinch: h.Pinch,
			Twist: h.Twist,
		})
	}
	return inputs
}
