package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"pinchlab/internal/config"
	"pinchlab/internal/interact"
	"pinchlab/internal/vecmath"
	"pinchlab/internal/world"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	frame := InputFrame{Hands: []HandFrame{
		{Actor: 0, X: 100, Y: 200, Z: 10, Grab: true, Twist: 0.5},
		{Actor: 1, X: 300, Y: 400, Pinch: true},
	}}

	data, err := Encode("input", frame)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	require.Equal(t, "input", env.T)

	decoded, err := DecodePayload[InputFrame](env)
	require.NoError(t, err)
	require.Len(t, decoded.Hands, 2)
	require.True(t, decoded.Hands[0].Grab)
	require.Equal(t, 0.5, decoded.Hands[0].Twist)
}

func TestEncode_EmptyType(t *testing.T) {
	_, err := Encode("", InputFrame{})
	require.Error(t, err)
}

func TestDecodePayload_Empty(t *testing.T) {
	_, err := DecodePayload[Command](Envelope{T: "command"})
	require.Error(t, err)
}

func TestSnapshotWorld(t *testing.T) {
	w := world.New(config.DefaultTuning(), 960, 600, 1)
	w.SpawnSoft("rope", 300, 50)
	w.SpawnBody("cube", vecmath.Vec3{X: 400, Y: 200})
	w.Update([]interact.Input{{Actor: 0, Pos: vecmath.Vec3{X: 300, Y: 60}, Pinch: true}})

	msg := SnapshotWorld(w)

	require.Equal(t, w.Tick, msg.Tick)
	require.Len(t, msg.Soft, 1)
	require.Equal(t, "rope", msg.Soft[0].Kind)
	require.Len(t, msg.Soft[0].Points, 14)
	require.Len(t, msg.Bodies, 1)
	require.Equal(t, "cube", msg.Bodies[0].Kind)
	require.Len(t, msg.Tethers, 1, "active attachment should appear as a tether")
}

func TestToInputs(t *testing.T) {
	inputs := toInputs(InputFrame{Hands: []HandFrame{{Actor: 3, X: 1, Y: 2, Z: 3, Grab: true}}})
	require.Len(t, inputs, 1)
	require.Equal(t, 3, inputs[0].Actor)
	require.Equal(t, vecmath.Vec3{X: 1, Y: 2, Z: 3}, inputs[0].Pos)
}
