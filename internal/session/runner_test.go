package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pinchlab/internal/config"
	"pinchlab/internal/metrics"
	"pinchlab/internal/world"
)

func TestRunner_CollectsSeries(t *testing.T) {
	w := world.New(config.DefaultTuning(), 960, 600, 1)
	w.SpawnSoft("rope", 300, 50)

	r := NewRunner(w, &Script{Ticks: 10})
	r.AddObserver(metrics.NewConstraintError())
	r.AddObserver(metrics.NewKineticEnergy())

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, result.Ticks)
	require.Len(t, result.Series["constraint_error"], 10)
	require.Len(t, result.Series["kinetic_energy"], 10)
	require.Contains(t, result.Metrics, "constraint_error")
}

func TestRunner_ContextCancel(t *testing.T) {
	w := world.New(config.DefaultTuning(), 960, 600, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(w, &Script{Ticks: 1000})
	_, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_NoScript(t *testing.T) {
	w := world.New(config.DefaultTuning(), 960, 600, 1)
	r := NewRunner(w, nil)
	_, err := r.Run(context.Background())
	require.Error(t, err)
}

func TestScript_InputsAt(t *testing.T) {
	s := &Script{
		Ticks: 100,
		Keys: []Keyframe{
			{Tick: 10, Hands: []Hand{{Actor: 0, X: 100, Y: 200, Grab: true}}},
			{Tick: 50, Hands: []Hand{}},
		},
	}

	require.Empty(t, s.InputsAt(0), "no inputs before the first keyframe")

	in := s.InputsAt(10)
	require.Len(t, in, 1)
	require.True(t, in[0].Grab)
	require.Equal(t, 100.0, in[0].Pos.X)

	require.Len(t, s.InputsAt(49), 1, "keyframe holds until the next one")
	require.Empty(t, s.InputsAt(50), "empty keyframe clears all actors")
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	data := []byte(`
preset: stacking
ticks: 120
keys:
  - tick: 0
    hands:
      - actor: 0
        x: 380
        y: 100
        grab: true
  - tick: 60
    hands: []
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	require.Equal(t, "stacking", s.Preset)
	require.Equal(t, 120, s.Ticks)
	require.Len(t, s.Keys, 2)
}

func TestLoadScript_RejectsZeroTicks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: jelly\n"), 0644))

	_, err := LoadScript(path)
	require.Error(t, err)
}
