// Package session drives headless simulation runs: a keyframed input
// script stands in for the live gesture layer, and a runner advances the
// world while observers collect metric series.
package session

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"pinchlab/internal/interact"
	"pinchlab/internal/vecmath"
)

// Hand is one scripted actor state.
type Hand struct {
	Actor int     `yaml:"actor"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Grab  bool    `yaml:"grab"`
	Pinch bool    `yaml:"pinch"`
	Twist float64 `yaml:"twist"`
}

// Keyframe pins the full set of hand inputs from a tick onward. Inputs
// hold until the next keyframe; an empty hand list means no actors.
type Keyframe struct {
	Tick  int    `yaml:"tick"`
	Hands []Hand `yaml:"hands"`
}

// Script is a reproducible input sequence, loadable from yaml.
type Script struct {
	Preset string     `yaml:"preset"`
	Ticks  int        `yaml:"ticks"`
	Seed   int64      `yaml:"seed"`
	Keys   []Keyframe `yaml:"keys"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Ticks <= 0 {
		return nil, fmt.Errorf("script ticks must be positive, got %d", s.Ticks)
	}
	sort.SliceStable(s.Keys, func(i, j int) bool { return s.Keys[i].Tick < s.Keys[j].Tick })
	return &s, nil
}

// InputsAt returns the hand inputs in effect at the given tick: the
// latest keyframe at or before it, or none before the first keyframe.
func (s *Script) InputsAt(tick int) []interact.Input {
	var active *Keyframe
	for i := range s.Keys {
		if s.Keys[i].Tick > tick {
			break
		}
		active = &s.Keys[i]
	}
	if active == nil {
		return nil
	}

	inputs := make([]interact.Input, 0, len(active.Hands))
	for _, h := range active.Hands {
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
