// Package config holds the simulation tuning constants and scene presets.
//
// All motion constants are per-tick deltas and assume one World.Update per
// display frame; hosts running at a different rate get a proportionally
// faster or slower simulation.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 960.0
	DefaultHeight = 600.0

	DefaultGravity    = 0.5
	DefaultIterations = 16
)

// Tuning is the full set of per-tick simulation constants.
type Tuning struct {
	// Soft-body solver.
	Gravity        float64 `yaml:"gravity"`
	SoftDrag       float64 `yaml:"soft_drag"`
	GroundFriction float64 `yaml:"ground_friction"`
	Stiffness      float64 `yaml:"stiffness"`
	Iterations     int     `yaml:"iterations"`
	BreakThreshold float64 `yaml:"break_threshold"`
	Margin         float64 `yaml:"margin"`
	SpringPull     float64 `yaml:"spring_pull"`

	// Rigid-body kinematics.
	RigidDrag     float64 `yaml:"rigid_drag"`
	Restitution   float64 `yaml:"restitution"`
	BaseSize      float64 `yaml:"base_size"`
	StackHeight   float64 `yaml:"stack_height"`
	SnapRadius    float64 `yaml:"snap_radius"`
	SnapGapMin    float64 `yaml:"snap_gap_min"`
	SnapGapMax    float64 `yaml:"snap_gap_max"`
	SnapLockTicks int     `yaml:"snap_lock_ticks"`
	GlowDecay     float64 `yaml:"glow_decay"`

	// Interaction.
	HoldLerp      float64 `yaml:"hold_lerp"`
	SpinGain      float64 `yaml:"spin_gain"`
	RadiusFactor  float64 `yaml:"radius_factor"`
	ColliderSlack float64 `yaml:"collider_slack"`
	CaptureRadius float64 `yaml:"capture_radius"`
	CrumpleRadius float64 `yaml:"crumple_radius"`
	FoldRadius    float64 `yaml:"fold_radius"`
	HoverGlow     float64 `yaml:"hover_glow"`

	// Projection.
	FocalLength float64 `yaml:"focal_length"`
}

func DefaultTuning() *Tuning {
	return &Tuning{
		Gravity:        DefaultGravity,
		SoftDrag:       0.99,
		GroundFriction: 0.8,
		Stiffness:      1.0,
		Iterations:     DefaultIterations,
		BreakThreshold: 4.0,
		Margin:         5,
		SpringPull:     0.2,

		RigidDrag:     0.98,
		Restitution:   0.5,
		BaseSize:      50,
		StackHeight:   60,
		SnapRadius:    40,
		SnapGapMin:    0.5,
		SnapGapMax:    1.6,
		SnapLockTicks: 30,
		GlowDecay:     0.02,

		HoldLerp:      0.4,
		SpinGain:      2.0,
		RadiusFactor:  0.5,
		ColliderSlack: 1.4,
		CaptureRadius: 60,
		CrumpleRadius: 140,
		FoldRadius:    160,
		HoverGlow:     0.35,

		FocalLength: 600,
	}
}

func Load(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}

func Save(path string, t *Tuning) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
