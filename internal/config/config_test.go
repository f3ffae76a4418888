package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultTuning(t *testing.T) {
	c := DefaultTuning()

	if c.Gravity != DefaultGravity {
		t.Errorf("gravity = %f, want %f", c.Gravity, DefaultGravity)
	}
	if c.Iterations != DefaultIterations {
		t.Errorf("iterations = %d, want %d", c.Iterations, DefaultIterations)
	}
	if c.SoftDrag <= 0 || c.SoftDrag >= 1 {
		t.Errorf("soft drag %f outside (0,1)", c.SoftDrag)
	}
	if c.RigidDrag <= 0 || c.RigidDrag >= 1 {
		t.Errorf("rigid drag %f outside (0,1)", c.RigidDrag)
	}
	if c.Restitution <= 0 || c.Restitution >= 1 {
		t.Errorf("restitution %f outside (0,1)", c.Restitution)
	}
	if c.BreakThreshold <= 1 {
		t.Errorf("break threshold %f must exceed 1", c.BreakThreshold)
	}
	if c.SnapGapMin >= c.SnapGapMax {
		t.Errorf("snap gap range inverted: %f >= %f", c.SnapGapMin, c.SnapGapMax)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")

	c := DefaultTuning()
	c.Gravity = 0.25
	c.Iterations = 8
	c.SnapLockTicks = 45

	if err := Save(path, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Gravity != 0.25 {
		t.Errorf("gravity = %f, want 0.25", loaded.Gravity)
	}
	if loaded.Iterations != 8 {
		t.Errorf("iterations = %d, want 8", loaded.Iterations)
	}
	if loaded.SnapLockTicks != 45 {
		t.Errorf("snap lock = %d, want 45", loaded.SnapLockTicks)
	}
	// Fields absent from the file keep their defaults.
	if loaded.HoldLerp != c.HoldLerp {
		t.Errorf("hold lerp = %f, want %f", loaded.HoldLerp, c.HoldLerp)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	if s := GetPreset("stacking"); s == nil {
		t.Fatal("expected stacking preset")
	} else if len(s.Spawns) != 3 {
		t.Errorf("stacking spawns = %d, want 3", len(s.Spawns))
	}

	if s := GetPreset("nonexistent"); s != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected at least one preset")
	}
}
