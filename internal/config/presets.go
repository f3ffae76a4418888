package config

// Spawn describes one object placed by a scene preset.
type Spawn struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Z    float64 `yaml:"z"`
}

// Scene is a named initial layout plus optional tuning overrides.
type Scene struct {
	Tuning *Tuning `yaml:"tuning"`
	Spawns []Spawn `yaml:"spawns"`
}

var Presets = map[string]*Scene{
	"curtain": {
		Spawns: []Spawn{
			{Kind: "cloth", X: 300, Y: 40},
			{Kind: "cloth", X: 560, Y: 40},
		},
	},
	"playroom": {
		Spawns: []Spawn{
			{Kind: "cloth", X: 120, Y: 40},
			{Kind: "rope", X: 700, Y: 30},
			{Kind: "cube", X: 420, Y: 200, Z: 40},
			{Kind: "cube", X: 540, Y: 120, Z: 40},
		},
	},
	"stacking": {
		Spawns: []Spawn{
			{Kind: "cube", X: 380, Y: 100, Z: 30},
			{Kind: "cube", X: 480, Y: 160, Z: 30},
			{Kind: "cube", X: 580, Y: 220, Z: 30},
		},
	},
	"jelly": {
		Tuning: func() *Tuning {
			t := DefaultTuning()
			t.Stiffness = 0.6
			t.Iterations = 24
			return t
		}(),
		Spawns: []Spawn{
			{Kind: "blob", X: 320, Y: 260},
			{Kind: "blob", X: 620, Y: 260},
		},
	},
}

func GetPreset(name string) *Scene {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
