// Package config holds the run-time options that select and tune a demo variant.
package config

import (
	"errors"
	"fmt"
	"sort"
)

// Variant names a preset.
type Variant string

const (
	// Viewer loads a single model and flies around it.
	Viewer Variant = "viewer"
	// Physics drops randomized bodies into a walled box.
	Physics Variant = "physics"
	// Benchmark is Physics plus statistics and a timed exit.
	Benchmark Variant = "benchmark"
)

// Config is resolved once at startup and read-only afterwards.
type Config struct {
	Variant Variant

	// Window
	Title           string
	Width           int
	Height          int
	VSync           bool
	StartFullscreen bool
	IconPath        string

	// Assets are read from AssetDir/shaders, AssetDir/models and
	// AssetDir/textures. ModelName without an extension loads
	// ModelName.mdl and ModelName.mat; a .gltf or .glb name loads glTF.
	AssetDir  string
	ModelName string
	// TextureName, when set, is bound to every material of the model.
	TextureName string

	// Benchmark
	BenchmarkEnabled     bool
	BenchDurationSeconds float64

	DebugDrawEnabled bool
	// FrustumCulling skips instances outside the camera view.
	FrustumCulling bool

	// Population
	ObjectCount   int
	SpawnBounds   float32
	VelocityLimit float32
	Seed          uint64

	// Camera
	CameraSpeed         float32
	CameraRotationSpeed float32
	FieldOfView         float32
	NearPlane           float32
	FarPlane            float32
	PlayerControl       bool

	// Physics
	Gravity    float32
	Drag       float32
	Elasticity float32

	// SpinSpeed is the cosmetic yaw rate of spawned objects in degrees/second.
	SpinSpeed float32
}

var presets = map[Variant]func() Config{
	Viewer: func() Config {
		c := base()
		c.Variant = Viewer
		c.ObjectCount = 1
		c.TextureName = "Checker.png"
		return c
	},
	Physics: func() Config {
		c := base()
		c.Variant = Physics
		c.ObjectCount = 256
		c.SpawnBounds = 20
		c.VelocityLimit = 5
		c.DebugDrawEnabled = true
		return c
	},
	Benchmark: func() Config {
		c := base()
		c.Variant = Benchmark
		c.ObjectCount = 1024
		c.SpawnBounds = 20
		c.VelocityLimit = 5
		c.BenchmarkEnabled = true
		return c
	},
}

func base() Config {
	return Config{
		Title:                "Juliette",
		Width:                1080,
		Height:               720,
		IconPath:             "Icon.png",
		AssetDir:             "assets",
		ModelName:            "Cube",
		BenchDurationSeconds: 10,
		FrustumCulling:       true,
		Seed:                 1,
		CameraSpeed:          10,
		CameraRotationSpeed:  75,
		FieldOfView:          90,
		NearPlane:            0.1,
		FarPlane:             1000,
		Gravity:              9.81,
		Drag:                 0.1,
		Elasticity:           0.5,
		SpinSpeed:            45,
	}
}

// Default returns the preset for v.
func Default(v Variant) (Config, error) {
	preset, ok := presets[v]
	if !ok {
		return Config{}, fmt.Errorf("unknown variant %q (have %v)", v, Variants())
	}
	return preset(), nil
}

// Variants lists the preset names in sorted order.
func Variants() []Variant {
	out := make([]Variant, 0, len(presets))
	for v := range presets {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Describe returns a one-line description of a preset.
func Describe(v Variant) string {
	switch v {
	case Viewer:
		return "single model, free-look camera"
	case Physics:
		return "randomized bodies in a walled box"
	case Benchmark:
		return "physics population, timed run with statistics"
	}
	return ""
}

// Validate rejects option combinations the harness cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.AssetDir == "" {
		errs = append(errs, errors.New("asset dir must be set"))
	}
	if c.ModelName == "" {
		errs = append(errs, errors.New("model name must be set"))
	}
	if c.BenchmarkEnabled && c.BenchDurationSeconds <= 0 {
		errs = append(errs, fmt.Errorf("bench duration %v must be positive", c.BenchDurationSeconds))
	}
	if c.ObjectCount < 1 {
		errs = append(errs, fmt.Errorf("object count %d must be at least 1", c.ObjectCount))
	}
	if c.SpawnBounds < 0 || c.VelocityLimit < 0 {
		errs = append(errs, errors.New("spawn bounds and velocity limit must not be negative"))
	}
	if c.FieldOfView < 1 || c.FieldOfView > 179 {
		errs = append(errs, fmt.Errorf("field of view %v must be in [1, 179]", c.FieldOfView))
	}
	if c.NearPlane <= 0 || c.FarPlane <= c.NearPlane {
		errs = append(errs, fmt.Errorf("clip planes %v..%v are invalid", c.NearPlane, c.FarPlane))
	}
	if c.Drag < 0 || c.Elasticity < 0 || c.Elasticity > 1 {
		errs = append(errs, errors.New("drag must be >= 0 and elasticity in [0, 1]"))
	}
	return errors.Join(errs...)
}
