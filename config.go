package rowan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML scene-settings file the demo variants load. Every
// field is optional: zero values fall back to the library defaults, so a
// scene file only states what it changes.
type Config struct {
	Window  WindowSettings `yaml:"window"`
	Motion  MotionSettings `yaml:"motion"`
	Camera  CameraSettings `yaml:"camera"`
	Effects EffectSettings `yaml:"effects"`
}

// WindowSettings configures the demo window.
type WindowSettings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// MotionSettings overrides motion controller constants.
type MotionSettings struct {
	Speed         float64 `yaml:"speed"`
	Gravity       float64 `yaml:"gravity"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	PositionBlend float64 `yaml:"position_blend"`
	AngleBlend    float64 `yaml:"angle_blend"`
}

// CameraSettings overrides the follow camera offset.
type CameraSettings struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	OffsetZ float64 `yaml:"offset_z"`
}

// EffectSettings selects post-process parameters.
type EffectSettings struct {
	// Intensity is the fixed effect strength used when no sweep is set.
	Intensity float64 `yaml:"intensity"`
	// GlowRadius is the IntensityStage blur radius in pixels.
	GlowRadius int `yaml:"glow_radius"`
	// Sweep animates intensity between min and max over duration seconds,
	// ping-pong, when duration is positive.
	Sweep SweepSettings `yaml:"sweep"`
}

// SweepSettings describes a ping-pong intensity animation.
type SweepSettings struct {
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Duration float64 `yaml:"duration"`
}

// DefaultConfig returns the settings the demos start from.
func DefaultConfig() Config {
	return Config{
		Window: WindowSettings{Title: "rowan demo", Width: 1280, Height: 720},
		Motion: MotionSettings{
			Speed:         3.0,
			Gravity:       -12.0,
			JumpImpulse:   3.0,
			PositionBlend: 0.1,
			AngleBlend:    0.2,
		},
		Camera: CameraSettings{
			OffsetX: DefaultCameraOffset.X,
			OffsetY: DefaultCameraOffset.Y,
			OffsetZ: DefaultCameraOffset.Z,
		},
		Effects: EffectSettings{
			Intensity:  0.5,
			GlowRadius: 8,
		},
	}
}

// LoadConfig reads a YAML scene file and merges it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.merge(file)
	return cfg, nil
}

// merge copies every non-zero field of other over cfg. Gravity is the one
// field where zero is meaningful-looking but still treated as unset: a
// scene with no gravity should say so via jump_impulse 0 instead.
func (cfg *Config) merge(other Config) {
	if other.Window.Title != "" {
		cfg.Window.Title = other.Window.Title
	}
	if other.Window.Width > 0 {
		cfg.Window.Width = other.Window.Width
	}
	if other.Window.Height > 0 {
		cfg.Window.Height = other.Window.Height
	}
	if other.Motion.Speed != 0 {
		cfg.Motion.Speed = other.Motion.Speed
	}
	if other.Motion.Gravity != 0 {
		cfg.Motion.Gravity = other.Motion.Gravity
	}
	if other.Motion.JumpImpulse != 0 {
		cfg.Motion.JumpImpulse = other.Motion.JumpImpulse
	}
	if other.Motion.PositionBlend != 0 {
		cfg.Motion.PositionBlend = other.Motion.PositionBlend
	}
	if other.Motion.AngleBlend != 0 {
		cfg.Motion.AngleBlend = other.Motion.AngleBlend
	}
	if other.Camera != (CameraSettings{}) {
		cfg.Camera = other.Camera
	}
	if other.Effects.Intensity != 0 {
		cfg.Effects.Intensity = other.Effects.Intensity
	}
	if other.Effects.GlowRadius != 0 {
		cfg.Effects.GlowRadius = other.Effects.GlowRadius
	}
	if other.Effects.Sweep.Duration > 0 {
		cfg.Effects.Sweep = other.Effects.Sweep
	}
}

// MotionConfig converts the settings into the controller's config struct.
func (cfg Config) MotionConfig() MotionConfig {
	mc := DefaultMotionConfig()
	mc.Speed = cfg.Motion.Speed
	mc.Gravity = cfg.Motion.Gravity
	mc.JumpImpulse = cfg.Motion.JumpImpulse
	mc.PositionBlend = cfg.Motion.PositionBlend
	mc.AngleBlend = cfg.Motion.AngleBlend
	return mc
}

// CameraOffset returns the configured follow offset as a vector.
func (cfg Config) CameraOffset() Vec3 {
	return Vec3{X: cfg.Camera.OffsetX, Y: cfg.Camera.OffsetY, Z: cfg.Camera.OffsetZ}
}
