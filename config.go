package play

import (
	"errors"
	"fmt"
	"os"

	"github.com/oliverbestmann/play/gm"
	"gopkg.in/yaml.v3"
)

// Config configures the world. All values have sensible defaults,
// see DefaultConfig.
type Config struct {
	// Size of the visible screen, the walls are placed at its edges.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Number of ticks per second.
	FrameRate int `yaml:"frame_rate"`

	Gravity GravityConfig `yaml:"gravity"`

	// Number of physics steps per tick.
	SimulationSteps int `yaml:"simulation_steps"`

	// Radius of the wall segments.
	WallThickness float64 `yaml:"wall_thickness"`
}

type GravityConfig struct {
	Vertical   float64 `yaml:"vertical"`
	Horizontal float64 `yaml:"horizontal"`
}

func (g GravityConfig) Vec() gm.Vec {
	return gm.Vec{X: g.Horizontal, Y: g.Vertical}
}

func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		FrameRate:       60,
		Gravity:         GravityConfig{Vertical: -100},
		SimulationSteps: 10,
		WallThickness:   1,
	}
}

// ParseConfig parses a yaml document on top of the default configuration.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// LoadConfig reads and parses the yaml config file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Width, c.Height))
	}

	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame rate must be positive, got %d", c.FrameRate))
	}

	if c.SimulationSteps <= 0 {
		errs = append(errs, fmt.Errorf("simulation steps must be positive, got %d", c.SimulationSteps))
	}

	if c.WallThickness < 0 {
		errs = append(errs, fmt.Errorf("wall thickness must not be negative, got %v", c.WallThickness))
	}

	return errors.Join(errs...)
}

func (c Config) ScreenSize() gm.Vec {
	return gm.Vec{X: float64(c.Width), Y: float64(c.Height)}
}

// FrameTime is the duration of one tick in seconds.
func (c Config) FrameTime() float64 {
	return 1 / float64(c.FrameRate)
}
