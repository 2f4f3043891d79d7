package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendsweep/internal/analysis"
	"github.com/san-kum/pendsweep/internal/dynamo"
	"github.com/san-kum/pendsweep/internal/integrators"
	"github.com/san-kum/pendsweep/internal/sweep"
)

const (
	DefaultMass       = 1.0
	DefaultGravity    = 9.81
	DefaultLength     = 4.0
	DefaultDamping    = 0.0
	DefaultFPS        = 60
	DefaultDuration   = 15.0
	DefaultIntegrator = "rk4"
)

// DefaultAmplitudes are the release angles in degrees.
var DefaultAmplitudes = []float64{30, 60, 90}

// Config is the on-disk sweep description. Amplitudes are in degrees; Dt,
// when non-zero, overrides the step of one frame at FPS.
type Config struct {
	Mass         float64   `yaml:"mass,omitempty"`
	Gravity      float64   `yaml:"gravity"`
	Length       float64   `yaml:"length"`
	Damping      float64   `yaml:"damping"`
	FPS          float64   `yaml:"fps"`
	Dt           float64   `yaml:"dt,omitempty"`
	Duration     float64   `yaml:"duration"`
	Amplitudes   []float64 `yaml:"amplitudes"`
	Integrator   string    `yaml:"integrator"`
	PeakDistance int       `yaml:"peak_distance"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:         DefaultMass,
		Gravity:      DefaultGravity,
		Length:       DefaultLength,
		Damping:      DefaultDamping,
		FPS:          DefaultFPS,
		Duration:     DefaultDuration,
		Amplitudes:   append([]float64(nil), DefaultAmplitudes...),
		Integrator:   DefaultIntegrator,
		PeakDistance: analysis.DefaultPeakDistance,
	}
}

// LoadOver reads path on top of a copy of base; keys missing from the file
// keep base's values.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Amplitudes = append([]float64(nil), base.Amplitudes...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// TimeStep is Dt if set, otherwise one frame at FPS.
func (c *Config) TimeStep() float64 {
	if c.Dt != 0 {
		return c.Dt
	}
	if c.FPS > 0 {
		return 1.0 / c.FPS
	}
	return 0
}

func (c *Config) Params() sweep.Params {
	return sweep.Params{
		Mass:         c.Mass,
		Gravity:      c.Gravity,
		Length:       c.Length,
		Damping:      c.Damping,
		Dt:           c.TimeStep(),
		Duration:     c.Duration,
		PeakDistance: c.PeakDistance,
	}
}

// Set changes one pendulum parameter by the name the model exposes: mass,
// length, damping or gravity. The result is checked by Validate, not here.
func (c *Config) Set(name string, value float64) error {
	var model dynamo.Configurable = c.Params().Pendulum()
	if err := model.SetParam(name, value); err != nil {
		return err
	}
	p := model.GetParams()
	c.Mass = p["mass"]
	c.Length = p["length"]
	c.Damping = p["damping"]
	c.Gravity = p["gravity"]
	return nil
}

// AmplitudesRad converts the configured amplitudes to radians.
func (c *Config) AmplitudesRad() []float64 {
	out := make([]float64, len(c.Amplitudes))
	for i, a := range c.Amplitudes {
		out[i] = a * math.Pi / 180
	}
	return out
}

func (c *Config) Validate() error {
	if c.Dt == 0 && !(c.FPS > 0) {
		return fmt.Errorf("%w: fps must be positive when dt is unset, got %g", dynamo.ErrParameterBounds, c.FPS)
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if len(c.Amplitudes) == 0 {
		return fmt.Errorf("%w: at least one amplitude is required", dynamo.ErrParameterBounds)
	}
	for _, a := range c.Amplitudes {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return fmt.Errorf("%w: amplitude must be finite, got %g", dynamo.ErrParameterBounds, a)
		}
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return err
	}
	return nil
}
