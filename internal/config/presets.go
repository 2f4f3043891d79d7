package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Gravity: 9.81, Length: 4.0, Damping: 0, FPS: 60, Duration: 15,
		Amplitudes: []float64{30, 60, 90}, Integrator: "rk4", PeakDistance: 5,
	},
	"damped": {
		Gravity: 9.81, Length: 4.0, Damping: 0.05, FPS: 60, Duration: 30,
		Amplitudes: []float64{30, 60, 90}, Integrator: "rk4", PeakDistance: 5,
	},
	"overdamped": {
		Gravity: 9.81, Length: 4.0, Damping: 5.0, FPS: 60, Duration: 15,
		Amplitudes: []float64{30, 60, 90}, Integrator: "rk4", PeakDistance: 5,
	},
	"fine": {
		Gravity: 9.81, Length: 4.0, Damping: 0, FPS: 240, Duration: 30,
		Amplitudes: []float64{30, 60, 90}, Integrator: "rk4", PeakDistance: 20,
	},
	"wide": {
		Gravity: 9.81, Length: 4.0, Damping: 0, FPS: 60, Duration: 30,
		Amplitudes: []float64{10, 30, 50, 70, 90, 110, 130, 150, 170}, Integrator: "rk4", PeakDistance: 5,
	},
	"moon": {
		Gravity: 1.62, Length: 1.0, Damping: 0, FPS: 60, Duration: 30,
		Amplitudes: []float64{30, 60, 90}, Integrator: "rk4", PeakDistance: 5,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Amplitudes = append([]float64(nil), p.Amplitudes...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
