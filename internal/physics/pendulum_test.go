package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendsweep/internal/dynamo"
)

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()

	dx := p.Derive(dynamo.State{0, 0}, 0)

	if math.Abs(dx[0]) > 1e-10 {
		t.Errorf("expected zero velocity at equilibrium, got %f", dx[0])
	}

	if math.Abs(dx[1]) > 1e-10 {
		t.Errorf("expected zero acceleration at equilibrium, got %f", dx[1])
	}
}

func TestPendulumGravity(t *testing.T) {
	p := NewPendulum()

	dx := p.Derive(dynamo.State{math.Pi / 2, 0}, 0)

	expectedAccel := -p.Gravity / p.Length

	if math.Abs(dx[1]-expectedAccel) > 1e-12 {
		t.Errorf("expected acceleration %f, got %f", expectedAccel, dx[1])
	}
}

func TestPendulumDamping(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0.5

	dx := p.Derive(dynamo.State{0, 2}, 0)

	if dx[0] != 2 {
		t.Errorf("expected dθ = ω = 2, got %f", dx[0])
	}
	if math.Abs(dx[1]-(-1.0)) > 1e-12 {
		t.Errorf("expected damping term -b·ω = -1, got %f", dx[1])
	}
}

func TestPendulumOmega0(t *testing.T) {
	p := &Pendulum{Gravity: 9.81, Length: 4.0}
	want := math.Sqrt(9.81 / 4.0)
	if got := p.Omega0(); got != want {
		t.Errorf("Omega0() = %v, want %v", got, want)
	}
}

func TestPendulumValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Pendulum
		wantErr bool
	}{
		{"default", *NewPendulum(), false},
		{"zero length", Pendulum{Mass: 1, Gravity: 9.81, Length: 0}, true},
		{"negative length", Pendulum{Mass: 1, Gravity: 9.81, Length: -1}, true},
		{"zero gravity", Pendulum{Mass: 1, Gravity: 0, Length: 1}, true},
		{"NaN gravity", Pendulum{Mass: 1, Gravity: math.NaN(), Length: 1}, true},
		{"negative damping", Pendulum{Mass: 1, Gravity: 9.81, Length: 1, Damping: -0.1}, true},
		{"zero mass", Pendulum{Gravity: 9.81, Length: 1}, true},
		{"negative mass", Pendulum{Mass: -2, Gravity: 9.81, Length: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestPendulumEnergy(t *testing.T) {
	p := &Pendulum{Mass: 2, Length: 1, Gravity: 10}

	if e := p.Energy(dynamo.State{0, 0}); e != 0 {
		t.Errorf("expected zero energy at rest, got %f", e)
	}

	// released from horizontal: PE = m g L
	if e := p.Energy(dynamo.State{math.Pi / 2, 0}); math.Abs(e-20) > 1e-9 {
		t.Errorf("expected energy 20, got %f", e)
	}
}

func TestPendulumParams(t *testing.T) {
	p := NewPendulum()

	if err := p.SetParam("length", 2.5); err != nil {
		t.Fatalf("SetParam failed: %v", err)
	}
	if p.GetParams()["length"] != 2.5 {
		t.Errorf("length not updated: %v", p.GetParams())
	}

	if err := p.SetParam("spring", 1); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
