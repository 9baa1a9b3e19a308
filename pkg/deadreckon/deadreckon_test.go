package deadreckon

import (
	"math"
	"testing"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/encoder"
)

func TestDistancePerPulse(t *testing.T) {
	// Recomputed from first principles, not a truncated literal.
	want := math.Pi * 4.0 / (64.0 * 70.0) * 5.05
	got := DistancePerPulse(4.0, 64, 70, 5.05)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("DistancePerPulse = %v, expected %v", got, want)
	}
	// Without the correction factor the result must scale accordingly.
	if math.Abs(DistancePerPulse(4.0, 64, 70, 1)*5.05-want) > 1e-12 {
		t.Errorf("correction factor not a plain multiplier")
	}
}

func TestAverageDistance(t *testing.T) {
	e := NewEstimator(0.1, 0.02)
	got := e.AverageDistanceIn(encoder.Counts{10, 20, 30, 40})
	want := 25 * 0.02
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("average distance = %v, expected %v", got, want)
	}
}

func TestEncodersOwnForwardAxis(t *testing.T) {
	// Y must be a pure replacement from the counters, unaffected by
	// anything inertial.
	e := NewEstimator(0.1, 0.02)
	e.Update(3, -2, 0.5, -0.5, 0.01, encoder.Counts{100, 100, 100, 100})
	if _, y := e.Position(); math.Abs(y-2.0) > 1e-12 {
		t.Errorf("Y = %v, expected 2.0", y)
	}
	// A later snapshot with the same counts must give the same Y even
	// after more inertial noise.
	e.Update(-1, 4, -0.2, 0.3, 0.01, encoder.Counts{100, 100, 100, 100})
	if _, y := e.Position(); math.Abs(y-2.0) > 1e-12 {
		t.Errorf("Y moved without encoder pulses: %v", y)
	}
}

func TestLateralIntegration(t *testing.T) {
	// One cycle of 0.1g lateral residual at dt=0.01 with damping 0.1.
	e := NewEstimator(0.1, 0.02)
	e.Update(0, 0, 0.1, 0, 0.01, encoder.Counts{})

	wantVel := 0.1 * GravityInPerSec2 * 0.01 * 0.1
	if math.Abs(e.LateralVelocity()-wantVel) > 1e-12 {
		t.Fatalf("velocity = %v, expected %v", e.LateralVelocity(), wantVel)
	}
	x, _ := e.Position()
	if math.Abs(x-wantVel*0.01) > 1e-12 {
		t.Errorf("X = %v, expected %v", x, wantVel*0.01)
	}
}

func TestGravityCompensation(t *testing.T) {
	// A stationary platform pitched at 10° reads ax = -sin(10°); the
	// gravity removal must cancel it exactly, leaving X untouched.
	e := NewEstimator(0.1, 0.02)
	ax := -math.Sin(10 * degToRad)
	for i := 0; i < 100; i++ {
		e.Update(10, 0, ax, 0, 0.01, encoder.Counts{})
	}
	if x, _ := e.Position(); math.Abs(x) > 1e-9 {
		t.Errorf("X drifted under pure gravity tilt: %v", x)
	}
}

func TestResetLateral(t *testing.T) {
	e := NewEstimator(0.1, 0.02)
	e.Update(0, 0, 0.5, 0, 0.01, encoder.Counts{10, 10, 10, 10})
	e.ResetLateral()
	x, y := e.Position()
	if x != 0 || e.LateralVelocity() != 0 {
		t.Errorf("lateral state not reset: x=%v vel=%v", x, e.LateralVelocity())
	}
	if y == 0 {
		t.Errorf("reset must not touch the odometry axis")
	}
}
