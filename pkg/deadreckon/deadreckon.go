// Package deadreckon fuses inertial sensing and wheel odometry into a
// 2-D position estimate.  Authority is split per axis: the forward (Y)
// position is overwritten every cycle from the averaged wheel encoder
// distance, while the lateral (X) drift is double-integrated from
// gravity-compensated acceleration.  An unconstrained accelerometer
// integration diverges quadratically, which is why the encoders own the
// forward axis; the lateral axis gets no correction and accumulates
// drift over long runs.
package deadreckon

import (
	"math"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/encoder"
)

const (
	// GravityInPerSec2 converts accelerations in g to inches/s².
	GravityInPerSec2 = 386.088

	degToRad = math.Pi / 180.0
)

// DistancePerPulse derives the distance travelled per encoder pulse
// from the wheel geometry.  The correction factor compensates for the
// measured discrepancy between nominal and actual counts per
// revolution; it is a calibratable constant, not physics.
func DistancePerPulse(wheelDiameterIn, countsPerRev, gearRatio, correction float64) float64 {
	return math.Pi * wheelDiameterIn / (countsPerRev * gearRatio) * correction
}

type Estimator struct {
	damping        float64
	distPerPulseIn float64

	velXIn float64
	xIn    float64
	yIn    float64
}

// NewEstimator returns an estimator at the origin.  lateralDamping is
// the empirical factor (default 0.1) applied to lateral acceleration
// before integration to suppress noise-driven drift.
func NewEstimator(lateralDamping, distPerPulseIn float64) *Estimator {
	return &Estimator{
		damping:        lateralDamping,
		distPerPulseIn: distPerPulseIn,
	}
}

// Update advances the estimate by one cycle.  pitchDeg/rollDeg are the
// current orientation estimates, axG/ayG the bias-corrected horizontal
// accelerations in g, dt the elapsed interval in seconds and counts the
// current wheel pulse counter snapshot.
func (e *Estimator) Update(pitchDeg, rollDeg, axG, ayG, dt float64, counts encoder.Counts) {
	// Remove gravity's projection onto the horizontal axes.  When the
	// platform pitches by θ the lateral channel reads an extra
	// -g·sin(θ), and the forward channel picks up g·sin(roll) likewise.
	// Only the lateral residual is integrated; odometry owns the
	// forward axis, so the forward residual is dropped.
	latG := axG + math.Sin(pitchDeg*degToRad)

	e.velXIn += latG * GravityInPerSec2 * dt * e.damping
	e.xIn += e.velXIn * dt

	// Encoders are ground truth for forward travel: replacement, not
	// blending.
	e.yIn = e.AverageDistanceIn(counts)
}

// AverageDistanceIn converts each wheel's pulse count to a distance and
// averages the four into one forward-travel estimate.
func (e *Estimator) AverageDistanceIn(counts encoder.Counts) float64 {
	var sum float64
	for _, c := range counts {
		sum += float64(c) * e.distPerPulseIn
	}
	return sum / float64(len(counts))
}

// Position returns the current estimate in inches: X is lateral drift,
// Y forward travel.
func (e *Estimator) Position() (xIn, yIn float64) {
	return e.xIn, e.yIn
}

// LateralVelocity returns the integrated lateral velocity in inches/s.
func (e *Estimator) LateralVelocity() float64 { return e.velXIn }

// ResetLateral zeroes the lateral velocity and position.  The control
// loop never calls this; it exists as a drift-reset hook for tests and
// bench bring-up.
func (e *Estimator) ResetLateral() {
	e.velXIn = 0
	e.xIn = 0
}
