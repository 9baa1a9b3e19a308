// Package orientation estimates the robot's pitch and roll with a
// complementary filter: the gyro is trusted for short-term continuity,
// the accelerometer-derived tilt pulls the estimate back over the long
// term so gyro drift can't accumulate.
package orientation

import "math"

// DefaultAlpha weights gyro continuity at 98% against 2% accelerometer
// tilt per cycle.  More gyro trust means less noise but more drift.
const DefaultAlpha = 0.98

const radToDeg = 180.0 / math.Pi

type Filter struct {
	alpha float64

	// Angles in degrees.  Zero until the first Update.
	pitch, roll float64
}

func NewFilter(alpha float64) *Filter {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}
	return &Filter{alpha: alpha}
}

// Update advances the estimate by one cycle.  Rates are bias-corrected
// angular rates in °/s (pitchRate about the lateral axis, rollRate
// about the forward axis); ax/ay/az are bias-corrected accelerations in
// g; dt is the elapsed interval in seconds.
func (f *Filter) Update(pitchRate, rollRate, ax, ay, az, dt float64) {
	accelPitch, accelRoll := AnglesFromAccel(ax, ay, az)
	f.pitch = f.alpha*(f.pitch+pitchRate*dt) + (1-f.alpha)*accelPitch
	f.roll = f.alpha*(f.roll+rollRate*dt) + (1-f.alpha)*accelRoll
}

// Pitch returns the pitch estimate in degrees.
func (f *Filter) Pitch() float64 { return f.pitch }

// Roll returns the roll estimate in degrees.
func (f *Filter) Roll() float64 { return f.roll }

// AnglesFromAccel derives tilt angles in degrees from the gravity
// vector alone:
//
//	pitch = atan2(-ax, sqrt(ay² + az²))
//	roll  = atan2(ay, az)
//
// Only valid when the platform is not accelerating, which is why the
// filter gives it so little weight per cycle.
func AnglesFromAccel(ax, ay, az float64) (pitchDeg, rollDeg float64) {
	pitchDeg = math.Atan2(-ax, math.Sqrt(ay*ay+az*az)) * radToDeg
	rollDeg = math.Atan2(ay, az) * radToDeg
	return
}
