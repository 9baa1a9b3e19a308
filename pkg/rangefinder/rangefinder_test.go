package rangefinder

import (
	"math"
	"testing"
)

func TestPulseToInches(t *testing.T) {
	// 1160µs is 20cm each way on the HC-SR04 datasheet scale.
	got := PulseToInches(1160)
	want := 20.0 * 0.3937
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("PulseToInches(1160) = %v, expected %v", got, want)
	}
}

func TestInvalidPulseReadsAsFar(t *testing.T) {
	// No echo is indistinguishable from "nothing there"; it must never
	// read as an obstacle.
	for _, us := range []float64{0, -10} {
		if got := PulseToInches(us); got != RangeTooFarIn {
			t.Errorf("PulseToInches(%v) = %v, expected RangeTooFarIn", us, got)
		}
	}
	if RangeTooFarIn < 100 {
		t.Errorf("RangeTooFarIn (%v) too close to plausible obstacle thresholds", RangeTooFarIn)
	}
}

func TestObstacleThresholdPulseWidth(t *testing.T) {
	// The 12in stop threshold corresponds to ~1768µs; widths either
	// side of it must land either side of 12in.
	below := PulseToInches(1700)
	above := PulseToInches(1800)
	if below >= 12.0 {
		t.Errorf("1700µs = %vin, expected < 12", below)
	}
	if above <= 12.0 {
		t.Errorf("1800µs = %vin, expected > 12", above)
	}
}
