package hardware

import (
	"context"
	"time"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/encoder"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/mpu6050"
)

type Interface interface {
	// Start brings up the asynchronous parts of the hardware (encoder
	// edge watchers).  The inertial sensor must already have been
	// reached at construction time.
	Start(ctx context.Context) error

	// CalibrateIMU samples the stationary sensor and returns its
	// biases.  Run once, before the first motion command.
	CalibrateIMU() (mpu6050.Offsets, error)

	// ReadInertial reads one raw six-axis sample.
	ReadInertial() (mpu6050.Raw, error)

	// CurrentRangeReadings takes one blocking measurement per forward
	// rangefinder.
	CurrentRangeReadings() RangeReadings

	// EncoderCounts snapshots the four wheel pulse counters.
	EncoderCounts() encoder.Counts

	// DriveForward commands both sides forward at the given PWM duty
	// cycles.
	DriveForward(leftPWM, rightPWM uint8)

	// StopMotors zeroes both sides and drops their enable lines.
	StopMotors()

	Shutdown()
}

// RangeReadings is one pair of forward distance samples in inches.
type RangeReadings struct {
	CaptureTime time.Time
	Left        float64
	Right       float64
}
