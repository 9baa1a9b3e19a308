package hardware

import (
	"context"
	"fmt"
	"time"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/encoder"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/mpu6050"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/rangefinder"
)

// Dummy lets the controller run on a bench with no peripherals
// attached.  It reports a level, stationary robot with clear ranges.
type Dummy struct{}

func NewDummy() *Dummy {
	return &Dummy{}
}

var _ Interface = (*Dummy)(nil)

func (d *Dummy) Start(ctx context.Context) error {
	fmt.Println("DHW: Start")
	return nil
}

func (d *Dummy) CalibrateIMU() (mpu6050.Offsets, error) {
	fmt.Println("DHW: CalibrateIMU")
	return mpu6050.Offsets{}, nil
}

func (d *Dummy) ReadInertial() (mpu6050.Raw, error) {
	// Level and stationary: 1g straight down.
	return mpu6050.Raw{AccelZ: int16(mpu6050.AccelLSBPerG)}, nil
}

func (d *Dummy) CurrentRangeReadings() RangeReadings {
	return RangeReadings{
		CaptureTime: time.Now(),
		Left:        rangefinder.RangeTooFarIn,
		Right:       rangefinder.RangeTooFarIn,
	}
}

func (d *Dummy) EncoderCounts() encoder.Counts {
	return encoder.Counts{}
}

func (d *Dummy) DriveForward(leftPWM, rightPWM uint8) {
	fmt.Printf("DHW: DriveForward left=%d right=%d\n", leftPWM, rightPWM)
}

func (d *Dummy) StopMotors() {
	fmt.Println("DHW: StopMotors")
}

func (d *Dummy) Shutdown() {
	fmt.Println("DHW: Shutdown")
}
