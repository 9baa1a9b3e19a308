package hardware

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/periph/host"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/config"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/encoder"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/motor"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/mpu6050"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/rangefinder"
)

// Hardware wires the real peripherals together behind Interface.
type Hardware struct {
	cfg config.RoverConfig

	imu      mpu6050.Interface
	counters encoder.Counters

	leftRange  rangefinder.Interface
	rightRange rangefinder.Interface

	leftMotor  motor.Interface
	rightMotor motor.Interface
}

var _ Interface = (*Hardware)(nil)

// New initialises the GPIO host and opens every peripheral.  Failure to
// reach the inertial sensor is fatal for the caller: without it no
// state estimation is possible, so there is no degraded mode.
func New(cfg config.RoverConfig) (*Hardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("GPIO host init: %w", err)
	}

	h := &Hardware{cfg: cfg}

	var err error
	if h.imu, err = mpu6050.NewI2C(cfg.I2CDevice); err != nil {
		return nil, err
	}
	if err = h.imu.Configure(); err != nil {
		return nil, fmt.Errorf("IMU configure: %w", err)
	}

	if h.leftRange, err = rangefinder.New(cfg.LeftRangeTrigger, cfg.LeftRangeEcho); err != nil {
		return nil, fmt.Errorf("left rangefinder: %w", err)
	}
	if h.rightRange, err = rangefinder.New(cfg.RightRangeTrigger, cfg.RightRangeEcho); err != nil {
		return nil, fmt.Errorf("right rangefinder: %w", err)
	}

	if h.leftMotor, err = motor.New(cfg.LeftMotorEnable, cfg.LeftMotorDirection, cfg.LeftMotorSpeed); err != nil {
		return nil, fmt.Errorf("left motor: %w", err)
	}
	if h.rightMotor, err = motor.New(cfg.RightMotorEnable, cfg.RightMotorDirection, cfg.RightMotorSpeed); err != nil {
		return nil, fmt.Errorf("right motor: %w", err)
	}

	return h, nil
}

func (h *Hardware) Start(ctx context.Context) error {
	var pins encoder.PerWheelVal[string]
	copy(pins[:], h.cfg.EncoderPins[:])
	return h.counters.WatchPins(ctx, pins)
}

func (h *Hardware) CalibrateIMU() (mpu6050.Offsets, error) {
	delay := time.Duration(h.cfg.CalibrationDelayMs) * time.Millisecond
	return h.imu.Calibrate(h.cfg.CalibrationSamples, delay)
}

func (h *Hardware) ReadInertial() (mpu6050.Raw, error) {
	return h.imu.ReadRaw()
}

func (h *Hardware) CurrentRangeReadings() RangeReadings {
	rr := RangeReadings{CaptureTime: time.Now()}
	var err error
	if rr.Left, err = h.leftRange.MeasureDistanceIn(); err != nil {
		fmt.Println("HW: left rangefinder:", err)
		rr.Left = rangefinder.RangeTooFarIn
	}
	if rr.Right, err = h.rightRange.MeasureDistanceIn(); err != nil {
		fmt.Println("HW: right rangefinder:", err)
		rr.Right = rangefinder.RangeTooFarIn
	}
	return rr
}

func (h *Hardware) EncoderCounts() encoder.Counts {
	return h.counters.Snapshot()
}

func (h *Hardware) DriveForward(leftPWM, rightPWM uint8) {
	if err := h.leftMotor.SetDirection(motor.Forward); err != nil {
		fmt.Println("HW: left motor direction:", err)
	}
	if err := h.rightMotor.SetDirection(motor.Forward); err != nil {
		fmt.Println("HW: right motor direction:", err)
	}
	if err := h.leftMotor.SetSpeed(leftPWM); err != nil {
		fmt.Println("HW: left motor speed:", err)
	}
	if err := h.rightMotor.SetSpeed(rightPWM); err != nil {
		fmt.Println("HW: right motor speed:", err)
	}
	if err := h.leftMotor.SetEnabled(true); err != nil {
		fmt.Println("HW: left motor enable:", err)
	}
	if err := h.rightMotor.SetEnabled(true); err != nil {
		fmt.Println("HW: right motor enable:", err)
	}
}

func (h *Hardware) StopMotors() {
	for _, m := range []motor.Interface{h.leftMotor, h.rightMotor} {
		if err := m.SetSpeed(0); err != nil {
			fmt.Println("HW: motor speed:", err)
		}
		if err := m.SetEnabled(false); err != nil {
			fmt.Println("HW: motor enable:", err)
		}
	}
}

func (h *Hardware) Shutdown() {
	fmt.Println("HW: shutting down, zeroing motors")
	h.StopMotors()
}
