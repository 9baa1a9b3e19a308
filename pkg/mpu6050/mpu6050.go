// Package mpu6050 drives the MPU-6050 inertial sensor over I2C.  The
// chip is configured for its default ±2g / ±250°/s ranges, giving the
// raw scale factors below.
package mpu6050

import (
	"fmt"
	"time"

	"golang.org/x/exp/io/i2c"
)

const (
	IMUAddr = 0x68

	RegSampleRateDiv = 25
	RegConfig        = 26
	RegGyroConf      = 27
	RegAccelConf     = 28
	RegAccelXOutH    = 59 // 14 bytes: accel XYZ, temp, gyro XYZ
	RegPwrMgmt1      = 107
	RegWhoAmI        = 117

	// WhoAmIValue is what RegWhoAmI reads back on a live sensor.
	WhoAmIValue = 0x68

	// AccelLSBPerG converts raw accelerometer counts to g (±2g range).
	AccelLSBPerG = 16384.0
	// GyroLSBPerDPS converts raw gyro counts to °/s (±250°/s range).
	GyroLSBPerDPS = 131.0
)

// Raw is one unscaled six-axis sample.
type Raw struct {
	AccelX, AccelY, AccelZ int16
	GyroX, GyroY, GyroZ    int16
}

type Interface interface {
	Configure() error
	ReadRaw() (Raw, error)
	Calibrate(samples int, sampleDelay time.Duration) (Offsets, error)
}

type port interface {
	// Read reads len(buf) bytes from the device.
	ReadReg(reg byte, buf []byte) error
	WriteReg(reg byte, buf []byte) (err error)
}

type MPU6050 struct {
	dev port
}

// NewI2C opens the sensor on the given I2C device file and verifies it
// responds.  An unreachable sensor is a fatal condition for the caller:
// no state estimation is possible without it.
func NewI2C(deviceFile string) (Interface, error) {
	dev, err := i2c.Open(&i2c.Devfs{Dev: deviceFile}, IMUAddr)
	if err != nil {
		return nil, fmt.Errorf("open IMU bus: %w", err)
	}
	m := &MPU6050{dev: dev}
	var buf [1]byte
	if err := m.dev.ReadReg(RegWhoAmI, buf[:]); err != nil {
		return nil, fmt.Errorf("IMU not responding: %w", err)
	}
	if buf[0] != WhoAmIValue {
		return nil, fmt.Errorf("unexpected WHO_AM_I response 0x%02x", buf[0])
	}
	return m, nil
}

func (m *MPU6050) Configure() error {
	// Wake from sleep, use the gyro X PLL clock.
	if err := m.dev.WriteReg(RegPwrMgmt1, []byte{1}); err != nil {
		return err
	}
	// ±250°/s gyro range.
	if err := m.dev.WriteReg(RegGyroConf, []byte{0}); err != nil {
		return err
	}
	// ±2g accel range.
	if err := m.dev.WriteReg(RegAccelConf, []byte{0}); err != nil {
		return err
	}
	// DLPF Fs=1kHz.
	if err := m.dev.WriteReg(RegConfig, []byte{1}); err != nil {
		return err
	}
	// Divide output rate.
	return m.dev.WriteReg(RegSampleRateDiv, []byte{9})
}

// ReadRaw reads all six axes in one burst.
func (m *MPU6050) ReadRaw() (Raw, error) {
	var buf [14]byte
	if err := m.dev.ReadReg(RegAccelXOutH, buf[:]); err != nil {
		return Raw{}, err
	}
	be16 := func(i int) int16 {
		return int16(buf[i])<<8 | int16(buf[i+1])
	}
	return Raw{
		AccelX: be16(0),
		AccelY: be16(2),
		AccelZ: be16(4),
		// buf[6:8] is the temperature, which we don't use.
		GyroX: be16(8),
		GyroY: be16(10),
		GyroZ: be16(12),
	}, nil
}

// Calibrate averages the given number of raw samples while the platform
// is stationary and returns the per-axis biases.  The nominal 1g is
// removed from the vertical accelerometer channel first, so the result
// is sensor bias only.  Run once, before any motion command.
func (m *MPU6050) Calibrate(samples int, sampleDelay time.Duration) (Offsets, error) {
	fmt.Println("IMU: calibrating, keep the robot still...")
	var o Offsets
	for i := 0; i < samples; i++ {
		r, err := m.ReadRaw()
		if err != nil {
			return Offsets{}, fmt.Errorf("calibration read %d: %w", i, err)
		}
		o.AccelX += float64(r.AccelX)
		o.AccelY += float64(r.AccelY)
		o.AccelZ += float64(r.AccelZ) - AccelLSBPerG
		o.GyroX += float64(r.GyroX)
		o.GyroY += float64(r.GyroY)
		o.GyroZ += float64(r.GyroZ)
		time.Sleep(sampleDelay)
	}
	n := float64(samples)
	o.AccelX /= n
	o.AccelY /= n
	o.AccelZ /= n
	o.GyroX /= n
	o.GyroY /= n
	o.GyroZ /= n
	fmt.Printf("IMU: calibration offsets %+v\n", o)
	return o, nil
}
