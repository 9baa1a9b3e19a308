package mpu6050

import (
	"math"
	"testing"
	"time"
)

// fakePort replays canned register contents.
type fakePort struct {
	sample Raw
	writes map[byte][]byte
}

func (f *fakePort) ReadReg(reg byte, buf []byte) error {
	switch reg {
	case RegWhoAmI:
		buf[0] = WhoAmIValue
	case RegAccelXOutH:
		be16 := func(i int, v int16) {
			buf[i] = byte(uint16(v) >> 8)
			buf[i+1] = byte(uint16(v))
		}
		be16(0, f.sample.AccelX)
		be16(2, f.sample.AccelY)
		be16(4, f.sample.AccelZ)
		be16(6, 0) // temperature
		be16(8, f.sample.GyroX)
		be16(10, f.sample.GyroY)
		be16(12, f.sample.GyroZ)
	}
	return nil
}

func (f *fakePort) WriteReg(reg byte, buf []byte) error {
	if f.writes == nil {
		f.writes = map[byte][]byte{}
	}
	f.writes[reg] = append([]byte(nil), buf...)
	return nil
}

func TestReadRawDecodesBigEndian(t *testing.T) {
	fp := &fakePort{sample: Raw{
		AccelX: 1000, AccelY: -1000, AccelZ: 16384,
		GyroX: -131, GyroY: 262, GyroZ: 0,
	}}
	m := &MPU6050{dev: fp}

	got, err := m.ReadRaw()
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	if got != fp.sample {
		t.Fatalf("ReadRaw = %+v, expected %+v", got, fp.sample)
	}
}

func TestConfigureWakesChip(t *testing.T) {
	fp := &fakePort{}
	m := &MPU6050{dev: fp}
	if err := m.Configure(); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if w := fp.writes[RegPwrMgmt1]; len(w) != 1 || w[0] != 1 {
		t.Errorf("power management write = %v, expected [1]", w)
	}
}

func TestCalibrateRemovesGravity(t *testing.T) {
	// A perfectly level, stationary sensor with a small bias on each
	// axis.  Calibration must report the bias only: the nominal 1g on
	// Z must not leak into the offsets.
	fp := &fakePort{sample: Raw{
		AccelX: 120, AccelY: -40, AccelZ: int16(AccelLSBPerG) + 25,
		GyroX: -60, GyroY: 15, GyroZ: 3,
	}}
	m := &MPU6050{dev: fp}

	o, err := m.Calibrate(10, 0)
	if err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	expect := func(name string, got, want float64) {
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s offset = %v, expected %v", name, got, want)
		}
	}
	expect("accel X", o.AccelX, 120)
	expect("accel Y", o.AccelY, -40)
	expect("accel Z", o.AccelZ, 25)
	expect("gyro X", o.GyroX, -60)
	expect("gyro Y", o.GyroY, 15)
	expect("gyro Z", o.GyroZ, 3)
}

func TestCorrectedScaling(t *testing.T) {
	o := Offsets{AccelX: 100, GyroX: -131}
	raw := Raw{AccelX: 100 + int16(AccelLSBPerG)/2, GyroX: 131 - 131}

	ax, _, _ := o.CorrectedAccel(raw)
	if math.Abs(ax-0.5) > 1e-9 {
		t.Errorf("corrected accel X = %v, expected 0.5g", ax)
	}
	gx, _, _ := o.CorrectedGyro(raw)
	if math.Abs(gx-1.0) > 1e-9 {
		t.Errorf("corrected gyro X = %v, expected 1°/s", gx)
	}
}

func TestCalibrateHonoursSampleDelay(t *testing.T) {
	fp := &fakePort{sample: Raw{AccelZ: int16(AccelLSBPerG)}}
	m := &MPU6050{dev: fp}
	start := time.Now()
	if _, err := m.Calibrate(5, time.Millisecond); err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("calibration finished in %v, expected at least 5ms", elapsed)
	}
}
