package mpu6050

// Offsets holds the per-axis sensor biases in raw counts, as produced
// by Calibrate.  Immutable once seeded.
type Offsets struct {
	AccelX, AccelY, AccelZ float64
	GyroX, GyroY, GyroZ    float64
}

// CorrectedAccel subtracts the biases from a raw sample and scales the
// result to g.
func (o Offsets) CorrectedAccel(r Raw) (ax, ay, az float64) {
	ax = (float64(r.AccelX) - o.AccelX) / AccelLSBPerG
	ay = (float64(r.AccelY) - o.AccelY) / AccelLSBPerG
	az = (float64(r.AccelZ) - o.AccelZ) / AccelLSBPerG
	return
}

// CorrectedGyro subtracts the biases from a raw sample and scales the
// result to °/s.
func (o Offsets) CorrectedGyro(r Raw) (gx, gy, gz float64) {
	gx = (float64(r.GyroX) - o.GyroX) / GyroLSBPerDPS
	gy = (float64(r.GyroY) - o.GyroY) / GyroLSBPerDPS
	gz = (float64(r.GyroZ) - o.GyroZ) / GyroLSBPerDPS
	return
}
