package main

import (
	"fmt"
	"time"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/mpu6050"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/orientation"
)

// Prints raw six-axis samples and the filtered angles, for bench
// checking the IMU wiring and axis conventions.
func main() {
	fmt.Println("---- IMU tests ----")

	imu, err := mpu6050.NewI2C("/dev/i2c-1")
	if err != nil {
		fmt.Println("Failed to open IMU:", err)
		return
	}
	if err := imu.Configure(); err != nil {
		fmt.Println("Failed to configure IMU:", err)
		return
	}

	offsets, err := imu.Calibrate(100, 2*time.Millisecond)
	if err != nil {
		fmt.Println("Calibration failed:", err)
		return
	}

	filter := orientation.NewFilter(orientation.DefaultAlpha)
	last := time.Now()
	for {
		raw, err := imu.ReadRaw()
		if err != nil {
			fmt.Println("Read failed:", err)
			time.Sleep(time.Second)
			continue
		}
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now

		gyroX, gyroY, gyroZ := offsets.CorrectedGyro(raw)
		accelX, accelY, accelZ := offsets.CorrectedAccel(raw)
		filter.Update(gyroY, gyroX, accelX, accelY, accelZ, dt)

		fmt.Printf("accel %6.3f %6.3f %6.3f g  gyro %7.2f %7.2f %7.2f °/s  pitch %6.2f° roll %6.2f°\n",
			accelX, accelY, accelZ, gyroX, gyroY, gyroZ, filter.Pitch(), filter.Roll())
		time.Sleep(100 * time.Millisecond)
	}
}
