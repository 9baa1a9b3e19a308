package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/mpu6050"
)

// Runs the stationary calibration on its own and prints the offsets,
// for checking sensor bias drift between missions.
func main() {
	fmt.Println("---- IMU calibration ----")
	fmt.Println("GOMAXPROCS", runtime.GOMAXPROCS(0))

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
	fmt.Printf("Offsets: %+v\n", offsets)
}
