// Package config holds the tuning surface for the rover.  Everything
// that was once a magic number in the control loop lives here with a
// documented default, so the tuning can be changed per-arena without a
// rebuild.
package config

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

type RoverConfig struct {
	// Complementary filter weighting: gyro trust per cycle.
	Alpha float64
	// Empirical damping applied to lateral acceleration before
	// integration.
	LateralDamping float64
	// Compensates the measured vs nominal counts-per-revolution
	// discrepancy of the encoders.
	PulseCorrection float64
	// Forward range below which we stop, inches.
	ObstacleThresholdIn float64
	// PWM duty cycles (0-255) per drive side.  Asymmetric on purpose:
	// the right side drags slightly, so it gets more duty to track
	// straight.
	LeftPWM  int
	RightPWM int

	// Wheel geometry.
	WheelDiameterIn     float64
	EncoderCountsPerRev float64
	GearRatio           float64

	// Calibration: number of stationary samples and the delay between
	// them.
	CalibrationSamples int
	CalibrationDelayMs int

	// Cycle pacing and the motor settle wait after a stop.
	CycleDelayMs  int
	SettleDelayMs int

	// Buses and pins.
	I2CDevice         string
	EncoderPins       [4]string // FL, FR, BL, BR
	LeftRangeTrigger  string
	LeftRangeEcho     string
	RightRangeTrigger string
	RightRangeEcho    string

	LeftMotorEnable     string
	LeftMotorDirection  string
	LeftMotorSpeed      string
	RightMotorEnable    string
	RightMotorDirection string
	RightMotorSpeed     string

	// Diagnostics sinks.  Empty values disable a sink.
	SerialReportDevice string
	SerialReportBaud   int
	MQTTBroker         string
	MQTTClientID       string
	MQTTTopic          string

	// Sound played when the obstacle stop latches.
	StopSound string
}

// Default returns the compiled-in tuning.
func Default() RoverConfig {
	return RoverConfig{
		Alpha:               0.98,
		LateralDamping:      0.1,
		PulseCorrection:     5.05,
		ObstacleThresholdIn: 12.0,
		LeftPWM:             40,
		RightPWM:            50,

		WheelDiameterIn:     4.0,
		EncoderCountsPerRev: 64,
		GearRatio:           70,

		CalibrationSamples: 100,
		CalibrationDelayMs: 2,

		CycleDelayMs:  10,
		SettleDelayMs: 1000,

		I2CDevice:   "/dev/i2c-1",
		EncoderPins: [4]string{"GPIO17", "GPIO27", "GPIO22", "GPIO23"},

		LeftRangeTrigger:  "GPIO5",
		LeftRangeEcho:     "GPIO6",
		RightRangeTrigger: "GPIO19",
		RightRangeEcho:    "GPIO26",

		LeftMotorEnable:     "GPIO12",
		LeftMotorDirection:  "GPIO16",
		LeftMotorSpeed:      "GPIO13",
		RightMotorEnable:    "GPIO20",
		RightMotorDirection: "GPIO21",
		RightMotorSpeed:     "GPIO18",

		SerialReportBaud: 115200,
		MQTTClientID:     "gridbot-controller",
		MQTTTopic:        "gridbot/report",

		StopSound: "/sounds/obstacle.wav",
	}
}

// Load starts from the defaults, overlays the YAML file at path if it
// exists, and writes back the config actually in use alongside it.
// A missing or bad file is logged and ignored; tuning should never
// brick the robot.
func Load(path string) RoverConfig {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Config:", err, "- using defaults")
	} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
		fmt.Println("Config: failed to parse", path, ":", err, "- using defaults")
		cfg = Default()
	}
	fmt.Printf("Using config: %+v\n", cfg)

	// Write out the config that we are using.
	if out, err := yaml.Marshal(&cfg); err == nil {
		inUse := strings.TrimSuffix(path, ".yaml") + "-in-use.yaml"
		if err := os.WriteFile(inUse, out, 0666); err != nil {
			fmt.Println("Config: failed to write", inUse, ":", err)
		}
	}
	return cfg
}
