// Package rangefinder measures distance with an HC-SR04 ultrasonic
// ranging module: a 10µs trigger pulse, then an echo pulse whose width
// is the round-trip time of flight.
package rangefinder

import (
	"fmt"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

const (
	// RangeTooFarIn is the distance in inches that we return if the
	// measurement was invalid, which typically means the sensor got no
	// echo because the surface was too far away.  Deliberately far
	// beyond any obstacle threshold, so a missing echo reads as "no
	// obstacle".
	RangeTooFarIn = 200.0

	// echoTimeout bounds the wait for each echo edge.  The HC-SR04
	// gives up after ~38ms; anything longer is a dead sensor.
	echoTimeout = 100 * time.Millisecond

	microsecondsPerCM = 58.0
	inchesPerCM       = 0.3937
)

type Interface interface {
	// MeasureDistanceIn takes one blocking measurement and returns the
	// distance in inches.  Invalid or missing echoes return
	// RangeTooFarIn with a nil error.
	MeasureDistanceIn() (float64, error)
}

type Sensor struct {
	trigger gpio.PinIO
	echo    gpio.PinIO
}

// New looks up the trigger and echo pins by name and prepares them.
func New(triggerPin, echoPin string) (*Sensor, error) {
	s := &Sensor{}
	if s.trigger = gpioreg.ByName(triggerPin); s.trigger == nil {
		return nil, fmt.Errorf("no GPIO pin named %q for trigger", triggerPin)
	}
	if s.echo = gpioreg.ByName(echoPin); s.echo == nil {
		return nil, fmt.Errorf("no GPIO pin named %q for echo", echoPin)
	}
	if err := s.trigger.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := s.echo.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sensor) MeasureDistanceIn() (float64, error) {
	// Arm for the rising edge before triggering so we can't miss it.
	if err := s.echo.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return 0, err
	}

	if err := s.trigger.Out(gpio.High); err != nil {
		return 0, err
	}
	time.Sleep(10 * time.Microsecond)
	if err := s.trigger.Out(gpio.Low); err != nil {
		return 0, err
	}

	if !s.echo.WaitForEdge(echoTimeout) {
		return RangeTooFarIn, nil
	}
	start := time.Now()

	if err := s.echo.In(gpio.PullDown, gpio.FallingEdge); err != nil {
		return 0, err
	}
	if !s.echo.WaitForEdge(echoTimeout) {
		return RangeTooFarIn, nil
	}
	width := time.Since(start)

	return PulseToInches(float64(width.Microseconds())), nil
}

// PulseToInches converts an echo pulse width in microseconds to a
// distance in inches.  A zero or negative width means no echo and maps
// to RangeTooFarIn.
func PulseToInches(pulseMicroseconds float64) float64 {
	if pulseMicroseconds <= 0 {
		return RangeTooFarIn
	}
	cm := pulseMicroseconds / microsecondsPerCM
	return cm * inchesPerCM
}
