// Package motor drives one side of the chassis through an H-bridge:
// an enable line, a direction line and a PWM speed line.
package motor

import (
	"fmt"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/physic"
)

type Direction int

const (
	Forward Direction = iota
	Reverse
)

// pwmFreq is the H-bridge switching frequency.
const pwmFreq = 20 * physic.KiloHertz

type Interface interface {
	SetEnabled(on bool) error
	SetDirection(d Direction) error
	// SetSpeed sets the PWM duty cycle, 0-255.
	SetSpeed(speed uint8) error
}

type Drive struct {
	enable    gpio.PinIO
	direction gpio.PinIO
	speed     gpio.PinIO
}

// New looks up the three control pins by name and leaves the side
// disabled and stopped.
func New(enablePin, directionPin, speedPin string) (*Drive, error) {
	d := &Drive{}
	if d.enable = gpioreg.ByName(enablePin); d.enable == nil {
		return nil, fmt.Errorf("no GPIO pin named %q for enable", enablePin)
	}
	if d.direction = gpioreg.ByName(directionPin); d.direction == nil {
		return nil, fmt.Errorf("no GPIO pin named %q for direction", directionPin)
	}
	if d.speed = gpioreg.ByName(speedPin); d.speed == nil {
		return nil, fmt.Errorf("no GPIO pin named %q for speed", speedPin)
	}
	if err := d.enable.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := d.direction.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := d.speed.Out(gpio.Low); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Drive) SetEnabled(on bool) error {
	return d.enable.Out(gpio.Level(on))
}

func (d *Drive) SetDirection(dir Direction) error {
	return d.direction.Out(dir == Forward)
}

func (d *Drive) SetSpeed(speed uint8) error {
	duty := gpio.Duty(speed) * gpio.DutyMax / 255
	return d.speed.PWM(duty, pwmFreq)
}
