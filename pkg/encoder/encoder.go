// Package encoder accumulates wheel rotation pulses from the four wheel
// encoders.  Each encoder output is a GPIO line that pulses once per
// detected rotation edge; the edge handlers do nothing but a single
// atomic increment so that a slow handler can never starve later edges
// on the same line.
package encoder

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

type Wheel int

const (
	FrontLeft Wheel = iota
	FrontRight
	BackLeft
	BackRight

	NumWheels
)

func (w Wheel) String() string {
	switch w {
	case FrontLeft:
		return "FL"
	case FrontRight:
		return "FR"
	case BackLeft:
		return "BL"
	case BackRight:
		return "BR"
	}
	return fmt.Sprintf("wheel(%d)", int(w))
}

// PerWheelVal holds one value for each wheel, indexed by Wheel.
type PerWheelVal[T any] [NumWheels]T

// Counts is a snapshot of the four pulse counters.
type Counts = PerWheelVal[uint32]

// Counters is the shared state between the edge handlers and the main
// control cycle.  Counters only ever increase; they are never reset
// after start-up.
type Counters struct {
	counts [NumWheels]uint32
}

// Increment records one rotation edge for the given wheel.  Safe to
// call from any goroutine; this is the only mutation Counters supports.
func (c *Counters) Increment(w Wheel) {
	atomic.AddUint32(&c.counts[w], 1)
}

// Snapshot returns an atomically-read copy of all four counters.
func (c *Counters) Snapshot() (out Counts) {
	for w := Wheel(0); w < NumWheels; w++ {
		out[w] = atomic.LoadUint32(&c.counts[w])
	}
	return
}

// WatchPins starts one goroutine per wheel that waits for rising edges
// on the named GPIO pins and bumps the matching counter.  The
// goroutines exit when ctx is cancelled.
func (c *Counters) WatchPins(ctx context.Context, pinNames PerWheelVal[string]) error {
	var pins PerWheelVal[gpio.PinIn]
	for w := Wheel(0); w < NumWheels; w++ {
		p := gpioreg.ByName(pinNames[w])
		if p == nil {
			return fmt.Errorf("no GPIO pin named %q for wheel %v", pinNames[w], w)
		}
		if err := p.In(gpio.PullUp, gpio.RisingEdge); err != nil {
			return fmt.Errorf("wheel %v encoder pin: %w", w, err)
		}
		pins[w] = p
	}
	for w := Wheel(0); w < NumWheels; w++ {
		go c.watchPin(ctx, w, pins[w])
	}
	return nil
}

func (c *Counters) watchPin(ctx context.Context, w Wheel, pin gpio.PinIn) {
	for ctx.Err() == nil {
		// Time out periodically so we notice cancellation.
		if pin.WaitForEdge(time.Second) {
			c.Increment(w)
		}
	}
}
