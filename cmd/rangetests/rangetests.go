package main

import (
	"fmt"
	"time"

	"periph.io/x/periph/host"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/config"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/rangefinder"
)

// Prints both forward rangefinder channels once a second.
func main() {
	fmt.Println("---- Rangefinder tests ----")

	if _, err := host.Init(); err != nil {
		fmt.Println("GPIO host init failed:", err)
		return
	}

	cfg := config.Default()
	left, err := rangefinder.New(cfg.LeftRangeTrigger, cfg.LeftRangeEcho)
	if err != nil {
		fmt.Println("Failed to open left rangefinder:", err)
		return
	}
	right, err := rangefinder.New(cfg.RightRangeTrigger, cfg.RightRangeEcho)
	if err != nil {
		fmt.Println("Failed to open right rangefinder:", err)
		return
	}

	for {
		l, lerr := left.MeasureDistanceIn()
		r, rerr := right.MeasureDistanceIn()
		fmt.Printf("left %6.1fin (%v)  right %6.1fin (%v)\n", l, lerr, r, rerr)
		time.Sleep(time.Second)
	}
}
