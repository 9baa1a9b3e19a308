// Package screen renders a small status panel on the robot's 128x128
// framebuffer display: the arena grid with the current cell lit, plus
// the two forward range readings.  Purely informational; the control
// cycle never waits for it.
package screen

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fogleman/gg"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/gridmap"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/report"
)

var (
	lock   sync.Mutex
	status report.Snapshot
)

// SetStatus records the latest cycle snapshot for the next refresh.
func SetStatus(s report.Snapshot) {
	lock.Lock()
	status = s
	lock.Unlock()
}

// Sink adapts the screen to the report fan-out, so the panel follows
// whatever the cycle reports.
type Sink struct{}

func (Sink) Publish(s report.Snapshot) error {
	SetStatus(s)
	return nil
}

func (Sink) Close() {}

func LoopUpdatingScreen(ctx context.Context) {
	f, err := os.OpenFile("/dev/fb1", os.O_RDWR, 0666)
	if err != nil {
		fmt.Println("Failed to open screen, ignoring")
		return
	}

	for range time.NewTicker(500 * time.Millisecond).C {
		if ctx.Err() != nil {
			var buf [128 * 128 * 2]byte
			_, _ = f.Seek(0, 0)
			_, _ = f.Write(buf[:])
			return
		}

		lock.Lock()
		s := status
		lock.Unlock()

		const S = 128
		dc := gg.NewContext(S, S)
		drawGrid(dc, s)
		drawRangeBars(dc, s)
		if s.Stopped {
			dc.SetRGB(1, 0.2, 0)
			dc.DrawString("STOPPED", 36, 124)
		}

		if err := blitRGB565(f, dc); err != nil {
			fmt.Println("Screen failure: ", err)
			return
		}
	}
}

// drawGrid draws the 9x9 arena with the occupied cell filled.
func drawGrid(dc *gg.Context, s report.Snapshot) {
	const cell = 10.0
	dc.SetRGBA(1, 0.9, 0, 1)
	for gx := 0; gx <= gridmap.MaxCell; gx++ {
		for gy := 0; gy <= gridmap.MaxCell; gy++ {
			// Y grows away from the start line, drawn bottom-up.
			x := 4 + float64(gx)*cell
			y := 4 + float64(gridmap.MaxCell-gy)*cell
			if gx == s.GridX && gy == s.GridY {
				dc.DrawRectangle(x, y, cell-1, cell-1)
				dc.Fill()
			} else {
				dc.DrawRectangle(x, y, cell-1, cell-1)
				dc.Stroke()
			}
		}
	}
}

// drawRangeBars draws one bar per rangefinder, shrinking as an obstacle
// approaches.
func drawRangeBars(dc *gg.Context, s report.Snapshot) {
	const maxIn = 48.0
	for i, r := range []float64{s.RangeLeftIn, s.RangeRightIn} {
		frac := r / maxIn
		if frac > 1 {
			frac = 1
		}
		if frac < 0.25 {
			dc.SetRGBA(1, 0.2, 0, 1)
		} else {
			dc.SetRGBA(0, 0.9, 0.2, 1)
		}
		dc.DrawRectangle(100, 10+float64(i)*14, 24*frac, 10)
		dc.Fill()
	}
}

// blitRGB565 converts the context image to RGB565 and writes it to the
// framebuffer, a line at a time.
func blitRGB565(f *os.File, dc *gg.Context) error {
	const S = 128
	var buf [S * S * 2]byte
	for y := 0; y < S; y++ {
		for x := 0; x < S; x++ {
			c := dc.Image().At(x, y)
			r, g, b, _ := c.RGBA() // 16-bit pre-multiplied

			rb := byte(r >> (16 - 5))
			gb := byte(g >> (16 - 6)) // Green has 6 bits
			bb := byte(b >> (16 - 5))

			buf[(S-1-y)*2+x*S*2+1] = (rb << 3) | (gb >> 3)
			buf[(S-1-y)*2+x*S*2] = bb | (gb << 5)
		}
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	for i := 0; i < S; i++ {
		if _, err := f.Write(buf[i*256 : i*256+256]); err != nil {
			return err
		}
		time.Sleep(10 * time.Microsecond)
	}
	return nil
}
