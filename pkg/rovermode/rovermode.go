// Package rovermode is the main mission mode: drive forward across the
// arena, keep the position estimate up to date and stop dead the moment
// either forward rangefinder sees an obstacle.
//
// The mode is a two-state machine.  In RUNNING every cycle checks the
// rangefinders first (safety before estimation), then feeds the
// orientation filter and dead-reckoning estimator and emits a report.
// STOPPED is absorbing: the stop latch is never cleared, sensors are no
// longer read and the frozen report is re-emitted each cycle.
package rovermode

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridbot-robotics/gridbot/go-controller/pkg/config"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/deadreckon"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/gridmap"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/hardware"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/mpu6050"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/orientation"
	"github.com/gridbot-robotics/gridbot/go-controller/pkg/report"
	. "github.com/gridbot-robotics/gridbot/go-controller/pkg/tunable"
)

type RoverMode struct {
	hw       hardware.Interface
	cfg      config.RoverConfig
	reporter *report.Reporter
	sounds   chan<- string

	cancel context.CancelFunc
	stopWG sync.WaitGroup

	tunables Tunables

	leftPWM              *Tunable
	rightPWM             *Tunable
	obstacleThreshTenths *Tunable

	offsets mpu6050.Offsets
	filter  *orientation.Filter
	est     *deadreckon.Estimator

	// The stop latch.  One-way: nothing ever clears it.
	stopped bool

	lastCycleTime time.Time
	lastSnapshot  report.Snapshot
}

// New wires up a rover mode.  offsets must come from a completed
// stationary calibration; they are immutable from here on.
func New(hw hardware.Interface, cfg config.RoverConfig, offsets mpu6050.Offsets, reporter *report.Reporter) *RoverMode {
	m := &RoverMode{
		hw:       hw,
		cfg:      cfg,
		reporter: reporter,
		offsets:  offsets,
		filter:   orientation.NewFilter(cfg.Alpha),
	}

	distPerPulse := deadreckon.DistancePerPulse(
		cfg.WheelDiameterIn, cfg.EncoderCountsPerRev, cfg.GearRatio, cfg.PulseCorrection)
	m.est = deadreckon.NewEstimator(cfg.LateralDamping, distPerPulse)

	m.leftPWM = m.tunables.Create("Left PWM", cfg.LeftPWM)
	m.rightPWM = m.tunables.Create("Right PWM", cfg.RightPWM)
	m.obstacleThreshTenths = m.tunables.Create(
		"Obstacle threshold (10ths in)", int(cfg.ObstacleThresholdIn*10))

	return m
}

func (m *RoverMode) Name() string {
	return "ROVER MODE"
}

// SetSoundChannel makes the mode queue the stop alert on latch.
func (m *RoverMode) SetSoundChannel(ch chan<- string) {
	m.sounds = ch
}

func (m *RoverMode) Start(ctx context.Context) {
	m.stopWG.Add(1)
	var loopCtx context.Context
	loopCtx, m.cancel = context.WithCancel(ctx)
	go m.loop(loopCtx)
}

func (m *RoverMode) Stop() {
	m.cancel()
	m.stopWG.Wait()

	m.tunables.Dump()
}

// Stopped reports whether the stop latch has been set.
func (m *RoverMode) Stopped() bool {
	return m.stopped
}

func (m *RoverMode) loop(ctx context.Context) {
	defer m.stopWG.Done()
	defer m.hw.StopMotors()

	fmt.Printf("Rover: starting, left PWM %d right PWM %d\n",
		m.leftPWM.Get(), m.rightPWM.Get())
	m.hw.DriveForward(uint8(m.leftPWM.Get()), uint8(m.rightPWM.Get()))

	cycleDelay := time.Duration(m.cfg.CycleDelayMs) * time.Millisecond
	for ctx.Err() == nil {
		if m.RunCycle(time.Now()) {
			// We just latched: give the motors their settle time
			// before anything else happens.
			if m.sounds != nil {
				select {
				case m.sounds <- m.cfg.StopSound:
				default:
				}
			}
			time.Sleep(time.Duration(m.cfg.SettleDelayMs) * time.Millisecond)
			continue
		}
		time.Sleep(cycleDelay)
	}
}

// RunCycle executes one control cycle at the given wall-clock time and
// reports whether this cycle set the stop latch.  Split out from loop
// so simulated cycles can be driven deterministically.
func (m *RoverMode) RunCycle(now time.Time) (justStopped bool) {
	if m.stopped {
		// Absorbing state: no sensing, no actuation, just repeat the
		// frozen report.
		m.reporter.Emit(m.lastSnapshot)
		return false
	}

	// Safety first: obstacle check before any estimation work.
	rr := m.hw.CurrentRangeReadings()
	threshIn := float64(m.obstacleThreshTenths.Get()) / 10.0
	if rr.Left < threshIn || rr.Right < threshIn {
		m.latchStop(now, rr)
		return true
	}

	raw, err := m.hw.ReadInertial()
	if err != nil {
		// Transient read failure: skip estimation this cycle.  A
		// sensor that was never reachable would have been fatal at
		// start-up.
		fmt.Println("Rover: inertial read failed:", err)
		return false
	}

	dt := m.interval(now)

	gyroX, gyroY, _ := m.offsets.CorrectedGyro(raw)
	accelX, accelY, accelZ := m.offsets.CorrectedAccel(raw)

	// Pitch is rotation about the lateral axis (gyro Y), roll about the
	// forward axis (gyro X).
	m.filter.Update(gyroY, gyroX, accelX, accelY, accelZ, dt)

	counts := m.hw.EncoderCounts()
	m.est.Update(m.filter.Pitch(), m.filter.Roll(), accelX, accelY, dt, counts)

	x, y := m.est.Position()
	gridX, gridY := gridmap.CellXY(x, y)
	snap := report.Snapshot{
		Time:         now,
		X:            x,
		Y:            y,
		GridX:        gridX,
		GridY:        gridY,
		OdometryIn:   m.est.AverageDistanceIn(counts),
		RangeLeftIn:  rr.Left,
		RangeRightIn: rr.Right,
	}
	m.lastSnapshot = snap
	m.reporter.Emit(snap)
	return false
}

// interval returns the elapsed time since the previous cycle in
// seconds, never zero or negative.
func (m *RoverMode) interval(now time.Time) float64 {
	nominal := float64(m.cfg.CycleDelayMs) / 1000.0
	dt := nominal
	if !m.lastCycleTime.IsZero() {
		if measured := now.Sub(m.lastCycleTime).Seconds(); measured > 0 {
			dt = measured
		}
	}
	m.lastCycleTime = now
	return dt
}

func (m *RoverMode) latchStop(now time.Time, rr hardware.RangeReadings) {
	fmt.Printf("Rover: obstacle at L=%.1fin R=%.1fin, stopping\n", rr.Left, rr.Right)
	m.hw.StopMotors()
	m.stopped = true

	// Final report: position frozen at its last estimate, with the
	// ranges that triggered the stop.
	snap := m.lastSnapshot
	snap.Time = now
	snap.RangeLeftIn = rr.Left
	snap.RangeRightIn = rr.Right
	snap.Stopped = true
	m.lastSnapshot = snap
	m.reporter.Emit(snap)
}
