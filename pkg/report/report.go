// Package report emits the per-cycle position report to one or more
// diagnostics sinks.  Sinks are best-effort and append-only: a failing
// sink is logged and skipped, never retried, and never blocks the
// control cycle for long.
package report

import (
	"fmt"
	"time"
)

// Snapshot is everything one cycle reports.  All distances in inches.
type Snapshot struct {
	Time time.Time `json:"time"`

	X float64 `json:"x_in"`
	Y float64 `json:"y_in"`

	GridX int `json:"grid_x"`
	GridY int `json:"grid_y"`

	// OdometryIn is the averaged encoder distance feeding Y.
	OdometryIn float64 `json:"odometry_in"`

	RangeLeftIn  float64 `json:"range_left_in"`
	RangeRightIn float64 `json:"range_right_in"`

	Stopped bool `json:"stopped"`
}

// Line renders the human-readable report for the serial/stdout sinks.
func (s Snapshot) Line() string {
	state := "RUNNING"
	if s.Stopped {
		state = "STOPPED"
	}
	return fmt.Sprintf("%s X=%.2fin Y=%.2fin grid=(%d,%d) odo=%.2fin rangeL=%.1fin rangeR=%.1fin",
		state, s.X, s.Y, s.GridX, s.GridY, s.OdometryIn, s.RangeLeftIn, s.RangeRightIn)
}

// Sink accepts one snapshot per cycle.
type Sink interface {
	Publish(s Snapshot) error
	Close()
}

type Reporter struct {
	sinks []Sink
}

func NewReporter(sinks ...Sink) *Reporter {
	return &Reporter{sinks: sinks}
}

// AddSink appends a sink.  Not safe concurrently with Emit; call during
// bring-up only.
func (r *Reporter) AddSink(s Sink) {
	r.sinks = append(r.sinks, s)
}

// Emit fans the snapshot out to every sink.
func (r *Reporter) Emit(s Snapshot) {
	for _, sink := range r.sinks {
		if err := sink.Publish(s); err != nil {
			fmt.Println("Report: sink error:", err)
		}
	}
}

func (r *Reporter) Close() {
	for _, sink := range r.sinks {
		sink.Close()
	}
}

// StdoutSink prints the report line to the console.
type StdoutSink struct{}

func (StdoutSink) Publish(s Snapshot) error {
	fmt.Println(s.Line())
	return nil
}

func (StdoutSink) Close() {}
