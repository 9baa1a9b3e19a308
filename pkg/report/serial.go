package report

import (
	"fmt"

	"go.bug.st/serial"
)

// SerialSink writes report lines to a serial diagnostics port.
type SerialSink struct {
	port serial.Port
}

func NewSerialSink(device string, baud int) (*SerialSink, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial diagnostics port: %w", err)
	}
	return &SerialSink{port: port}, nil
}

func (s *SerialSink) Publish(snap Snapshot) error {
	_, err := s.port.Write([]byte(snap.Line() + "\r\n"))
	return err
}

func (s *SerialSink) Close() {
	_ = s.port.Close()
}
