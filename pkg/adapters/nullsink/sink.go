// Package nullsink provides a no-op debug sink implementation.
package nullsink

import "github.com/user/searchprobe/pkg/ports"

// Sink discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

func (s *Sink) SaveScreenshot(data []byte) error {
	return nil
}

func (s *Sink) SaveStepsJSON(data []byte) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)
