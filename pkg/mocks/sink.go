package mocks

import (
	"sync"

	"github.com/user/searchprobe/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Screenshot []byte
	StepsJSON  []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveScreenshot(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Screenshot = data
	return nil
}

func (m *DebugSink) SaveStepsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StepsJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
