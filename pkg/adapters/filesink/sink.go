// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"

	"github.com/user/searchprobe/pkg/ports"
)

const (
	screenshotFile = "failure.png"
	stepsFile      = "steps.json"
)

// Sink saves debug output under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new file sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveScreenshot writes failure.png.
func (s *Sink) SaveScreenshot(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, screenshotFile), data)
}

// SaveStepsJSON writes steps.json.
func (s *Sink) SaveStepsJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, stepsFile), data)
}

var _ ports.DebugSink = (*Sink)(nil)
