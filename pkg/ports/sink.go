package ports

// DebugSink abstracts debug output captured when a scenario run fails.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveScreenshot saves a PNG screenshot of the page at failure time.
	SaveScreenshot(data []byte) error

	// SaveStepsJSON saves the step trace of the run as JSON.
	SaveStepsJSON(data []byte) error
}
