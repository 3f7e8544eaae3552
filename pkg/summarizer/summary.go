// Package summarizer provides summary generation for scenario runs.
package summarizer

import "time"

// Summary contains everything reported about one scenario run.
type Summary struct {
	GeneratedAt time.Time `json:"generated_at"`

	Outcome         string `json:"outcome"`
	Error           string `json:"error,omitempty"`
	TotalDurationMs int64  `json:"total_duration_ms"`

	Target   TargetInfo `json:"target"`
	Settings Settings   `json:"settings"`
	Steps    []StepInfo `json:"steps"`
}

// TargetInfo describes what was searched where.
type TargetInfo struct {
	URL     string `json:"url"`
	Locator string `json:"locator"`
	Query   string `json:"query"`
}

// Settings contains the browser and wait configuration of the run.
type Settings struct {
	Driver            string   `json:"driver"`
	Headless          bool     `json:"headless"`
	Arguments         []string `json:"arguments"`
	PageLoadTimeoutMs int64    `json:"page_load_timeout_ms"`
	ResultsTimeoutMs  int64    `json:"results_timeout_ms"`
}

// StepInfo is the outcome of a single step.
type StepInfo struct {
	Name       string `json:"name"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Failed reports whether the step ended with an error.
func (s StepInfo) Failed() bool {
	return s.Error != ""
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithOutcome sets the final state and the error that ended the run, if any.
func (b *Builder) WithOutcome(outcome string, err error) *Builder {
	b.summary.Outcome = outcome
	if err != nil {
		b.summary.Error = err.Error()
	}
	return b
}

// WithDuration sets the total run duration.
func (b *Builder) WithDuration(d time.Duration) *Builder {
	b.summary.TotalDurationMs = d.Milliseconds()
	return b
}

// WithTarget sets the search target.
func (b *Builder) WithTarget(url, locator, query string) *Builder {
	b.summary.Target = TargetInfo{
		URL:     url,
		Locator: locator,
		Query:   query,
	}
	return b
}

// WithSettings sets the run settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddStep appends a step outcome.
func (b *Builder) AddStep(name string, durationMs int64, errMsg string) *Builder {
	b.summary.Steps = append(b.summary.Steps, StepInfo{
		Name:       name,
		DurationMs: durationMs,
		Error:      errMsg,
	})
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
