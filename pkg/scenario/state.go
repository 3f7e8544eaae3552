package scenario

import "time"

// State is the lifecycle position of a run.
type State int

const (
	NotStarted State = iota
	SessionOpen
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case SessionOpen:
		return "session-open"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Completed || s == Failed
}

// Step names one stage of the scenario.
type Step string

const (
	StepLaunch       Step = "launch"
	StepNavigate     Step = "navigate"
	StepAwaitPage    Step = "await-page"
	StepLocate       Step = "locate"
	StepSendKeys     Step = "send-keys"
	StepSubmit       Step = "submit"
	StepAwaitResults Step = "await-results"
	StepClose        Step = "close"
)

// StepTiming records how long a step took and how it ended.
type StepTiming struct {
	Step       Step   `json:"step"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Result describes a finished run.
type Result struct {
	State    State
	Steps    []StepTiming
	Duration time.Duration
}

// track runs fn as step and appends its timing.
func (r *Result) track(step Step, fn func() error) error {
	start := time.Now()
	err := fn()
	timing := StepTiming{
		Step:       step,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		timing.Error = err.Error()
	}
	r.Steps = append(r.Steps, timing)
	return err
}
