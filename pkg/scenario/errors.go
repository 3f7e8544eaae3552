package scenario

import (
	"errors"
	"fmt"
)

// Error kinds. Every failed run returns a *StepError whose Kind is one of these.
var (
	// ErrAcquisition means the browser session could not be opened.
	ErrAcquisition = errors.New("session acquisition failed")

	// ErrNavigation means the target page failed to load.
	ErrNavigation = errors.New("navigation failed")

	// ErrElementNotFound means the locator matched no element.
	ErrElementNotFound = errors.New("element not found")

	// ErrInteraction means typing into or submitting the element failed.
	ErrInteraction = errors.New("interaction failed")

	// ErrTimeout means a readiness wait expired.
	ErrTimeout = errors.New("readiness wait timed out")

	// ErrCleanup means the session could not be released after an otherwise successful run.
	ErrCleanup = errors.New("session release failed")
)

// StepError reports the step a run failed at, the error kind and the provider error.
// errors.Is matches both Kind and anything in the Err chain.
type StepError struct {
	Step Step
	Kind error
	Err  error
}

func newStepError(step Step, kind, err error) *StepError {
	return &StepError{Step: step, Kind: kind, Err: err}
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
