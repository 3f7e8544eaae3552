// Package scenario runs the search scenario: open a browser, search, release the browser.
package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/user/searchprobe/pkg/ports"
	"github.com/user/searchprobe/pkg/wait"
)

const (
	DefaultTargetURL   = "https://www.google.com/"
	DefaultLocatorName = "q"
	DefaultQuery       = "ChromeDriver"

	DefaultPageLoadTimeout = 15 * time.Second
	DefaultResultsTimeout  = 15 * time.Second
	DefaultPollInterval    = wait.DefaultInterval
)

// Browser switches passed on every launch.
const (
	ArgNoSandbox          = "--no-sandbox"
	ArgDisableDevShmUsage = "--disable-dev-shm-usage"
	ArgHeadless           = "--headless=new"
)

// debugCaptureTimeout bounds the screenshot taken after a failure.
const debugCaptureTimeout = 5 * time.Second

// Config is the explicit input of a run. It is built once by the caller.
type Config struct {
	Headless   bool
	ChromePath string

	TargetURL   string
	LocatorName string
	Query       string

	PageLoadTimeout time.Duration // bound for the page to reach readyState "complete"
	ResultsTimeout  time.Duration // bound for the results page after submit
	PollInterval    time.Duration
}

// DefaultConfig returns the headless search against the default target.
func DefaultConfig() Config {
	return Config{
		Headless:        true,
		TargetURL:       DefaultTargetURL,
		LocatorName:     DefaultLocatorName,
		Query:           DefaultQuery,
		PageLoadTimeout: DefaultPageLoadTimeout,
		ResultsTimeout:  DefaultResultsTimeout,
		PollInterval:    DefaultPollInterval,
	}
}

// BuildArguments returns the launch switches for the given headless mode.
// The sandbox and shared-memory switches are always present.
func BuildArguments(headless bool) []string {
	args := []string{ArgNoSandbox, ArgDisableDevShmUsage}
	if headless {
		args = append(args, ArgHeadless)
	}
	return args
}

// Scenario drives one browser session through the search.
type Scenario struct {
	browser ports.Browser
	sink    ports.DebugSink
	logger  ports.Logger
}

// New creates a new Scenario.
func New(browser ports.Browser, sink ports.DebugSink, logger ports.Logger) *Scenario {
	return &Scenario{
		browser: browser,
		sink:    sink,
		logger:  logger.WithComponent("scenario"),
	}
}

// Run executes the scenario once.
//
// A session that was opened is closed exactly once before Run returns,
// whatever the outcome. A close failure never replaces an earlier error;
// after an otherwise successful run it is returned as ErrCleanup.
func (s *Scenario) Run(ctx context.Context, cfg Config) (result Result, err error) {
	start := time.Now()
	result.State = NotStarted
	defer func() {
		result.Duration = time.Since(start)
	}()

	opts := ports.SessionOptions{
		Headless:   cfg.Headless,
		Args:       BuildArguments(cfg.Headless),
		ChromePath: cfg.ChromePath,
	}

	if opts.Headless {
		s.logger.Info("Launching browser in headless mode")
	} else {
		s.logger.Info("Launching browser in visible mode")
	}
	s.logger.Debug("Browser arguments: %s", strings.Join(opts.Args, " "))

	var session ports.Session
	if openErr := result.track(StepLaunch, func() error {
		var err error
		session, err = s.browser.Open(ctx, opts)
		return err
	}); openErr != nil {
		err = newStepError(StepLaunch, ErrAcquisition, openErr)
		result.State = Failed
		s.logger.Error("Scenario failed at %s: %s", StepLaunch, err)
		s.captureDebug(ctx, nil, &result)
		return result, err
	}
	result.State = SessionOpen

	defer func() {
		closeErr := result.track(StepClose, session.Close)
		if closeErr == nil {
			s.logger.Debug("Browser closed")
			return
		}
		if err != nil {
			s.logger.Warn("Failed to close browser: %s", closeErr)
			return
		}
		err = newStepError(StepClose, ErrCleanup, closeErr)
		result.State = Failed
		s.logger.Error("Scenario failed at %s: %s", StepClose, err)
	}()

	if err = s.search(ctx, session, cfg, &result); err != nil {
		result.State = Failed
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			s.logger.Error("Scenario failed at %s: %s", stepErr.Step, err)
		}
		s.captureDebug(ctx, session, &result)
		return result, err
	}

	result.State = Completed
	s.logger.Info("Scenario completed in %d ms", time.Since(start).Milliseconds())
	return result, nil
}

// search performs the interaction steps between acquisition and release.
func (s *Scenario) search(ctx context.Context, session ports.Session, cfg Config, result *Result) error {
	s.logger.Info("Navigating to %s", cfg.TargetURL)
	if err := result.track(StepNavigate, func() error {
		return session.Navigate(ctx, cfg.TargetURL)
	}); err != nil {
		return newStepError(StepNavigate, ErrNavigation, err)
	}

	s.logger.Debug("Waiting for page load")
	if err := result.track(StepAwaitPage, func() error {
		_, err := s.pollState(ctx, session, "page load", cfg.PollInterval, cfg.PageLoadTimeout, ports.PageState.Complete)
		return err
	}); err != nil {
		return newStepError(StepAwaitPage, waitKind(err, ErrNavigation), err)
	}

	s.logger.Info("Locating element named %s", cfg.LocatorName)
	var element ports.Element
	if err := result.track(StepLocate, func() error {
		var err error
		element, err = session.FindElementByName(ctx, cfg.LocatorName)
		return err
	}); err != nil {
		kind := ErrInteraction
		if errors.Is(err, ports.ErrElementNotFound) {
			kind = ErrElementNotFound
		}
		return newStepError(StepLocate, kind, err)
	}

	s.logger.Info("Typing %s", cfg.Query)
	if err := result.track(StepSendKeys, func() error {
		return element.SendKeys(ctx, cfg.Query)
	}); err != nil {
		return newStepError(StepSendKeys, ErrInteraction, err)
	}

	var before ports.PageState
	s.logger.Info("Submitting search form")
	if err := result.track(StepSubmit, func() error {
		var err error
		if before, err = session.State(ctx); err != nil {
			return err
		}
		return element.Submit(ctx)
	}); err != nil {
		return newStepError(StepSubmit, ErrInteraction, err)
	}

	s.logger.Debug("Waiting for search results")
	var after ports.PageState
	if err := result.track(StepAwaitResults, func() error {
		var err error
		after, err = s.pollState(ctx, session, "search results", cfg.PollInterval, cfg.ResultsTimeout, func(state ports.PageState) bool {
			return state.Complete() && state.URL != before.URL
		})
		return err
	}); err != nil {
		return newStepError(StepAwaitResults, waitKind(err, ErrInteraction), err)
	}
	s.logger.Info("Search results loaded: %s", after.URL)

	return nil
}

// pollState probes the page until ready accepts its state or timeout expires.
// A failed probe is retried: the page may be between documents. If the wait
// expires right after a failed probe, that error is wrapped into the timeout.
func (s *Scenario) pollState(ctx context.Context, session ports.Session, what string, interval, timeout time.Duration, ready func(ports.PageState) bool) (ports.PageState, error) {
	var last ports.PageState
	var probeErr error
	err := wait.Until(ctx, what, interval, timeout, func(ctx context.Context) (bool, error) {
		state, err := session.State(ctx)
		if err != nil {
			s.logger.Debug("Page state probe failed: %s", err)
			probeErr = err
			return false, nil
		}
		probeErr = nil
		last = state
		s.logger.Debug("Ready state: %s", state.ReadyState)
		return ready(state), nil
	})
	if err != nil && probeErr != nil && errors.Is(err, wait.ErrTimeout) {
		err = fmt.Errorf("%w: last probe: %w", err, probeErr)
	}
	return last, err
}

// waitKind classifies a failed wait: expiry is ErrTimeout, anything else is fallback.
func waitKind(err, fallback error) error {
	if errors.Is(err, wait.ErrTimeout) {
		return ErrTimeout
	}
	return fallback
}

// captureDebug saves a screenshot and the step trace when the sink is enabled.
// Failures here are logged and never change the run outcome.
func (s *Scenario) captureDebug(ctx context.Context, session ports.Session, result *Result) {
	if !s.sink.Enabled() {
		return
	}

	if session != nil {
		shotCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), debugCaptureTimeout)
		defer cancel()
		if shot, err := session.Screenshot(shotCtx); err != nil {
			s.logger.Warn("Failed to capture screenshot: %s", err)
		} else if err := s.sink.SaveScreenshot(shot); err != nil {
			s.logger.Warn("Failed to save debug output: %s", err)
		}
	}

	data, err := json.MarshalIndent(result.Steps, "", "  ")
	if err != nil {
		s.logger.Warn("Failed to save debug output: %s", err)
		return
	}
	if err := s.sink.SaveStepsJSON(data); err != nil {
		s.logger.Warn("Failed to save debug output: %s", err)
	}
}
