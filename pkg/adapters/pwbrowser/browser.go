// Package pwbrowser provides a browser implementation using playwright-go.
package pwbrowser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/user/searchprobe/pkg/ports"
)

// submitScript submits the owning form the way WebDriver's submit does.
const submitScript = `el => {
	if (!el.form) {
		throw new Error("element is not inside a form");
	}
	el.form.submit();
}`

// Options configures the Playwright driver.
type Options struct {
	// Install downloads the Playwright driver and Chromium before the first launch.
	Install bool
}

// Browser implements ports.Browser using Playwright's Chromium.
type Browser struct {
	options Options
	logger  ports.Logger

	installOnce sync.Once
	installErr  error
}

// New creates a new Browser.
func New(options Options, logger ports.Logger) *Browser {
	return &Browser{
		options: options,
		logger:  logger.WithComponent("playwright"),
	}
}

func (b *Browser) install() error {
	b.installOnce.Do(func() {
		b.logger.Info("Installing Playwright Chromium")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			b.installErr = fmt.Errorf("install playwright: %w", err)
		}
	})
	return b.installErr
}

// Open starts the Playwright driver, launches Chromium and opens a page.
func (b *Browser) Open(ctx context.Context, opts ports.SessionOptions) (ports.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.options.Install {
		if err := b.install(); err != nil {
			return nil, err
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     launchArgs(opts.Args),
	}
	if opts.ChromePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ChromePath)
	}
	b.logger.Debug("Launching Chromium with %s", strings.Join(launchOpts.Args, " "))

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &Session{pw: pw, browser: browser, page: page}, nil
}

// launchArgs drops headless switches; Playwright sets headless mode from its own option.
func launchArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "--headless") {
			continue
		}
		out = append(out, arg)
	}
	return out
}

// timeoutMs converts the ctx deadline into a Playwright timeout.
// nil means Playwright's default.
func timeoutMs(ctx context.Context) *float64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return nil
	}
	return playwright.Float(float64(time.Until(deadline).Milliseconds()))
}

// callWithContext runs a Playwright call that takes no timeout option and
// returns early with ctx.Err() when ctx is done. The call itself keeps running
// until Playwright answers or the session is closed.
func callWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn()
		done <- outcome{value: v, err: err}
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Session is a Playwright page together with the browser and driver hosting it.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page

	closeOnce sync.Once
	closeErr  error
}

// Navigate loads the specified URL.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{Timeout: timeoutMs(ctx)}); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// State reads document.readyState and the current location.
func (s *Session) State(ctx context.Context) (ports.PageState, error) {
	if err := ctx.Err(); err != nil {
		return ports.PageState{}, err
	}
	v, err := callWithContext(ctx, func() (interface{}, error) {
		return s.page.Evaluate(`document.readyState`)
	})
	if err != nil {
		return ports.PageState{}, fmt.Errorf("read page state: %w", err)
	}
	readyState, _ := v.(string)
	return ports.PageState{ReadyState: readyState, URL: s.page.URL()}, nil
}

// FindElementByName returns the first match without waiting.
func (s *Session) FindElementByName(ctx context.Context, name string) (ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selector := fmt.Sprintf(`[name=%q]`, name)
	handles, err := callWithContext(ctx, func() ([]playwright.ElementHandle, error) {
		return s.page.QuerySelectorAll(selector)
	})
	if err != nil {
		return nil, fmt.Errorf("find element %s: %w", selector, err)
	}
	if len(handles) == 0 {
		return nil, fmt.Errorf("find element %s: %w", selector, ports.ErrElementNotFound)
	}
	return &Element{handle: handles[0]}, nil
}

// Screenshot captures the visible viewport as PNG.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf, err := s.page.Screenshot(playwright.PageScreenshotOptions{Timeout: timeoutMs(ctx)})
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

// Close shuts down the browser and the Playwright driver.
// Subsequent calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chromium: %w", err))
		}
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

// Element wraps a Playwright element handle.
type Element struct {
	handle playwright.ElementHandle
}

// SendKeys types text into the element key by key.
func (e *Element) SendKeys(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.handle.Type(text, playwright.ElementHandleTypeOptions{Timeout: timeoutMs(ctx)}); err != nil {
		return fmt.Errorf("send keys: %w", err)
	}
	return nil
}

// Submit submits the form the element belongs to.
func (e *Element) Submit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := callWithContext(ctx, func() (interface{}, error) {
		return e.handle.Evaluate(submitScript)
	}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

var (
	_ ports.Browser = (*Browser)(nil)
	_ ports.Session = (*Session)(nil)
	_ ports.Element = (*Element)(nil)
)
