// Package chromebrowser provides a browser implementation using chromedp.
package chromebrowser

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/user/searchprobe/pkg/ports"
)

// Browser implements ports.Browser using chromedp.
type Browser struct {
	logger ports.Logger
}

// New creates a new Browser.
func New(logger ports.Logger) *Browser {
	return &Browser{logger: logger.WithComponent("chromedp")}
}

// Open starts Chrome with the given switches and attaches a tab to it.
func (b *Browser) Open(ctx context.Context, opts ports.SessionOptions) (ports.Session, error) {
	// Explicit path first, then well-known install locations.
	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return nil, fmt.Errorf("chrome not found: install Chrome or Chromium, or set CHROME_PATH or --chrome-path")
	}
	b.logger.Debug("Using Chrome at %s", chromePath)

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.ExecPath(chromePath),
	}
	allocOpts = append(allocOpts, allocatorFlags(opts)...)

	// The allocator outlives ctx: the session is released by Close, not by the caller's context.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// Running no actions forces the browser process to start. The first Run must use
	// the tab context itself: a derived context would own the process lifetime.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	return &Session{
		ctx:         tabCtx,
		cancel:      tabCancel,
		allocCancel: allocCancel,
		logger:      b.logger,
	}, nil
}

// allocatorFlags translates command-line switches into allocator flags.
// "--headless=new" becomes Flag("headless", "new"), "--no-sandbox" becomes Flag("no-sandbox", true).
// A headless session always gets a headless switch even if none was passed.
func allocatorFlags(opts ports.SessionOptions) []chromedp.ExecAllocatorOption {
	var flags []chromedp.ExecAllocatorOption
	hasHeadless := false
	for _, arg := range opts.Args {
		name, value, ok := parseSwitch(arg)
		if !ok {
			continue
		}
		if name == "headless" {
			hasHeadless = true
		}
		flags = append(flags, chromedp.Flag(name, value))
	}
	if opts.Headless && !hasHeadless {
		flags = append(flags, chromedp.Flag("headless", "new"))
	}
	return flags
}

// parseSwitch splits "--name=value" into its parts. Switches without a value map to true.
func parseSwitch(arg string) (string, interface{}, bool) {
	trimmed := strings.TrimLeft(arg, "-")
	if trimmed == "" {
		return "", nil, false
	}
	name, value, found := strings.Cut(trimmed, "=")
	if !found {
		return name, true, true
	}
	return name, value, true
}

// Session is a chromedp tab plus the Chrome process that hosts it.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	logger      ports.Logger

	closeOnce sync.Once
	closeErr  error
}

// Navigate loads the specified URL.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := runWithContext(ctx, s.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// State reads document.readyState and the current location.
func (s *Session) State(ctx context.Context) (ports.PageState, error) {
	var state ports.PageState
	err := runWithContext(ctx, s.ctx,
		chromedp.Evaluate(`document.readyState`, &state.ReadyState),
		chromedp.Location(&state.URL),
	)
	if err != nil {
		return ports.PageState{}, fmt.Errorf("read page state: %w", err)
	}
	return state, nil
}

// FindElementByName queries without waiting; readiness is the caller's concern.
func (s *Session) FindElementByName(ctx context.Context, name string) (ports.Element, error) {
	selector := fmt.Sprintf(`[name=%q]`, name)

	var nodes []*cdp.Node
	if err := runWithContext(ctx, s.ctx,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	); err != nil {
		return nil, fmt.Errorf("find element %s: %w", selector, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("find element %s: %w", selector, ports.ErrElementNotFound)
	}
	if len(nodes) > 1 {
		s.logger.Debug("%d elements match %s, using the first", len(nodes), selector)
	}

	return &Element{session: s, ids: []cdp.NodeID{nodes[0].NodeID}}, nil
}

// Screenshot captures the visible viewport as PNG.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := runWithContext(ctx, s.ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

// Close closes the tab gracefully, then stops the Chrome process.
// Subsequent calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.ctx); err != nil {
			s.closeErr = fmt.Errorf("close chrome: %w", err)
		}
		s.cancel()
		s.allocCancel()
	})
	return s.closeErr
}

// Element is a DOM node addressed by its node ID.
type Element struct {
	session *Session
	ids     []cdp.NodeID
}

// SendKeys types text into the element.
func (e *Element) SendKeys(ctx context.Context, text string) error {
	if err := runWithContext(ctx, e.session.ctx, chromedp.SendKeys(e.ids, text, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("send keys: %w", err)
	}
	return nil
}

// Submit submits the form the element belongs to.
func (e *Element) Submit(ctx context.Context) error {
	if err := runWithContext(ctx, e.session.ctx, chromedp.Submit(e.ids, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// runWithContext runs actions on the tab, aborting them when ctx is done.
// Aborting does not close the tab.
func runWithContext(ctx, tabCtx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(tabCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

// Ensure Browser implements ports.Browser
var (
	_ ports.Browser = (*Browser)(nil)
	_ ports.Session = (*Session)(nil)
	_ ports.Element = (*Element)(nil)
)
