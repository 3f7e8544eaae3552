// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/user/searchprobe/pkg/ports"
)

// Browser is a mock implementation of ports.Browser.
// By default Open succeeds and returns Session.
type Browser struct {
	OpenFunc func(ctx context.Context, opts ports.SessionOptions) (ports.Session, error)
	Session  *Session

	mu          sync.Mutex
	openCalls   int
	lastOptions ports.SessionOptions
}

// NewBrowser creates a mock Browser backed by a fresh mock Session.
func NewBrowser() *Browser {
	return &Browser{Session: NewSession()}
}

func (m *Browser) Open(ctx context.Context, opts ports.SessionOptions) (ports.Session, error) {
	m.mu.Lock()
	m.openCalls++
	m.lastOptions = opts
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, opts)
	}
	return m.Session, nil
}

// OpenCalls returns how many times Open was invoked.
func (m *Browser) OpenCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openCalls
}

// LastOptions returns the options passed to the most recent Open.
func (m *Browser) LastOptions() ports.SessionOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOptions
}

// Session is a mock implementation of ports.Session.
//
// Without overrides it behaves like a page that is always loaded:
// Navigate sets the location, Submit on its Element appends "search" to it.
type Session struct {
	NavigateFunc          func(ctx context.Context, url string) error
	StateFunc             func(ctx context.Context) (ports.PageState, error)
	FindElementByNameFunc func(ctx context.Context, name string) (ports.Element, error)
	ScreenshotFunc        func(ctx context.Context) ([]byte, error)
	CloseFunc             func() error

	Element *Element

	mu         sync.Mutex
	calls      []string
	closeCalls int
	location   string
}

// NewSession creates a mock Session with a linked mock Element.
func NewSession() *Session {
	s := &Session{}
	s.Element = &Element{session: s}
	return s
}

func (m *Session) Navigate(ctx context.Context, url string) error {
	m.record("navigate")
	if m.NavigateFunc != nil {
		return m.NavigateFunc(ctx, url)
	}
	m.mu.Lock()
	m.location = url
	m.mu.Unlock()
	return nil
}

func (m *Session) State(ctx context.Context) (ports.PageState, error) {
	if m.StateFunc != nil {
		return m.StateFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return ports.PageState{ReadyState: "complete", URL: m.location}, nil
}

func (m *Session) FindElementByName(ctx context.Context, name string) (ports.Element, error) {
	m.record("find:" + name)
	if m.FindElementByNameFunc != nil {
		return m.FindElementByNameFunc(ctx, name)
	}
	return m.Element, nil
}

func (m *Session) Screenshot(ctx context.Context) ([]byte, error) {
	m.record("screenshot")
	if m.ScreenshotFunc != nil {
		return m.ScreenshotFunc(ctx)
	}
	return []byte("png"), nil
}

func (m *Session) Close() error {
	m.record("close")
	m.mu.Lock()
	m.closeCalls++
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// CloseCalls returns how many times Close was invoked.
func (m *Session) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

// Calls returns the recorded session and element calls in order.
// State probes are not recorded.
func (m *Session) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Session) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Element is a mock implementation of ports.Element.
type Element struct {
	SendKeysFunc func(ctx context.Context, text string) error
	SubmitFunc   func(ctx context.Context) error

	session *Session
}

func (m *Element) SendKeys(ctx context.Context, text string) error {
	m.session.record("sendkeys:" + text)
	if m.SendKeysFunc != nil {
		return m.SendKeysFunc(ctx, text)
	}
	return nil
}

func (m *Element) Submit(ctx context.Context) error {
	m.session.record("submit")
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx)
	}
	m.session.mu.Lock()
	m.session.location += "search"
	m.session.mu.Unlock()
	return nil
}

var (
	_ ports.Browser = (*Browser)(nil)
	_ ports.Session = (*Session)(nil)
	_ ports.Element = (*Element)(nil)
)
