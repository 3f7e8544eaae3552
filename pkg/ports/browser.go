// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"errors"
)

// ErrElementNotFound is returned by Session.FindElementByName when the
// locator matches no element on the current page.
var ErrElementNotFound = errors.New("element not found")

// Browser abstracts a provider of controllable browser sessions.
type Browser interface {
	// Open launches a browser process and returns a handle to it.
	// Every successfully opened session must be closed exactly once.
	Open(ctx context.Context, opts SessionOptions) (Session, error)
}

// Session is a live browser connection owned by a single caller.
type Session interface {
	// Navigate loads the specified URL.
	Navigate(ctx context.Context, url string) error

	// State reports the document ready state and current location.
	State(ctx context.Context) (PageState, error)

	// FindElementByName returns the first element whose name attribute
	// equals name, in document order. It returns ErrElementNotFound when
	// nothing matches.
	FindElementByName(ctx context.Context, name string) (Element, error)

	// Screenshot captures the visible viewport as PNG.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close shuts down the browser.
	Close() error
}

// Element is a handle to a DOM element inside a Session.
type Element interface {
	// SendKeys types text into the element.
	SendKeys(ctx context.Context, text string) error

	// Submit submits the form the element belongs to.
	Submit(ctx context.Context) error
}

// SessionOptions configures browser launch settings.
type SessionOptions struct {
	Headless   bool
	Args       []string // Command-line switches, e.g. "--no-sandbox"
	ChromePath string   // Browser executable; empty means resolve automatically
}

// PageState is a snapshot of the page lifecycle.
type PageState struct {
	ReadyState string // document.readyState: loading, interactive or complete
	URL        string
}

// Complete reports whether the document has finished loading.
func (s PageState) Complete() bool {
	return s.ReadyState == "complete"
}
