// Package rod provides a headless-browser implementation of cdpdocs.Fetcher
// for documentation sites that render their content client-side.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/cdpdocs"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultSettleDelay is how long to wait after page load for client-side
// rendering to finish.
const DefaultSettleDelay = 5 * time.Second

// DefaultFetchTimeout bounds a single rendered fetch, including browser
// startup and the settle delay.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements cdpdocs.Fetcher at compile time.
var _ cdpdocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Every Fetch launches its own browser and tears it down before returning,
// so no browser process outlives a call even when navigation fails.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	settleDelay time.Duration
	timeout     time.Duration
	bin         string

	closed  atomic.Bool
	active  atomic.Int64
	lastPID atomic.Int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSettleDelay sets the delay between page load and HTML capture.
// Defaults to DefaultSettleDelay (5s) if not specified.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// WithFetchTimeout sets the timeout for a single fetch.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBrowserPath sets the Chrome/Chromium binary to launch.
func WithBrowserPath(bin string) Option {
	return func(f *Fetcher) {
		f.bin = bin
	}
}

// NewFetcher creates a new Fetcher. No browser is started until Fetch is called.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		settleDelay: DefaultSettleDelay,
		timeout:     DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch launches a browser, navigates to the URL, waits for the page to
// settle and returns the rendered HTML. The browser is always shut down.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", cdpdocs.Errorf(cdpdocs.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	s, err := launchSession(f.bin)
	if err != nil {
		return "", err
	}
	f.active.Add(1)
	f.lastPID.Store(int64(s.pid()))
	defer func() {
		_ = s.close()
		f.active.Add(-1)
	}()

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(f.settleDelay):
	}

	return page.HTML()
}

// Active returns the number of browser sessions currently running.
func (f *Fetcher) Active() int {
	return int(f.active.Load())
}

// LastLauncherPID returns the process ID of the most recently launched browser.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LastLauncherPID() int {
	return int(f.lastPID.Load())
}

// Close marks the Fetcher as closed. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return nil
}
