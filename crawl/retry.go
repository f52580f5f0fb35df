package crawl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/cdpdocs"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// FetchWithRetry attempts to fetch a URL with exponential backoff retry logic
// using DefaultRetryDelays.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger) cdpdocs.FetchResult {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
// An empty delays slice means a single attempt. Failures that Retryable
// rejects end the attempts early. The outcome is returned as a value; the
// caller decides whether a failure skips the page.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) cdpdocs.FetchResult {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return cdpdocs.FetchResult{URL: url, HTML: html}
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 || !Retryable(err) {
			break
		}

		if logger != nil {
			logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return cdpdocs.FetchResult{URL: url, Err: ctx.Err()}
		case <-time.After(delays[attempt]):
		}
	}

	return cdpdocs.FetchResult{URL: url, Err: lastErr}
}

// Retryable reports whether a failed fetch may succeed on a later attempt.
// Cancellation and ENOTFOUND or EINVALID application errors are final;
// timeouts, network errors and EUNAVAILABLE are not.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	switch cdpdocs.ErrorCode(err) {
	case cdpdocs.ENOTFOUND, cdpdocs.EINVALID:
		return false
	}
	return true
}
