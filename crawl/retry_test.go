package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		res := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{time.Millisecond})

		require.True(t, res.OK())
		assert.Equal(t, "<html></html>", res.HTML)
		assert.Equal(t, "https://example.com", res.URL)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("temporary")
			}
			return "ok", nil
		}

		res := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{time.Millisecond, time.Millisecond})

		require.True(t, res.OK())
		assert.Equal(t, "ok", res.HTML)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after all attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("still down")
		}

		res := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{time.Millisecond})

		require.False(t, res.OK())
		assert.EqualError(t, res.Err, "still down")
		assert.Equal(t, 2, calls)
	})

	t.Run("makes a single attempt with no delays", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("down")
		}

		res := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, nil)

		assert.False(t, res.OK())
		assert.Equal(t, 1, calls)
	})

	t.Run("stops retrying when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(context.Context, string) (string, error) {
			cancel()
			return "", errors.New("down")
		}

		res := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, res.Err, context.Canceled)
	})
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("does not wait when the first attempt succeeds", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		res := crawl.FetchWithRetry(context.Background(), "https://segment.com/docs/", func(context.Context, string) (string, error) {
			return "<main>ok</main>", nil
		}, nil)

		require.True(t, res.OK())
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("gives up when the context is cancelled during backoff", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		res := crawl.FetchWithRetry(ctx, "https://segment.com/docs/", func(context.Context, string) (string, error) {
			cancel()
			return "", errors.New("connection reset")
		}, nil)

		assert.False(t, res.OK())
		assert.ErrorIs(t, res.Err, context.Canceled)
	})
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network error", errors.New("connection reset"), true},
		{"timeout", context.DeadlineExceeded, true},
		{"server error", cdpdocs.Errorf(cdpdocs.EUNAVAILABLE, "HTTP 503"), true},
		{"not found", cdpdocs.Errorf(cdpdocs.ENOTFOUND, "HTTP 404"), false},
		{"invalid", cdpdocs.Errorf(cdpdocs.EINVALID, "bad URL"), false},
		{"canceled", fmt.Errorf("fetch: %w", context.Canceled), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crawl.Retryable(tt.err))
		})
	}
}

func TestFetchWithRetryDelays_doesNotRetryNotFound(t *testing.T) {
	t.Parallel()

	calls := 0
	fetch := func(context.Context, string) (string, error) {
		calls++
		return "", cdpdocs.Errorf(cdpdocs.ENOTFOUND, "HTTP 404")
	}

	res := crawl.FetchWithRetryDelays(context.Background(), "https://segment.com/docs/missing", fetch, nil, []time.Duration{time.Millisecond, time.Millisecond})

	assert.False(t, res.OK())
	assert.Equal(t, cdpdocs.ENOTFOUND, cdpdocs.ErrorCode(res.Err))
	assert.Equal(t, 1, calls)
}
