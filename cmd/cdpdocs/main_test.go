package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/cdpdocs/cmd/cdpdocs"
	"github.com/fwojciec/cdpdocs/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticFetcher serves the same documentation page for every URL.
func staticFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return page(docsText), nil
		},
	}
}

func TestMain_Run_Sources(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - name: rudder\n    url: https://www.rudderstack.com/docs/\n"), 0o644))

	corpus := filepath.Join(t.TempDir(), "docs.json")
	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"--sources", path, "--corpus", corpus, "sources"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "rudder")
	assert.NotContains(t, stdout.String(), "segment")
}

func TestMain_Run_CrawlThenAsk(t *testing.T) {
	t.Parallel()

	for _, store := range []string{"json", "sqlite"} {
		t.Run(store, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "corpus."+store)
			flags := []string{"--store", store, "--corpus", path}

			m := main.NewMain()
			m.Direct = staticFetcher()
			m.Rendered = staticFetcher()
			stdout := &bytes.Buffer{}
			err := m.Run(context.Background(), append(flags, "crawl"), stdout, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Saved corpus for 4 sources")

			stdout.Reset()
			err = main.NewMain().Run(context.Background(),
				append(flags, "ask", "How do I configure a source connector?"), stdout, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "📌 ")
			assert.Contains(t, stdout.String(), "configure the source connector")

			stdout.Reset()
			err = main.NewMain().Run(context.Background(), append(flags, "sources"), stdout, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Regexp(t, `segment .*chars, crawled `, stdout.String())
		})
	}
}

func TestMain_Run_AskWithoutCorpus(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "docs.json")
	stdout := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(),
		[]string{"--corpus", path, "ask", "How do I set up Segment?"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No relevant documentation found.")
}

func TestMain_Run_GeminiRequiresKey(t *testing.T) {
	t.Parallel()

	store := memoryStore(nil)
	stderr := &bytes.Buffer{}
	m := main.NewMain()
	m.Store = store

	err := m.Run(context.Background(),
		[]string{"--embedder", "gemini", "--gemini-key", "", "index"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
}
