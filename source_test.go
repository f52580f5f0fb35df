package cdpdocs_test

import (
	"testing"

	"github.com/fwojciec/cdpdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts direct and rendered sources", func(t *testing.T) {
		t.Parallel()

		for _, s := range cdpdocs.DefaultSources() {
			require.NoError(t, s.Validate(), s.Name)
		}
	})

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()

		s := cdpdocs.Source{URL: "https://example.com/docs", Strategy: cdpdocs.StrategyDirect}

		err := s.Validate()

		assert.Equal(t, cdpdocs.EINVALID, cdpdocs.ErrorCode(err))
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		s := cdpdocs.Source{Name: "segment", Strategy: cdpdocs.StrategyDirect}

		err := s.Validate()

		assert.Equal(t, cdpdocs.EINVALID, cdpdocs.ErrorCode(err))
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		t.Parallel()

		s := cdpdocs.Source{Name: "segment", URL: "https://example.com", Strategy: "carrier-pigeon"}

		err := s.Validate()

		assert.Equal(t, cdpdocs.EINVALID, cdpdocs.ErrorCode(err))
		assert.Contains(t, cdpdocs.ErrorMessage(err), "carrier-pigeon")
	})
}

func TestSource_PageLimit(t *testing.T) {
	t.Parallel()

	direct := cdpdocs.Source{Strategy: cdpdocs.StrategyDirect}
	rendered := cdpdocs.Source{Strategy: cdpdocs.StrategyRendered}

	assert.Equal(t, 5000, direct.PageLimit())
	assert.Equal(t, 10000, rendered.PageLimit())
}

func TestCorpus_Names_AreSorted(t *testing.T) {
	t.Parallel()

	c := cdpdocs.Corpus{"zeotap": "", "lytics": "a", "segment": "b"}

	assert.Equal(t, []string{"lytics", "segment", "zeotap"}, c.Names())
}
