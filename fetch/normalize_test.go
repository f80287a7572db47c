package fetch_test

import (
	"testing"

	"github.com/fwojciec/pmcfetch"
	"github.com/fwojciec/pmcfetch/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("routes JATS sources to the JATS normalizer", func(t *testing.T) {
		t.Parallel()

		data := []byte(`<article><front><article-meta><title-group><article-title>A Title</article-title></title-group></article-meta></front></article>`)

		for _, source := range []pmcfetch.TextSource{pmcfetch.TextSourceEPMC, pmcfetch.TextSourceNCBI} {
			model, err := fetch.Normalize(data, source)
			require.NoError(t, err)
			require.NotNil(t, model)
			assert.Equal(t, []string{"Title"}, model.Sections())
		}
	})

	t.Run("routes BioC source to the BioC normalizer", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"documents":[{"passages":[{"infons":{"section_type":"INTRO","type":"paragraph"},"text":"Intro text."}]}]}`)

		model, err := fetch.Normalize(data, pmcfetch.TextSourceBioC)
		require.NoError(t, err)
		require.NotNil(t, model)
		assert.Equal(t, []string{"Introduction"}, model.Sections())
	})

	t.Run("no source yields nil model without error", func(t *testing.T) {
		t.Parallel()

		model, err := fetch.Normalize([]byte("anything"), pmcfetch.TextSourceNone)
		require.NoError(t, err)
		assert.Nil(t, model)
	})

	t.Run("propagates parse failures", func(t *testing.T) {
		t.Parallel()

		_, err := fetch.Normalize([]byte("not xml"), pmcfetch.TextSourceEPMC)
		require.Error(t, err)
		assert.Equal(t, pmcfetch.EPARSE, pmcfetch.ErrorCode(err))
	})
}
