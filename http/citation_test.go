package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/pmcfetch"
	pmchttp "github.com/fwojciec/pmcfetch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pubmedBody = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>123</PMID>
      <Article>
        <Journal>
          <Title>Journal of Things</Title>
          <JournalIssue>
            <Volume>12</Volume>
            <Issue>3</Issue>
            <PubDate><Year>2020</Year></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>A study of <i>things</i></ArticleTitle>
        <Pagination><MedlinePgn>45-67</MedlinePgn></Pagination>
        <AuthorList>
          <Author><LastName>Smith</LastName><Initials>J</Initials></Author>
          <Author><LastName>Doe</LastName><Initials>A</Initials></Author>
          <Author><CollectiveName>The Consortium</CollectiveName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
    <PubmedData>
      <ArticleIdList>
        <ArticleId IdType="pubmed">123</ArticleId>
        <ArticleId IdType="doi">10.1000/xyz</ArticleId>
      </ArticleIdList>
    </PubmedData>
  </PubmedArticle>
</PubmedArticleSet>`

func TestCitationClient_Cite(t *testing.T) {
	t.Parallel()

	t.Run("formats APA citations from PubMed record", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "pubmed", r.URL.Query().Get("db"))
			assert.Equal(t, "123", r.URL.Query().Get("id"))
			fmt.Fprint(w, pubmedBody)
		}))
		defer server.Close()

		client := pmchttp.NewCitationClient(fastOpts(server.URL)...)

		cit, err := client.Cite(context.Background(), "123")
		require.NoError(t, err)

		assert.Equal(t, "Smith, J., & Doe, A. (2020). A study of things. *Journal of Things*, 12(3), 45-67. https://doi.org/10.1000/xyz", cit.APA)
		assert.Equal(t, "(Smith & Doe, 2020)", cit.APAShort)
	})

	t.Run("empty result set maps to ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<?xml version="1.0"?><PubmedArticleSet></PubmedArticleSet>`)
		}))
		defer server.Close()

		client := pmchttp.NewCitationClient(fastOpts(server.URL)...)

		_, err := client.Cite(context.Background(), "999")
		assert.Equal(t, pmcfetch.ENOTFOUND, pmcfetch.ErrorCode(err))
	})

	t.Run("malformed XML maps to EPARSE", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<PubmedArticleSet><PubmedArticle>")
		}))
		defer server.Close()

		client := pmchttp.NewCitationClient(fastOpts(server.URL)...)

		_, err := client.Cite(context.Background(), "123")
		assert.Equal(t, pmcfetch.EPARSE, pmcfetch.ErrorCode(err))
	})
}
