package goquery_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/goquery"
	"github.com/fwojciec/marketway/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result results_links result--ad">
  <a class="result__a" href="https://ads.example.com">Buy now</a>
  <a class="result__snippet">Sponsored snippet.</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FBamenda&amp;rut=x">Bamenda - Wikipedia</a></h2>
  <a class="result__snippet">Bamenda is a city in   northwestern Cameroon</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://example.com/no-snippet">No snippet</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://example.com/market">Market guide</a>
  <a class="result__snippet">The main market opens at dawn.</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://example.com/third">Third</a>
  <a class="result__snippet">Third snippet.</a>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	t.Parallel()

	t.Run("extracts organic results in order", func(t *testing.T) {
		t.Parallel()

		results, err := goquery.ParseResults(resultsPage)
		require.NoError(t, err)

		require.Len(t, results, 3)
		assert.Equal(t, "Bamenda - Wikipedia", results[0].Title)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Bamenda", results[0].URL)
		assert.Equal(t, "Bamenda is a city in northwestern Cameroon", results[0].Snippet)
		assert.Equal(t, "https://example.com/market", results[1].URL)
	})

	t.Run("returns nothing for page without results", func(t *testing.T) {
		t.Parallel()

		results, err := goquery.ParseResults("<html><body>No results.</body></html>")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	results := []goquery.Result{{Snippet: "One"}, {Snippet: "Two."}, {Snippet: "Three"}}

	assert.Equal(t, "One. Two.", goquery.Summarize(results, 2))
	assert.Equal(t, "One.", goquery.Summarize(results, 1))
	assert.Empty(t, goquery.Summarize(nil, 2))
}

func TestBuildSearchURL(t *testing.T) {
	t.Parallel()

	got, err := goquery.BuildSearchURL("https://html.duckduckgo.com/html/", "who built the market?")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "html.duckduckgo.com", u.Host)
	assert.Equal(t, "who built the market?", u.Query().Get("q"))
}

func TestWebAnswerer_Answer(t *testing.T) {
	t.Parallel()

	t.Run("summarizes top snippets", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, u string) (string, error) {
				fetched = u
				return resultsPage, nil
			},
		}

		answerer := goquery.NewWebAnswerer(fetcher)
		answer, err := answerer.Answer(context.Background(), "where is Bamenda")
		require.NoError(t, err)

		assert.Equal(t, "Bamenda is a city in northwestern Cameroon. The main market opens at dawn.", answer)
		assert.Contains(t, fetched, "q=where+is+Bamenda")
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				if calls < 3 {
					return "", errors.New("connection reset")
				}
				return resultsPage, nil
			},
		}

		answerer := goquery.NewWebAnswerer(fetcher)
		answerer.Delays = []time.Duration{time.Millisecond, time.Millisecond}

		_, err := answerer.Answer(context.Background(), "bamenda")
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns EUNAVAILABLE after retries run out", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", errors.New("offline")
			},
		}

		answerer := goquery.NewWebAnswerer(fetcher)
		answerer.Delays = []time.Duration{time.Millisecond}

		_, err := answerer.Answer(context.Background(), "bamenda")
		require.Error(t, err)
		assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
		assert.Equal(t, 2, calls)
	})

	t.Run("returns EUNAVAILABLE when nothing is found", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
		}

		_, err := goquery.NewWebAnswerer(fetcher).Answer(context.Background(), "zzzz")
		assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
	})

	t.Run("rejects empty question", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewWebAnswerer(&mock.Fetcher{}).Answer(context.Background(), " ")
		assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
	})

	t.Run("stops retrying when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				cancel()
				return "", errors.New("offline")
			},
		}

		answerer := goquery.NewWebAnswerer(fetcher)
		answerer.Delays = []time.Duration{time.Hour}

		_, err := answerer.Answer(ctx, "bamenda")
		require.Error(t, err)
		assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
	})
}
