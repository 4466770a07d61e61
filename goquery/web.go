// Package goquery answers general questions from web search results.
package goquery

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/marketway"
)

// DefaultSearchURL is the DuckDuckGo endpoint that serves results without
// JavaScript.
const DefaultSearchURL = "https://html.duckduckgo.com/html/"

// DefaultMaxSnippets is how many result snippets make up an answer.
const DefaultMaxSnippets = 2

// Result is one organic search result.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Ensure WebAnswerer implements marketway.Answerer at compile time.
var _ marketway.Answerer = (*WebAnswerer)(nil)

// WebAnswerer answers questions with snippets from a web search.
type WebAnswerer struct {
	fetcher marketway.Fetcher

	// SearchURL receives the question in its q parameter.
	SearchURL string

	// MaxSnippets caps how many snippets are joined into the answer.
	MaxSnippets int

	// Delays between fetch retries. Nil disables retrying.
	Delays []time.Duration
}

// NewWebAnswerer creates a WebAnswerer using DefaultSearchURL.
func NewWebAnswerer(fetcher marketway.Fetcher) *WebAnswerer {
	return &WebAnswerer{
		fetcher:     fetcher,
		SearchURL:   DefaultSearchURL,
		MaxSnippets: DefaultMaxSnippets,
		Delays:      DefaultRetryDelays(),
	}
}

// Answer searches the web for question and summarizes the top results.
// Returns EUNAVAILABLE when the search fails or finds nothing.
func (a *WebAnswerer) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", marketway.Errorf(marketway.EINVALID, "question required")
	}

	searchURL, err := BuildSearchURL(a.SearchURL, question)
	if err != nil {
		return "", err
	}

	html, err := fetchWithRetry(ctx, searchURL, a.fetcher.Fetch, a.Delays)
	if err != nil {
		return "", marketway.Errorf(marketway.EUNAVAILABLE, "web search failed: %v", err)
	}

	results, err := ParseResults(html)
	if err != nil {
		return "", err
	}

	answer := Summarize(results, a.MaxSnippets)
	if answer == "" {
		return "", marketway.Errorf(marketway.EUNAVAILABLE, "no web results for %q", question)
	}
	return answer, nil
}

// BuildSearchURL returns base with question set as the q parameter.
func BuildSearchURL(base, question string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", marketway.Errorf(marketway.EINVALID, "invalid search URL: %v", err)
	}
	q := u.Query()
	q.Set("q", question)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseResults extracts organic results from a DuckDuckGo HTML page in
// document order. Ads and results without a snippet are skipped.
func ParseResults(html string) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "failed to parse search results: %v", err)
	}

	var results []Result
	doc.Find(".result").Each(func(_ int, sel *goquery.Selection) {
		if sel.HasClass("result--ad") {
			return
		}

		snippet := collapse(sel.Find(".result__snippet").First().Text())
		if snippet == "" {
			return
		}

		title := sel.Find(".result__a").First()
		href, _ := title.Attr("href")
		results = append(results, Result{
			Title:   collapse(title.Text()),
			URL:     resultURL(href),
			Snippet: snippet,
		})
	})
	return results, nil
}

// Summarize joins up to limit snippets into a single answer.
func Summarize(results []Result, limit int) string {
	if limit <= 0 {
		limit = DefaultMaxSnippets
	}

	var parts []string
	for _, r := range results {
		if len(parts) == limit {
			break
		}
		s := r.Snippet
		if !strings.HasSuffix(s, ".") {
			s += "."
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// resultURL unwraps DuckDuckGo redirect links to the target URL.
func resultURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		u.Scheme = "https"
	}
	return u.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
