package marketway

import "context"

// Fetcher retrieves the HTML of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
