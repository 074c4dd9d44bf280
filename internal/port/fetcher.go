package port

import "context"

// FetchResult carries a fetched page body and the URL it was finally
// retrieved from (after any scheme-prefix retry).
type FetchResult struct {
	Body     []byte
	FinalURL string
}

// Fetcher retrieves raw page content over HTTP.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (FetchResult, error)
}
