package domain

import "errors"

// ErrMissingPublishDate marks a search candidate without a usable publish
// timestamp. The searcher recovers by treating the article as maximally
// stale; the error never aborts a query.
var ErrMissingPublishDate = errors.New("article has no publish date")
