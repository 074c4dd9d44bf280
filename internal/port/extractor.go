package port

import "ragnews/internal/domain"

// Extractor turns a raw page fetch into article metadata.
type Extractor interface {
	Extract(body []byte, pageURL string) (*domain.Page, error)
}
