package fetch

import (
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// LinkFilter decides which outbound links a recursive crawl may follow.
// Includes and excludes are glob patterns matched against the link's URL
// path; the same-site test compares hostnames by substring in either
// direction, so www.example.com and example.com count as one site.
type LinkFilter struct {
	includes []string
	excludes []string
}

func NewLinkFilter(includes, excludes []string) *LinkFilter {
	if len(includes) == 0 {
		includes = []string{"**"}
	}
	return &LinkFilter{
		includes: includes,
		excludes: excludes,
	}
}

// Allow reports whether a crawl rooted at baseHostname may follow link.
func (f *LinkFilter) Allow(baseHostname, link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	hostname := parsed.Hostname()
	if hostname == "" || baseHostname == "" {
		return false
	}
	if !strings.Contains(hostname, baseHostname) && !strings.Contains(baseHostname, hostname) {
		return false
	}

	path := strings.TrimPrefix(parsed.Path, "/")
	return f.shouldInclude(path) && !f.shouldExclude(path)
}

func (f *LinkFilter) shouldInclude(path string) bool {
	for _, pattern := range f.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (f *LinkFilter) shouldExclude(path string) bool {
	for _, pattern := range f.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}
