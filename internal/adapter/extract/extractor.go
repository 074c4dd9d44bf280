// Package extract turns raw HTML into article metadata: classification,
// title, body text, language, publish timestamp and outbound links.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/abadojack/whatlanggo"

	"ragnews/internal/domain"
)

// PageExtractor parses fetched HTML with goquery.
type PageExtractor struct{}

func NewPageExtractor() *PageExtractor {
	return &PageExtractor{}
}

// nonContentSelectors lists elements stripped before extracting body text.
const nonContentSelectors = "script, style, nav, header, footer, aside"

// Extract parses HTML and returns the page's article metadata. Links are
// resolved against pageURL; only http(s) links are kept.
func (e *PageExtractor) Extract(body []byte, pageURL string) (*domain.Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page := &domain.Page{
		Title:       extractTitle(doc),
		Body:        extractBodyText(doc),
		PublishedAt: extractPublishedAt(doc),
		Links:       extractLinks(doc, pageURL),
	}
	page.IsArticle = classify(doc)
	page.Language = detectLanguage(doc, page.Body)

	return page, nil
}

// classify decides whether the page is a genuine article: an explicit
// og:type of article, an <article> element, or a publish timestamp all
// count as evidence.
func classify(doc *goquery.Document) bool {
	if ogType, exists := doc.Find("meta[property='og:type']").Attr("content"); exists {
		if strings.EqualFold(strings.TrimSpace(ogType), "article") {
			return true
		}
	}
	if doc.Find("article").Length() > 0 {
		return true
	}
	return extractPublishedAt(doc) != nil
}

// extractTitle prefers <title>, falling back to og:title.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists {
		return strings.TrimSpace(ogTitle)
	}

	return ""
}

// extractBodyText prefers <article> content; falls back to <body> with
// non-content elements stripped.
func extractBodyText(doc *goquery.Document) string {
	article := doc.Find("article").First()
	if article.Length() > 0 {
		article.Find(nonContentSelectors).Remove()
		return strings.TrimSpace(article.Text())
	}

	body := doc.Find("body").First()
	if body.Length() > 0 {
		body.Find(nonContentSelectors).Remove()
		return strings.TrimSpace(body.Text())
	}

	return ""
}

// publishedAtSelectors lists meta tags that carry a publish timestamp, in
// preference order.
var publishedAtSelectors = []string{
	"meta[property='article:published_time']",
	"meta[name='article:published_time']",
	"meta[name='pubdate']",
	"meta[name='date']",
	"meta[itemprop='datePublished']",
}

func extractPublishedAt(doc *goquery.Document) *time.Time {
	for _, selector := range publishedAtSelectors {
		if value, exists := doc.Find(selector).Attr("content"); exists {
			if ts := parseTimestamp(value); ts != nil {
				return ts
			}
		}
	}

	if value, exists := doc.Find("time[datetime]").First().Attr("datetime"); exists {
		return parseTimestamp(value)
	}

	return nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts
		}
	}
	return nil
}

// detectLanguage prefers the declared <html lang> attribute and falls back
// to statistical detection over the body text.
func detectLanguage(doc *goquery.Document, bodyText string) string {
	if lang, exists := doc.Find("html").Attr("lang"); exists {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			// "en-US" -> "en"
			if idx := strings.IndexAny(lang, "-_"); idx > 0 {
				lang = lang[:idx]
			}
			return lang
		}
	}

	if strings.TrimSpace(bodyText) == "" {
		return ""
	}

	info := whatlanggo.Detect(bodyText)
	return info.Lang.Iso6391()
}

func extractLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		}
		if ref.Scheme != "http" && ref.Scheme != "https" {
			return
		}
		ref.Fragment = ""

		link := ref.String()
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links
}
