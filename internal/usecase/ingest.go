package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"ragnews/internal/adapter/fetch"
	"ragnews/internal/domain"
	"ragnews/internal/port"
)

// summarizePrompt and translatePrompt drive the enrichment calls attached
// to every genuine article.
const (
	summarizePrompt = "Summarize the input text below. Limit the summary to 1 paragraph. " +
		"Use an advanced reading level similar to the input text, and ensure that all " +
		"people, places, and other proper nouns and dates are included in the summary. " +
		"The summary should be in English."

	translatePrompt = "You are a professional translator working for the United Nations. " +
		"The following document is an important news article that needs to be translated " +
		"into English. Provide a professional translation."
)

// Ingestor turns URLs into stored articles. Recursion is an explicit
// worklist with a visited set owned by each AddURL call; the URL dedup
// check is what keeps link cycles finite.
type Ingestor struct {
	store           port.ArticleStore
	fetcher         port.Fetcher
	extractor       port.Extractor
	llm             port.Completer
	links           *fetch.LinkFilter
	minArticleChars int
	log             *zap.Logger
	now             func() time.Time

	// OnProgress, when set, is called after each URL is processed with the
	// number handled so far and the number still queued.
	OnProgress func(done, queued int, url string)
}

// IngestorParams collects the ingestor's dependencies.
type IngestorParams struct {
	Store           port.ArticleStore
	Fetcher         port.Fetcher
	Extractor       port.Extractor
	Completer       port.Completer
	Links           *fetch.LinkFilter
	MinArticleChars int
	Logger          *zap.Logger
}

func NewIngestor(p IngestorParams) *Ingestor {
	minChars := p.MinArticleChars
	if minChars <= 0 {
		minChars = 100
	}
	links := p.Links
	if links == nil {
		links = fetch.NewLinkFilter(nil, nil)
	}
	return &Ingestor{
		store:           p.Store,
		fetcher:         p.Fetcher,
		extractor:       p.Extractor,
		llm:             p.Completer,
		links:           links,
		minArticleChars: minChars,
		log:             p.Logger,
		now:             time.Now,
	}
}

type workItem struct {
	url   string
	depth int
}

// AddURL ingests rawURL and, when depth > 0, same-site links reachable
// within depth hops. Every processed URL yields one outcome; failures are
// recorded, logged and skipped so one bad URL never stops the batch.
// allowDupes disables the store dedup check for the seed URL only;
// discovered links always dedup.
func (in *Ingestor) AddURL(ctx context.Context, rawURL string, depth int, allowDupes bool) []domain.CrawlOutcome {
	queue := []workItem{{url: rawURL, depth: depth}}
	visited := map[string]struct{}{rawURL: {}}
	seed := true

	var outcomes []domain.CrawlOutcome
	for len(queue) > 0 {
		if ctx.Err() != nil {
			break
		}

		item := queue[0]
		queue = queue[1:]

		skipDedup := seed && allowDupes
		seed = false

		outcome, links := in.processURL(ctx, item.url, skipDedup)
		outcomes = append(outcomes, outcome)

		switch outcome.Status {
		case domain.CrawlFailed:
			in.log.Error("ingest failed, skipping url",
				zap.String("url", item.url),
				zap.Error(outcome.Err))
		case domain.CrawlDuplicate:
			in.log.Debug("duplicate detected, skipping", zap.String("url", item.url))
		default:
			in.log.Info("ingested url",
				zap.String("url", item.url),
				zap.String("status", outcome.Status.String()))
		}

		if item.depth > 0 && outcome.Status == domain.CrawlStored {
			hostname := hostnameOf(outcome.URL)
			for _, link := range links {
				if _, dup := visited[link]; dup {
					continue
				}
				if !in.links.Allow(hostname, link) {
					continue
				}
				visited[link] = struct{}{}
				queue = append(queue, workItem{url: link, depth: item.depth - 1})
			}
		}

		if in.OnProgress != nil {
			in.OnProgress(len(outcomes), len(queue), item.url)
		}
	}

	return outcomes
}

// processURL handles a single URL and returns its outcome plus any
// outbound links for the caller to enqueue.
func (in *Ingestor) processURL(ctx context.Context, rawURL string, skipDedup bool) (domain.CrawlOutcome, []string) {
	if !skipDedup {
		exists, err := in.store.HasURL(rawURL)
		if err != nil {
			return domain.CrawlOutcome{URL: rawURL, Status: domain.CrawlFailed, Err: err}, nil
		}
		if exists {
			return domain.CrawlOutcome{URL: rawURL, Status: domain.CrawlDuplicate}, nil
		}
	}

	fetched, err := in.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return domain.CrawlOutcome{URL: rawURL, Status: domain.CrawlFailed, Err: err}, nil
	}

	page, err := in.extractor.Extract(fetched.Body, fetched.FinalURL)
	if err != nil {
		return domain.CrawlOutcome{URL: fetched.FinalURL, Status: domain.CrawlFailed, Err: err}, nil
	}

	article := domain.Article{
		Hostname:  hostnameOf(fetched.FinalURL),
		URL:       fetched.FinalURL,
		CrawledAt: in.now(),
	}

	if !page.IsArticle || len(page.Body) < in.minArticleChars {
		// Placeholder record: stored so the dedup check remembers the URL,
		// but excluded from counts and search.
		if err := in.store.PutArticle(article); err != nil {
			return domain.CrawlOutcome{URL: article.URL, Status: domain.CrawlFailed, Err: err}, nil
		}
		return domain.CrawlOutcome{URL: article.URL, Status: domain.CrawlRejected}, nil
	}

	article.Title = &page.Title
	article.Body = &page.Body
	article.Language = page.Language
	article.PublishedAt = page.PublishedAt

	if err := in.enrich(ctx, &article); err != nil {
		return domain.CrawlOutcome{URL: article.URL, Status: domain.CrawlFailed, Err: err}, nil
	}

	if err := in.store.PutArticle(article); err != nil {
		return domain.CrawlOutcome{URL: article.URL, Status: domain.CrawlFailed, Err: err}, nil
	}

	return domain.CrawlOutcome{URL: article.URL, Status: domain.CrawlStored}, page.Links
}

// enrich attaches the English translation (for non-English sources) and
// the one-paragraph English summary.
func (in *Ingestor) enrich(ctx context.Context, article *domain.Article) error {
	if article.Language != "" && !strings.HasPrefix(article.Language, "en") {
		translation, err := in.llm.Complete(ctx, port.CompletionRequest{
			System: translatePrompt,
			User:   *article.Body,
		})
		if err != nil {
			return fmt.Errorf("translate %s: %w", article.URL, err)
		}
		article.Translation = &translation
	}

	summary, err := in.llm.Complete(ctx, port.CompletionRequest{
		System: summarizePrompt,
		User:   *article.Body,
	})
	if err != nil {
		return fmt.Errorf("summarize %s: %w", article.URL, err)
	}
	article.Summary = &summary

	return nil
}

func hostnameOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}
