package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"ragnews/internal/adapter/extract"
	"ragnews/internal/adapter/fetch"
	"ragnews/internal/adapter/llm"
	"ragnews/internal/domain"
	"ragnews/internal/usecase"
)

var (
	crawlDepth      int
	crawlAllowDupes bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [url]",
	Short: "Ingest articles starting from a URL",
	Long: `Fetch a URL, store it if it is an article, and follow its same-site
links up to the configured depth. Already-stored URLs are skipped.

Examples:
  ragnews crawl https://example.com/news
  ragnews crawl example.com/story --depth 2
  ragnews crawl example.com/story --allow-dupes   # re-ingest the seed URL`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	crawlCmd.Flags().IntVar(&crawlDepth, "depth", -1, "link-following depth (default from config)")
	crawlCmd.Flags().BoolVar(&crawlAllowDupes, "allow-dupes", false, "re-ingest the seed URL even if already stored")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	completer, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	fetcher := fetch.NewClient(
		time.Duration(cfg.Crawl.TimeoutSecs)*time.Second,
		cfg.Crawl.UserAgent,
		cfg.Crawl.MaxBodyBytes,
	)

	ingestor := usecase.NewIngestor(usecase.IngestorParams{
		Store:           st,
		Fetcher:         fetcher,
		Extractor:       extract.NewPageExtractor(),
		Completer:       completer,
		Links:           fetch.NewLinkFilter(cfg.Crawl.LinkIncludes, cfg.Crawl.LinkExcludes),
		MinArticleChars: cfg.Crawl.MinArticleChars,
		Logger:          log,
	})

	depth := cfg.Crawl.Depth
	if crawlDepth >= 0 {
		depth = crawlDepth
	}

	// Spinner rather than a bar: the queue grows as links are discovered,
	// so there is no stable total up front.
	bar := progressbar.NewOptions(-1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Crawling[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
	ingestor.OnProgress = func(done, queued int, url string) {
		bar.Add(1)
		bar.Describe(fmt.Sprintf("[cyan]Crawling[reset] %d done, %d queued", done, queued))
	}

	outcomes := ingestor.AddURL(cmd.Context(), args[0], depth, crawlAllowDupes)
	bar.Finish()

	var stored, rejected, duplicate, failed int
	for _, o := range outcomes {
		switch o.Status {
		case domain.CrawlStored:
			stored++
		case domain.CrawlRejected:
			rejected++
		case domain.CrawlDuplicate:
			duplicate++
		case domain.CrawlFailed:
			failed++
		}
	}

	fmt.Printf("\nCrawl complete:\n")
	fmt.Printf("  Stored:     %d\n", stored)
	fmt.Printf("  Rejected:   %d (not articles)\n", rejected)
	fmt.Printf("  Duplicates: %d\n", duplicate)
	fmt.Printf("  Failed:     %d\n", failed)

	if failed > 0 {
		fmt.Printf("\nFailures:\n")
		for _, o := range outcomes {
			if o.Status == domain.CrawlFailed {
				fmt.Printf("  - %s: %v\n", o.URL, o.Err)
			}
		}
	}

	return nil
}
