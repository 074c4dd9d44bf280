package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/adapter/retriever"
)

var (
	searchQuery string
	searchLimit int
	searchAlpha float64
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Retrieve stored articles without generation",
	Long: `Rank stored articles against a query, biasing toward recent coverage.
No language model is involved; this inspects what retrieval would feed it.

Examples:
  ragnews search -q "election results"
  ragnews search -q "election results" --limit 5 --alpha 0.1 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "number of results (default from config)")
	searchCmd.Flags().Float64Var(&searchAlpha, "alpha", 0, "time bias in days; smaller favors recency (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	searcher := retriever.NewTimeBiasedSearcher(st, analyzer.NewTokenizer(), log)

	limit := cfg.Search.Limit
	if searchLimit > 0 {
		limit = searchLimit
	}
	alpha := cfg.Search.TimeBiasAlpha
	if searchAlpha > 0 {
		alpha = searchAlpha
	}

	results, err := searcher.Search(searchQuery, limit, alpha)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(results), searchQuery)
	for i, r := range results {
		fmt.Printf("--- [%d] %s (score: %.4f) ---\n", i+1, r.URL, r.Score)
		fmt.Println(r.Title)
		if r.Summary != "" {
			fmt.Println(r.Summary)
		}
		fmt.Println()
	}

	return nil
}
