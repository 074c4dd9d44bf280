package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/adapter/cache"
	"ragnews/internal/adapter/llm"
	"ragnews/internal/adapter/retriever"
	"ragnews/internal/usecase"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Start an interactive loop. Each question is answered from the stored
articles; a failed question prints the error and the loop continues.
Exit with Ctrl-D or by typing "exit".`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	completer, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	searcher := cache.NewCachedSearcher(
		retriever.NewTimeBiasedSearcher(st, analyzer.NewTokenizer(), log),
		cache.NewSearchCache(100, 5*time.Minute),
	)
	answerer := usecase.NewAnswerer(completer, searcher, cfg.Search.Limit, cfg.Search.TimeBiasAlpha, log)

	count, err := st.CountArticles()
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}
	fmt.Printf("%d articles indexed. Model: %s\n", count, completer.ModelName())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("ragnews> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		answer, err := answerer.Answer(cmd.Context(), query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(answer)
		fmt.Println()
	}

	return scanner.Err()
}
