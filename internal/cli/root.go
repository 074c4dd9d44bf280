package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ragnews/config"
	"ragnews/internal/adapter/analyzer"
	"ragnews/internal/adapter/memstore"
	"ragnews/internal/adapter/store"
	"ragnews/internal/logging"
	"ragnews/internal/port"
)

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ragnews",
	Short: "Retrieval-augmented question answering over crawled news articles",
	Long: `ragnews crawls news sites into a local article database and answers
questions grounded in the stored articles, preferring recent coverage.

Example usage:
  ragnews crawl https://example.com/news   # Ingest a site
  ragnews search -q "election results"     # Retrieve without generation
  ragnews chat                             # Interactive question loop`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; explicit environment still applies.
		_ = godotenv.Load()

		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(".")
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if dbPath != "" {
			cfg.Store.Path = dbPath
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		log, err = logging.New(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ragnews.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "article database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "", "log level: debug, info, warn, error")
}

// openStore opens the configured article store. An empty path selects the
// in-memory store, which lives only for the duration of the process.
func openStore() (port.ArticleStore, error) {
	tokenizer := analyzer.NewTokenizer()
	if cfg.Store.Path == "" {
		return memstore.NewMemoryStore(tokenizer), nil
	}

	st, err := store.NewBoltStore(cfg.Store.Path, tokenizer)
	if err != nil {
		return nil, fmt.Errorf("failed to open article store: %w", err)
	}
	return st, nil
}
