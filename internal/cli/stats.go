package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show article store statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Store: %s\n", storeLabel())
	fmt.Printf("  Articles stored:  %d\n", stats.Articles)
	fmt.Printf("  Indexed:          %d (searchable)\n", stats.Indexed)
	fmt.Printf("  Placeholders:     %d (remembered non-articles)\n", stats.Articles-stats.Indexed)
	fmt.Printf("  Total tokens:     %d\n", stats.TotalTokens)
	fmt.Printf("  Avg doc length:   %.1f tokens\n", stats.AvgDocLen)
	return nil
}

func storeLabel() string {
	if cfg.Store.Path == "" {
		return "(in-memory)"
	}
	return cfg.Store.Path
}
