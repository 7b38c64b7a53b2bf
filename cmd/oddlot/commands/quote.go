package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/oddlot/internal/external/yahoo"
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote <ticker>",
	Short: "Resolve the latest close for a ticker",
	Long: `Looks up the most recent daily close the scan would use for a ticker.

Example:
  go run ./cmd/oddlot quote ABC
  go run ./cmd/oddlot quote BRK.B`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Scan.QuoteTimeout)
	defer cancel()

	quote, err := yahoo.NewClient(cfg.Market, cfg.Scan.QuoteTimeout, log).ResolveLatestPrice(ctx, args[0])
	if err != nil {
		return fmt.Errorf("resolve quote: %w", err)
	}

	PrintQuote(cmd.OutOrStdout(), quote)
	return nil
}
