package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/oddlot/internal/extract"
	"github.com/wonny/oddlot/internal/qualify"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract offer terms from a local filing",
	Long: `Runs the offer extractor on a filing saved to disk ("-" reads stdin)
and prints the price range, odd-lot provision and trading symbol it finds.
No network access and no configuration needed.

Example:
  go run ./cmd/oddlot extract ./0001193125-24-012345.txt
  curl -s -A "Jane Doe jane@example.com" <url> | go run ./cmd/oddlot extract -`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read filing: %w", err)
	}

	w := cmd.OutOrStdout()
	terms, ok := extract.NewRegexExtractor().Extract(string(raw))
	if !ok {
		PrintWarning(w, "No price range found; this filing would be skipped")
		return nil
	}

	PrintTerms(w, terms, qualify.Eligible(terms))
	return nil
}
