package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/avoskres/aiso/internal/model"
)

var (
	factcheckJSON    string
	factcheckMD      string
	factcheckTimeout time.Duration
)

// factcheckCmd represents the factcheck command
var factcheckCmd = &cobra.Command{
	Use:   "factcheck <content-file>",
	Short: "Verify the document's factual claims against web evidence",
	Long: `Factcheck extracts independently checkable claims from the document,
gathers web evidence for each one, and asks the generation oracle to classify
every claim as verified, uncertain, or unverified.

A document with no checkable claims gets confidence 100. Any oracle failure
fails the whole check closed with confidence 0.

Requires a generation oracle (OPENAI_API_KEY) and a search oracle
(search.base_url in the config).

Example:
  aiso factcheck article.md --json claims.json`,
	Args: cobra.ExactArgs(1),
	RunE: runFactcheck,
}

func init() {
	rootCmd.AddCommand(factcheckCmd)

	factcheckCmd.Flags().StringVar(&factcheckJSON, "json", "", "output JSON report path")
	factcheckCmd.Flags().StringVar(&factcheckMD, "md", "", "output Markdown report path")
	factcheckCmd.Flags().DurationVar(&factcheckTimeout, "timeout", 5*time.Minute, "overall fact-check timeout")

	addDocumentFlags(factcheckCmd)
}

func runFactcheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), factcheckTimeout)
	defer cancel()

	result, err := p.VerifyClaims(ctx, doc)
	if err != nil {
		return fmt.Errorf("fact-check failed: %w", err)
	}

	fmt.Printf("Fact-check confidence: %d/100 (%d claims: %d verified, %d uncertain, %d unverified)\n",
		result.Confidence, len(result.Claims), result.Verified, result.Uncertain, result.Unverified)
	for _, c := range result.Claims {
		fmt.Printf("  [%s %d] %s\n", c.Status, c.Confidence, c.Text)
	}

	report := &model.ScoreReport{Document: doc, FactCheck: result}
	return writeReports(report, factcheckJSON, factcheckMD)
}
