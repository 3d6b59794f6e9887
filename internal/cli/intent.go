package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	intentKeywords []string
	intentAudience string
	intentJSON     bool
)

// intentCmd represents the intent command
var intentCmd = &cobra.Command{
	Use:   "intent",
	Short: "Classify the target audience and derive a readability target",
	Long: `Intent maps keywords and an optional audience description to a target
reading-ease value for the readability dimension.

Classification is deterministic keyword matching, no oracle calls. The derived
target feeds 'aiso score --target' and the improvement commands.

Example:
  aiso intent --keywords "api,sdk,endpoint"
  aiso intent --keywords "best,easy" --audience "older adults dealing with grief"`,
	RunE: runIntent,
}

func init() {
	rootCmd.AddCommand(intentCmd)

	intentCmd.Flags().StringSliceVar(&intentKeywords, "keywords", nil, "content keywords (comma-separated)")
	intentCmd.Flags().StringVar(&intentAudience, "audience", "", "audience description")
	intentCmd.Flags().BoolVar(&intentJSON, "json", false, "emit JSON instead of text")
}

func runIntent(cmd *cobra.Command, args []string) error {
	if len(intentKeywords) == 0 && intentAudience == "" {
		return fmt.Errorf("provide --keywords and/or --audience")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ti := p.ClassifyIntent(intentKeywords, intentAudience)

	if intentJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ti)
	}

	fmt.Printf("Audience:    %s\n", ti.Label)
	fmt.Printf("Target:      %d (reading ease)\n", ti.TargetReadability)
	fmt.Printf("Confidence:  %s\n", ti.Confidence)
	fmt.Printf("Reasoning:   %s\n", ti.Reasoning)
	return nil
}
