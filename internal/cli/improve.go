package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	improvePass       string
	improveIterative  bool
	improveIterations int
	improveAudit      string
	improveOut        string
	improveTimeout    time.Duration
	improveKeywords   []string
	improveAudience   string
)

// improveCmd represents the improve command
var improveCmd = &cobra.Command{
	Use:   "improve <content-file>",
	Short: "Run oracle-driven improvement passes over a content file",
	Long: `Improve rewrites the document through the generation oracle and re-scores
after every pass.

Default mode runs the fixed five-pass sequence (readability, structure/SEO,
AEO/FAQ, engagement, final validation) and applies the quality gates: a final
composite below the acceptance floor is rejected rather than returned as
success.

--pass runs exactly one targeted pass instead. --iterative runs bounded
full-context rewrite cycles and keeps the best-scoring variant seen.

Example:
  aiso improve article.md -o improved.md
  aiso improve article.md --pass readability -o improved.md
  aiso improve article.md --iterative --iterations 5 --audit audit.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runImprove,
}

func init() {
	rootCmd.AddCommand(improveCmd)

	improveCmd.Flags().StringVar(&improvePass, "pass", "", "run a single pass (readability, seo, aeo, engagement)")
	improveCmd.Flags().BoolVar(&improveIterative, "iterative", false, "use the bounded iterative controller")
	improveCmd.Flags().IntVar(&improveIterations, "iterations", 0, "max iterations for --iterative (default from config)")
	improveCmd.Flags().StringVar(&improveAudit, "audit", "", "audit report file passed to the oracle in --iterative mode")
	improveCmd.Flags().StringVarP(&improveOut, "out", "o", "", "write the improved document to this path")
	improveCmd.Flags().DurationVar(&improveTimeout, "timeout", 15*time.Minute, "overall improvement timeout")
	improveCmd.Flags().StringSliceVar(&improveKeywords, "keywords", nil, "target keywords for audience classification")
	improveCmd.Flags().StringVar(&improveAudience, "audience", "", "audience description for readability targeting")

	addDocumentFlags(improveCmd)
}

func runImprove(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), improveTimeout)
	defer cancel()

	var target *int
	if len(improveKeywords) > 0 || improveAudience != "" {
		ti := p.ClassifyIntent(improveKeywords, improveAudience)
		target = &ti.TargetReadability
		if verbose {
			fmt.Fprintf(os.Stderr, "Audience: %s (target reading ease %d)\n", ti.Label, ti.TargetReadability)
		}
	}

	switch {
	case improveIterative:
		audit := ""
		if improveAudit != "" {
			data, err := os.ReadFile(improveAudit)
			if err != nil {
				return fmt.Errorf("read audit report: %w", err)
			}
			audit = string(data)
		}

		result, err := p.ImproveIterative(ctx, doc, audit, improveIterations, target)
		if err != nil {
			return err
		}
		fmt.Printf("Best score %d/100 after %d iterations (target met: %v)\n",
			result.BestScore.Primary(), result.Iterations, result.TargetMet)
		return writeImproved(result.BestDocument.Text)

	case improvePass != "":
		result, err := p.ImproveSinglePass(ctx, doc, improvePass, target)
		if err != nil {
			return err
		}
		fmt.Printf("Pass %s: %d -> %d (%+d)\n",
			result.Pass.Name, result.Pass.ScoreBefore, result.Pass.ScoreAfter, result.Pass.Improvement)
		return writeImproved(result.Document.Text)

	default:
		result, err := p.ImproveFivePass(ctx, doc, target)
		if err != nil {
			return err
		}

		for _, pass := range result.Passes {
			marker := ""
			if pass.Skipped {
				marker = " (skipped)"
			}
			fmt.Printf("  pass %d %-12s %d -> %d%s\n", pass.Index+1, pass.Name, pass.ScoreBefore, pass.ScoreAfter, marker)
			if verbose && pass.Note != "" {
				fmt.Fprintf(os.Stderr, "    %s\n", pass.Note)
			}
		}

		if result.Rejected {
			fmt.Printf("REJECTED: %s\n", result.Reason)
			return writeImproved(result.FinalDocument.Text)
		}

		fmt.Printf("Final score: %d/100\n", result.FinalScore.Primary())
		for _, w := range result.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		return writeImproved(result.FinalDocument.Text)
	}
}

func writeImproved(text string) error {
	if improveOut == "" {
		return nil
	}
	if err := os.WriteFile(improveOut, []byte(text), 0644); err != nil {
		return fmt.Errorf("write improved document: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote improved document: %s\n", improveOut)
	}
	return nil
}
