package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avoskres/aiso/internal/model"
	"github.com/avoskres/aiso/internal/pipeline"
)

var (
	scoreJSON     string
	scoreMD       string
	scoreKeywords []string
	scoreAudience string
	scoreTarget   int
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <content-file>",
	Short: "Score a content file against the quality model",
	Long: `Score runs every signal extractor against a markdown or plain-text file
and combines the per-dimension scores into the composite quality score.

Scoring is pure and offline: no oracle calls are made. Supply --keywords and
--audience to derive an audience readability target, or --target to set one
directly.

Example:
  aiso score article.md --title "How to Compost" --json report.json
  aiso score article.md --keywords "api design" --audience "backend developers"
  aiso score landing.md --city Boulder --state Colorado --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreJSON, "json", "", "output JSON report path")
	scoreCmd.Flags().StringVar(&scoreMD, "md", "", "output Markdown report path")
	scoreCmd.Flags().StringSliceVar(&scoreKeywords, "keywords", nil, "target keywords for audience classification")
	scoreCmd.Flags().StringVar(&scoreAudience, "audience", "", "audience description for readability targeting")
	scoreCmd.Flags().IntVar(&scoreTarget, "target", 0, "explicit target reading ease (overrides --keywords/--audience)")

	addDocumentFlags(scoreCmd)
}

func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&docTitle, "title", "", "document title")
	cmd.Flags().StringVar(&docMeta, "meta", "", "meta description")
	cmd.Flags().StringVar(&docCity, "city", "", "local content: city")
	cmd.Flags().StringVar(&docState, "state", "", "local content: state")
	cmd.Flags().StringVar(&docServiceArea, "service-area", "", "local content: service area")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, nil, nil)
	if err != nil {
		return err
	}

	var opts pipeline.ScoreOptions
	var target *model.TargetIntent
	switch {
	case scoreTarget > 0:
		opts.TargetReadability = &scoreTarget
	case len(scoreKeywords) > 0 || scoreAudience != "":
		ti := p.ClassifyIntent(scoreKeywords, scoreAudience)
		target = &ti
		opts.TargetReadability = &ti.TargetReadability
	}

	composite, reports := p.Score(doc, opts)

	report := &model.ScoreReport{
		Document: doc,
		Signals:  reports,
		Score:    composite,
		Intent:   target,
	}
	if err := writeReports(report, scoreJSON, scoreMD); err != nil {
		return err
	}

	fmt.Printf("Composite score: %d/100\n", composite.Primary())
	for _, r := range reports {
		fmt.Printf("  %-12s %d\n", r.Dimension, r.Score)
	}
	if target != nil {
		fmt.Printf("Audience: %s (target reading ease %d, %s confidence)\n",
			target.Label, target.TargetReadability, target.Confidence)
	}
	return nil
}

func writeReports(report *model.ScoreReport, jsonPath, mdPath string) error {
	renderer := pipeline.NewRenderer()
	if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", jsonPath)
		}
	}
	if mdPath != "" {
		if err := renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", mdPath)
		}
	}
	return nil
}
