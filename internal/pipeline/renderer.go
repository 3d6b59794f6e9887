package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/avoskres/aiso/internal/model"
)

// Renderer writes score reports to JSON and Markdown files.
type Renderer struct{}

// NewRenderer creates a report renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.ScoreReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// RenderMarkdown writes a human-readable summary of the report.
func (r *Renderer) RenderMarkdown(report *model.ScoreReport, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0644)
}

// Markdown builds the Markdown summary text.
func (r *Renderer) Markdown(report *model.ScoreReport) string {
	var b strings.Builder

	title := report.Document.Title
	if title == "" {
		title = "Untitled document"
	}
	fmt.Fprintf(&b, "# Content Quality Report: %s\n\n", title)
	fmt.Fprintf(&b, "**Composite score: %d/100**\n\n", report.Score.Primary())

	b.WriteString("| Dimension | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| SEO | %d |\n", report.Score.SEO)
	fmt.Fprintf(&b, "| Readability | %d |\n", report.Score.Readability)
	fmt.Fprintf(&b, "| Engagement | %d |\n", report.Score.Engagement)
	fmt.Fprintf(&b, "| AEO | %d |\n", report.Score.AEO)
	if report.Score.GEO != nil {
		fmt.Fprintf(&b, "| Local (GEO) | %d |\n", *report.Score.GEO)
	}
	if report.Score.FactCheck != nil {
		fmt.Fprintf(&b, "| Fact-check | %d |\n", *report.Score.FactCheck)
	}
	b.WriteString("\n")

	if report.Intent != nil {
		fmt.Fprintf(&b, "Audience: %s (target reading ease %d, %s confidence): %s\n\n",
			report.Intent.Label, report.Intent.TargetReadability, report.Intent.Confidence, report.Intent.Reasoning)
	}

	if report.FactCheck != nil {
		fmt.Fprintf(&b, "## Fact-check\n\nConfidence %d/100 over %d claims: %d verified, %d uncertain, %d unverified.\n\n",
			report.FactCheck.Confidence, len(report.FactCheck.Claims),
			report.FactCheck.Verified, report.FactCheck.Uncertain, report.FactCheck.Unverified)
		for _, c := range report.FactCheck.Claims {
			fmt.Fprintf(&b, "- [%s, %d] %s\n", c.Status, c.Confidence, c.Text)
		}
		if len(report.FactCheck.Claims) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("## Signals\n\n")
	for _, sig := range report.Signals {
		fmt.Fprintf(&b, "### %s: %d/100\n\n", sig.Dimension, sig.Score)
		keys := make([]string, 0, len(sig.Evidence))
		for k := range sig.Evidence {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %v\n", k, sig.Evidence[k])
		}
		b.WriteString("\n")
	}

	return b.String()
}
