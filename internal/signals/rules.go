// Package signals implements the per-dimension signal extractors. Each
// extractor is a declarative rule table folded into a bounded 0-100 score,
// with every rule's measurement and awarded points exposed in the evidence
// map so a score is always explainable.
package signals

import (
	"regexp"
	"strings"

	"github.com/avoskres/aiso/internal/model"
)

// Measurement is the raw observation a rule's detector makes on a document.
type Measurement struct {
	Value    int            // Count or 0/1 presence
	Evidence map[string]any // Named observation details
}

// Rule is one named sub-check in a dimension's 100-point budget.
type Rule struct {
	ID     string
	Max    int // Point budget for this rule
	Detect func(doc model.ContentDocument) Measurement
	Points func(m Measurement) int // Bounded by Max via evaluate
}

// evaluate folds a rule table into a signal report. Scores are clamped to
// [0,100] and each rule's awarded points are recorded as "points:<id>".
func evaluate(dimension string, rules []Rule, doc model.ContentDocument) model.SignalReport {
	total := 0
	evidence := make(map[string]any)

	for _, r := range rules {
		m := r.Detect(doc)
		pts := r.Points(m)
		if pts > r.Max {
			pts = r.Max
		}
		if pts < 0 {
			pts = 0
		}
		total += pts

		for k, v := range m.Evidence {
			evidence[k] = v
		}
		evidence["points:"+r.ID] = pts
	}

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return model.SignalReport{
		Dimension: dimension,
		Score:     total,
		Evidence:  evidence,
	}
}

// tiered awards full credit at or above the strong threshold, partial credit
// at or above the weak threshold, zero otherwise. Sub-checks are never binary
// pass/fail, to avoid score cliffs.
func tiered(value, strong, weak, full, partial int) int {
	switch {
	case value >= strong:
		return full
	case value >= weak:
		return partial
	default:
		return 0
	}
}

// rangeTiered awards full credit inside [lo,hi], partial credit inside the
// band widened by slack on both sides, zero otherwise.
func rangeTiered(value, lo, hi, slack, full, partial int) int {
	switch {
	case value >= lo && value <= hi:
		return full
	case value >= lo-slack && value <= hi+slack:
		return partial
	default:
		return 0
	}
}

// Shared text observations. All pure; the document is never modified.

var (
	headingRe     = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	linkRe        = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)
	imageRe       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	orderedItemRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)
	bulletItemRe  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberRe      = regexp.MustCompile(`\b\d[\d,.]*\s*(%|percent|million|billion|thousand|years?|hours?|minutes?|days?|x\b)`)
	phoneRe       = regexp.MustCompile(`\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}`)
	questionRe    = regexp.MustCompile(`[^.!?\n]*\?`)
)

func headingCounts(text string) map[int]int {
	counts := make(map[int]int)
	for _, m := range headingRe.FindAllStringSubmatch(text, -1) {
		counts[len(m[1])]++
	}
	return counts
}

func headings(text string) []string {
	var out []string
	for _, m := range headingRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[2])
	}
	return out
}

func countLinks(text string) int {
	// Images are links syntactically; count them separately.
	return len(linkRe.FindAllString(text, -1)) - countImages(text)
}

func countImages(text string) int {
	return len(imageRe.FindAllString(text, -1))
}

func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstParagraph(text string) string {
	for _, p := range paragraphs(text) {
		// Skip headings to reach the opening prose.
		if strings.HasPrefix(p, "#") {
			continue
		}
		return p
	}
	return ""
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func containsAny(text string, terms []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, t := range terms {
		count += strings.Count(lower, t)
	}
	return count
}
