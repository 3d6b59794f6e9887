package improve

import (
	"fmt"
	"strings"

	"github.com/avoskres/aiso/internal/model"
)

// PassName identifies one improvement dimension.
type PassName string

const (
	PassReadability PassName = "readability"
	PassSEO         PassName = "seo"
	PassAEO         PassName = "aeo"
	PassEngagement  PassName = "engagement"
	PassValidation  PassName = "validation"
)

// fivePassOrder is the fixed state sequence of the five-pass mode:
// Readability -> Structure/SEO -> AEO/FAQ -> Engagement -> Final Validation.
var fivePassOrder = []PassName{
	PassReadability,
	PassSEO,
	PassAEO,
	PassEngagement,
	PassValidation,
}

// SelectablePasses are the passes available to single-pass mode.
var SelectablePasses = []PassName{PassReadability, PassSEO, PassAEO, PassEngagement}

const rewriteSystem = "You are an expert content editor. Rewrite the document as instructed and return ONLY the full revised document text, nothing else."

// passInstruction builds the rewrite instruction for one pass. Each
// instruction names the one thing to improve and what must not be touched, so
// later passes do not undo earlier ones.
func passInstruction(pass PassName, doc model.ContentDocument, score model.CompositeScore, allowFAQ bool) string {
	var b strings.Builder

	switch pass {
	case PassReadability:
		fmt.Fprintf(&b, "Improve ONLY the readability of this document (current readability score: %d/100). ", score.Readability)
		b.WriteString("Shorten long sentences, replace jargon where a plain word exists, and break dense paragraphs. ")
		b.WriteString("Do NOT touch: the title, headings, links, images, factual statements, or the overall structure.")

	case PassSEO:
		fmt.Fprintf(&b, "Improve ONLY the structure and SEO of this document (current SEO score: %d/100). ", score.SEO)
		b.WriteString("Ensure a single H1, add descriptive H2/H3 headings where sections lack them, and keep heading hierarchy consistent. ")
		b.WriteString("Do NOT touch: the sentence-level wording already present, factual statements, or the reading level.")

	case PassAEO:
		fmt.Fprintf(&b, "Improve ONLY the answer-engine friendliness of this document (current AEO score: %d/100). ", score.AEO)
		b.WriteString("Open with a direct answer, add explicit definitions for key terms, and format any how-to content as numbered steps. ")
		if allowFAQ {
			b.WriteString("Add a short FAQ section with 3-4 question headings if one is missing. ")
		} else {
			b.WriteString("Do NOT add an FAQ section. ")
		}
		b.WriteString("Do NOT touch: the heading hierarchy, the reading level, or factual statements.")

	case PassEngagement:
		fmt.Fprintf(&b, "Improve ONLY the engagement of this document (current engagement score: %d/100). ", score.Engagement)
		b.WriteString("Strengthen the opening hook, address the reader directly, and add a clear call to action near the end. ")
		b.WriteString("Do NOT touch: headings, the FAQ section if present, definitions, numbered steps, or factual statements.")

	case PassValidation:
		b.WriteString("Do a final consistency check of this document. Fix only grammar, typos, and broken markdown formatting. ")
		b.WriteString("Do NOT change: wording, structure, headings, lists, FAQ sections, or any factual statement.")
	}

	if doc.IsLocal() && doc.Local != nil {
		fmt.Fprintf(&b, " The content targets readers in %s; keep every local reference intact.", doc.Local.City)
	}

	return b.String()
}

// iterativeInstruction builds the full-context rewrite instruction for the
// bounded iterative mode.
func iterativeInstruction(auditReport string, score model.CompositeScore, target int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Revise this document to raise its overall quality score above %d/100.\n\n", target)
	fmt.Fprintf(&b, "Current scores: composite %d, seo %d, readability %d, engagement %d, aeo %d",
		score.Primary(), score.SEO, score.Readability, score.Engagement, score.AEO)
	if score.GEO != nil {
		fmt.Fprintf(&b, ", local %d", *score.GEO)
	}
	b.WriteString("\n\n")
	if auditReport != "" {
		b.WriteString("Audit findings to address:\n")
		b.WriteString(auditReport)
		b.WriteString("\n\n")
	}
	b.WriteString("Keep every factual statement unchanged. Return only the full revised document.")
	return b.String()
}
