package signals

import (
	"strings"

	"github.com/avoskres/aiso/internal/model"
)

// AEO scores answer-engine signals: how easily an AI answer system can
// extract and quote the content. 100-point budget: answer-first opening 20,
// quantified statements 15, FAQ blocks 20, definitions 15, numbered steps 15,
// heading/link density 15.
func AEO(doc model.ContentDocument) model.SignalReport {
	return evaluate("aeo", aeoRules, doc)
}

var definitionTerms = []string{
	"is defined as", "refers to", "is a type of", "means", "is the process of",
	"is a term for",
}

// HasFAQSection reports whether the document carries an FAQ-formatted block.
// The improvement orchestrator uses this to enforce the FAQ gate.
func HasFAQSection(doc model.ContentDocument) bool {
	return detectFAQ(doc.Text) > 0
}

func detectFAQ(text string) int {
	count := 0
	for _, h := range headings(text) {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "faq") || strings.Contains(lower, "frequently asked") {
			count += 2
			continue
		}
		if strings.HasSuffix(strings.TrimSpace(h), "?") {
			count++
		}
	}
	// Q:/A: formatted blocks count too.
	lower := strings.ToLower(text)
	if strings.Contains(lower, "\nq:") && strings.Contains(lower, "\na:") {
		count += 2
	}
	return count
}

var aeoRules = []Rule{
	{
		ID:  "answer_first",
		Max: 20,
		Detect: func(doc model.ContentDocument) Measurement {
			opening := firstParagraph(doc.Text)
			words := wordCount(opening)

			// An answer-first opening is a compact declarative paragraph,
			// not a wind-up: present, short, and not itself a question.
			strength := 0
			if words > 0 && words <= 60 {
				strength++
			}
			if words > 0 && !strings.HasSuffix(strings.TrimSpace(opening), "?") {
				strength++
			}
			return Measurement{Value: strength, Evidence: map[string]any{
				"opening_words": words,
			}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 20, 10)
		},
	},
	{
		ID:  "quantified",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := len(numberRe.FindAllString(doc.Text, -1))
			return Measurement{Value: n, Evidence: map[string]any{"quantified_statements": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 1, 15, 8)
		},
	},
	{
		ID:  "faq",
		Max: 20,
		Detect: func(doc model.ContentDocument) Measurement {
			n := detectFAQ(doc.Text)
			return Measurement{Value: n, Evidence: map[string]any{"faq_signals": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 1, 20, 10)
		},
	},
	{
		ID:  "definitions",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := containsAny(doc.Text, definitionTerms)
			return Measurement{Value: n, Evidence: map[string]any{"definitions": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 15, 8)
		},
	},
	{
		ID:  "steps",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := len(orderedItemRe.FindAllString(doc.Text, -1))
			return Measurement{Value: n, Evidence: map[string]any{"numbered_steps": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 2, 15, 8)
		},
	},
	{
		ID:  "density",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			words := wordCount(doc.Text)
			counts := headingCounts(doc.Text)
			headingTotal := 0
			for _, c := range counts {
				headingTotal += c
			}
			anchors := headingTotal + countLinks(doc.Text)

			// Anchors per 1000 words: structure an answer engine can index.
			per1000 := 0
			if words > 0 {
				per1000 = anchors * 1000 / words
			}
			return Measurement{Value: per1000, Evidence: map[string]any{
				"word_count":       words,
				"heading_count":    headingTotal,
				"anchors_per_1000": per1000,
			}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 10, 4, 15, 8)
		},
	},
}
