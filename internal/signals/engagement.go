package signals

import (
	"strings"

	"github.com/avoskres/aiso/internal/model"
)

// Engagement scores reader-retention signals: an opening hook, calls to
// action, scannable structure, and direct reader address. 100-point budget:
// hook 25, cta 15, lists 15, short paragraphs 15, questions 10,
// power words 10, multimedia 10.
func Engagement(doc model.ContentDocument) model.SignalReport {
	return evaluate("engagement", engagementRules, doc)
}

var ctaTerms = []string{
	"sign up", "subscribe", "get started", "learn more", "contact us",
	"download", "try it", "start your", "join", "book now", "call today",
}

var powerTerms = []string{
	"proven", "essential", "powerful", "surprising", "effective", "mistake",
	"secret", "free", "instantly", "guaranteed",
}

var engagementRules = []Rule{
	{
		ID:  "hook",
		Max: 25,
		Detect: func(doc model.ContentDocument) Measurement {
			opening := firstParagraph(doc.Text)
			hasQuestion := strings.Contains(opening, "?")
			hasNumber := numberRe.MatchString(opening)
			hasYou := containsAny(opening, []string{"you", "your"}) > 0

			strength := 0
			if hasQuestion {
				strength++
			}
			if hasNumber {
				strength++
			}
			if hasYou {
				strength++
			}
			return Measurement{Value: strength, Evidence: map[string]any{
				"hook_question": hasQuestion,
				"hook_number":   hasNumber,
				"hook_direct":   hasYou,
			}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 25, 14)
		},
	},
	{
		ID:  "cta",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := containsAny(doc.Text, ctaTerms)
			return Measurement{Value: n, Evidence: map[string]any{"cta_count": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 15, 8)
		},
	},
	{
		ID:  "lists",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			n := len(bulletItemRe.FindAllString(doc.Text, -1)) +
				len(orderedItemRe.FindAllString(doc.Text, -1))
			return Measurement{Value: n, Evidence: map[string]any{"list_items": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 5, 2, 15, 8)
		},
	},
	{
		ID:  "short_paragraphs",
		Max: 15,
		Detect: func(doc model.ContentDocument) Measurement {
			paras := paragraphs(doc.Text)
			short := 0
			for _, p := range paras {
				if wordCount(p) <= 80 {
					short++
				}
			}
			pct := 0
			if len(paras) > 0 {
				pct = short * 100 / len(paras)
			}
			return Measurement{Value: pct, Evidence: map[string]any{
				"paragraphs":       len(paras),
				"short_paragraphs": short,
			}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 80, 50, 15, 8)
		},
	},
	{
		ID:  "questions",
		Max: 10,
		Detect: func(doc model.ContentDocument) Measurement {
			n := len(questionRe.FindAllString(doc.Text, -1))
			return Measurement{Value: n, Evidence: map[string]any{"question_count": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 1, 10, 5)
		},
	},
	{
		ID:  "power_words",
		Max: 10,
		Detect: func(doc model.ContentDocument) Measurement {
			n := containsAny(doc.Text, powerTerms)
			return Measurement{Value: n, Evidence: map[string]any{"power_words": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 3, 1, 10, 5)
		},
	},
	{
		ID:  "multimedia",
		Max: 10,
		Detect: func(doc model.ContentDocument) Measurement {
			n := countImages(doc.Text)
			return Measurement{Value: n, Evidence: map[string]any{"media_count": n}}
		},
		Points: func(m Measurement) int {
			return tiered(m.Value, 2, 1, 10, 5)
		},
	},
}
