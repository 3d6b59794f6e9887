package model

// SignalReport is the output of one signal extractor: a bounded score plus
// the transparent evidence that produced it. Evidence keys are
// dimension-specific (header counts, hook presence, location mentions, ...)
// and every rule's awarded points appear under "points:<rule-id>".
type SignalReport struct {
	Dimension string         `json:"dimension"`          // seo, readability, engagement, aeo, geo
	Score     int            `json:"score"`              // Always clamped to [0,100]
	Evidence  map[string]any `json:"evidence,omitempty"` // Transparent scoring data
}

// CompositeScore is the combined quality score across all dimensions.
// Composite is the plain weighted blend; CompositeWithFactCheck is the
// primary quality signal when fact-check confidence is available.
type CompositeScore struct {
	SEO         int  `json:"seo"`
	Readability int  `json:"readability"`
	Engagement  int  `json:"engagement"`
	AEO         int  `json:"aeo"`
	GEO         *int `json:"geo,omitempty"`        // Only for local content
	FactCheck   *int `json:"fact_check,omitempty"` // Only when a fact-check ran

	Composite              int  `json:"composite"`
	CompositeWithFactCheck *int `json:"composite_with_fact_check,omitempty"`
}

// Primary returns the score callers should gate on: the fact-check-weighted
// composite when present, the plain composite otherwise.
func (c CompositeScore) Primary() int {
	if c.CompositeWithFactCheck != nil {
		return *c.CompositeWithFactCheck
	}
	return c.Composite
}

// TargetIntent is the audience-derived readability target, computed once per
// content job and fed to the readability analyzer.
type TargetIntent struct {
	TargetReadability int    `json:"target_readability"` // Desired reading-ease value
	Label             string `json:"label"`              // e.g. "technical", "consumer"
	Reasoning         string `json:"reasoning"`          // Why this target was chosen
	Confidence        string `json:"confidence"`         // "high" or "medium"
}

// ScoreReport bundles everything one scoring run produced, for rendering.
type ScoreReport struct {
	Document  ContentDocument  `json:"document"`
	Signals   []SignalReport   `json:"signals"`
	Score     CompositeScore   `json:"score"`
	Intent    *TargetIntent    `json:"intent,omitempty"`
	FactCheck *FactCheckResult `json:"fact_check,omitempty"`
}
