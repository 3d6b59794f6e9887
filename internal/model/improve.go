package model

// ImprovementPass is one append-only audit record built by the orchestrator.
// The full sequence is returned to the caller as provenance.
type ImprovementPass struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	ScoreBefore int    `json:"score_before"`
	ScoreAfter  int    `json:"score_after"`
	Improvement int    `json:"improvement"`
	Skipped     bool   `json:"skipped,omitempty"` // e.g. FAQ pass gated by low fact-check confidence
	Note        string `json:"note,omitempty"`
}

// ImprovementResult is the outcome of a full five-pass improvement run.
// Rejected is a normal result value, not an error: the content cleared every
// pass but still failed the acceptance floor.
type ImprovementResult struct {
	FinalDocument ContentDocument   `json:"final_document"`
	FinalScore    CompositeScore    `json:"final_score"`
	Passes        []ImprovementPass `json:"passes"`
	Rejected      bool              `json:"rejected"`
	Reason        string            `json:"reason,omitempty"`   // Human-readable rejection reason
	Warnings      []string          `json:"warnings,omitempty"` // Per-dimension threshold shortfalls
}

// PassResult is the outcome of a single targeted improvement pass.
type PassResult struct {
	Document    ContentDocument `json:"document"`
	Pass        ImprovementPass `json:"pass"`
	ScoreBefore CompositeScore  `json:"score_before"`
	ScoreAfter  CompositeScore  `json:"score_after"`
}

// IterationResult is the outcome of a bounded iterative rewrite run. The
// returned document is the best-scoring variant seen, which is not
// necessarily the last one produced.
type IterationResult struct {
	BestDocument ContentDocument `json:"best_document"`
	BestScore    CompositeScore  `json:"best_score"`
	Iterations   int             `json:"iterations"`
	TargetMet    bool            `json:"target_met"`
	History      []int           `json:"history"` // Primary score per iteration, in order
}
