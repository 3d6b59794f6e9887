// Package improve implements the multi-pass improvement controllers: the
// five-pass sequential state machine, the single targeted pass, and the
// bounded iterative rewriter. Each pass delegates the rewrite to the
// generation oracle and re-scores the result.
package improve

import (
	"context"
	"fmt"
	"strings"

	"github.com/avoskres/aiso/internal/model"
	"github.com/avoskres/aiso/internal/oracle"
	"github.com/avoskres/aiso/internal/signals"
)

// ScoreFunc re-runs the full scoring pipeline on a document. The caller bakes
// in whatever target readability and fact-check confidence apply to the job,
// so scoring stays pure from the orchestrator's point of view.
type ScoreFunc func(doc model.ContentDocument) model.CompositeScore

// Orchestrator drives improvement passes for one job. It owns no shared
// state; every run threads its own document snapshot through the passes.
type Orchestrator struct {
	generator oracle.Generator
	score     ScoreFunc
	gates     model.GatesConfig

	// factCheck is the job's incoming fact-check confidence, used for the
	// FAQ gate. Nil means no fact-check ran; the gate then blocks the FAQ
	// (unverified content should not be dressed up as authoritative Q&A).
	factCheck *int
}

// NewOrchestrator creates an improvement orchestrator for one job.
func NewOrchestrator(generator oracle.Generator, score ScoreFunc, gates model.GatesConfig, factCheck *int) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		score:     score,
		gates:     gates,
		factCheck: factCheck,
	}
}

// FivePass runs the fixed five-pass sequence and applies the quality gates.
// A final composite below the acceptance floor yields Rejected=true with a
// reason, not an error; oracle failures propagate as errors.
func (o *Orchestrator) FivePass(ctx context.Context, doc model.ContentDocument) (*model.ImprovementResult, error) {
	current := doc
	currentScore := o.score(current)

	passes := make([]model.ImprovementPass, 0, len(fivePassOrder))
	for i, name := range fivePassOrder {
		pass, next, nextScore, err := o.runPass(ctx, i, name, current, currentScore)
		if err != nil {
			return nil, fmt.Errorf("pass %d (%s): %w", i+1, name, err)
		}
		passes = append(passes, pass)
		current = next
		currentScore = nextScore
	}

	result := &model.ImprovementResult{
		FinalDocument: current,
		FinalScore:    currentScore,
		Passes:        passes,
	}

	final := currentScore.Primary()
	if final < o.gates.AcceptFloor {
		result.Rejected = true
		result.Reason = fmt.Sprintf(
			"final score %d is below the acceptance floor %d after all passes; the topic or source material may be too weak to score well, review the content rather than retrying",
			final, o.gates.AcceptFloor)
		return result, nil
	}

	result.Warnings = o.dimensionWarnings(currentScore)
	return result, nil
}

// SinglePass applies exactly one targeted improvement pass and returns the
// before/after delta.
func (o *Orchestrator) SinglePass(ctx context.Context, doc model.ContentDocument, name PassName) (*model.PassResult, error) {
	if !selectable(name) {
		return nil, fmt.Errorf("unknown improvement pass %q (available: readability, seo, aeo, engagement)", name)
	}

	before := o.score(doc)
	pass, next, after, err := o.runPass(ctx, 0, name, doc, before)
	if err != nil {
		return nil, fmt.Errorf("pass %s: %w", name, err)
	}

	return &model.PassResult{
		Document:    next,
		Pass:        pass,
		ScoreBefore: before,
		ScoreAfter:  after,
	}, nil
}

// runPass executes one state transition: build the instruction, call the
// oracle, re-score, and record the pass. A rewrite that comes back empty or
// that regresses the composite is rolled back; the prior document survives.
func (o *Orchestrator) runPass(ctx context.Context, index int, name PassName, doc model.ContentDocument, before model.CompositeScore) (model.ImprovementPass, model.ContentDocument, model.CompositeScore, error) {
	pass := model.ImprovementPass{
		Index:       index,
		Name:        string(name),
		ScoreBefore: before.Primary(),
	}

	allowFAQ := o.faqAllowed()
	instruction := passInstruction(name, doc, before, allowFAQ)

	raw, err := o.generator.Generate(ctx, oracle.GenerateRequest{
		System:      rewriteSystem,
		Instruction: instruction,
		Document:    doc.Text,
	})
	if err != nil {
		return pass, doc, before, err
	}

	rewritten := strings.TrimSpace(raw)
	if rewritten == "" {
		pass.ScoreAfter = pass.ScoreBefore
		pass.Skipped = true
		pass.Note = "oracle returned an empty rewrite; keeping previous version"
		return pass, doc, before, nil
	}

	next := doc.WithText(rewritten)

	// Enforce the FAQ gate even if the oracle ignored the instruction.
	if name == PassAEO && !allowFAQ &&
		signals.HasFAQSection(next) && !signals.HasFAQSection(doc) {
		pass.ScoreAfter = pass.ScoreBefore
		pass.Skipped = true
		pass.Note = fmt.Sprintf("FAQ addition blocked: fact-check confidence below %d", o.gates.FAQMinFactCheck)
		return pass, doc, before, nil
	}

	after := o.score(next)
	if after.Primary() < before.Primary() {
		pass.ScoreAfter = pass.ScoreBefore
		pass.Note = "rewrite regressed the composite score; rolled back"
		return pass, doc, before, nil
	}

	pass.ScoreAfter = after.Primary()
	pass.Improvement = pass.ScoreAfter - pass.ScoreBefore
	return pass, next, after, nil
}

// Iterative runs up to maxIterations full-context rewrite cycles, tracks the
// best-scoring variant seen, and stops early once the target is reached. The
// best variant is returned even if the last iteration regressed.
func (o *Orchestrator) Iterative(ctx context.Context, doc model.ContentDocument, auditReport string, maxIterations, target int) (*model.IterationResult, error) {
	if maxIterations <= 0 {
		maxIterations = 5
	}

	best := doc
	bestScore := o.score(doc)
	current := doc

	result := &model.IterationResult{}
	for i := 0; i < maxIterations; i++ {
		currentScore := o.score(current)
		raw, err := o.generator.Generate(ctx, oracle.GenerateRequest{
			System:      rewriteSystem,
			Instruction: iterativeInstruction(auditReport, currentScore, target),
			Document:    current.Text,
		})
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i+1, err)
		}

		rewritten := strings.TrimSpace(raw)
		if rewritten == "" {
			result.History = append(result.History, currentScore.Primary())
			result.Iterations = i + 1
			continue
		}

		current = current.WithText(rewritten)
		score := o.score(current)
		result.History = append(result.History, score.Primary())
		result.Iterations = i + 1

		if score.Primary() > bestScore.Primary() {
			best = current
			bestScore = score
		}
		if bestScore.Primary() >= target {
			result.TargetMet = true
			break
		}
	}

	result.BestDocument = best
	result.BestScore = bestScore
	return result, nil
}

func (o *Orchestrator) faqAllowed() bool {
	return o.factCheck != nil && *o.factCheck >= o.gates.FAQMinFactCheck
}

// dimensionWarnings reports per-dimension threshold shortfalls. They never
// block success.
func (o *Orchestrator) dimensionWarnings(score model.CompositeScore) []string {
	var warnings []string
	add := func(dim string, got, min int) {
		if got < min {
			warnings = append(warnings, fmt.Sprintf("%s score %d is below the recommended minimum %d", dim, got, min))
		}
	}

	if score.FactCheck != nil {
		add("fact-check", *score.FactCheck, o.gates.MinFactCheck)
	}
	add("readability", score.Readability, o.gates.MinReadability)
	add("aeo", score.AEO, o.gates.MinAEO)
	add("seo", score.SEO, o.gates.MinSEO)
	add("engagement", score.Engagement, o.gates.MinEngagement)
	if score.GEO != nil {
		add("local", *score.GEO, o.gates.MinGEO)
	}
	return warnings
}

func selectable(name PassName) bool {
	for _, p := range SelectablePasses {
		if p == name {
			return true
		}
	}
	return false
}
