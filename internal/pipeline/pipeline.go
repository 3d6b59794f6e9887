// Package pipeline wires the analyzers, oracles, and controllers into the
// engine's public entrypoints: Score, VerifyClaims, and the three
// improvement modes.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/avoskres/aiso/internal/factcheck"
	"github.com/avoskres/aiso/internal/improve"
	"github.com/avoskres/aiso/internal/intent"
	"github.com/avoskres/aiso/internal/model"
	"github.com/avoskres/aiso/internal/oracle"
	"github.com/avoskres/aiso/internal/readability"
	"github.com/avoskres/aiso/internal/score"
	"github.com/avoskres/aiso/internal/signals"
)

// Pipeline owns the per-job components. Oracle clients are passed in
// explicitly at construction; there is no ambient client state.
type Pipeline struct {
	cfg        *model.Config
	analyzer   *readability.Analyzer
	classifier *intent.Classifier
	scorer     *score.Scorer
	generator  oracle.Generator // nil when no oracle is configured
	searcher   oracle.Searcher  // nil when no search oracle is configured
}

// New creates a pipeline from validated configuration and explicit oracle
// clients. Either oracle may be nil; entrypoints that need a missing oracle
// return an error instead of reaching for a global.
func New(cfg *model.Config, generator oracle.Generator, searcher oracle.Searcher) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &Pipeline{
		cfg:        cfg,
		analyzer:   readability.NewAnalyzer(),
		classifier: intent.NewClassifier(),
		scorer:     score.NewScorer(cfg.Weights),
		generator:  generator,
		searcher:   searcher,
	}, nil
}

// ScoreOptions are the optional inputs to one scoring run.
type ScoreOptions struct {
	// TargetReadability switches the readability analyzer from the absolute
	// curve to the audience-target gap model. Nil means absolute.
	TargetReadability *int

	// FactCheckConfidence folds an externally obtained fact-check confidence
	// into the composite. Nil means the without-fact-check weight table.
	FactCheckConfidence *int
}

// Score runs every applicable signal extractor against the document and
// combines the results. Pure: no oracle I/O, deterministic for a given
// document. The extractors are order-independent and run concurrently.
func (p *Pipeline) Score(doc model.ContentDocument, opts ScoreOptions) (model.CompositeScore, []model.SignalReport) {
	local := doc.IsLocal()

	reports := make([]model.SignalReport, 0, 5)
	type job struct {
		name string
		run  func() model.SignalReport
	}

	jobs := []job{
		{"seo", func() model.SignalReport { return signals.SEO(doc) }},
		{"engagement", func() model.SignalReport { return signals.Engagement(doc) }},
		{"aeo", func() model.SignalReport { return signals.AEO(doc) }},
		{"readability", func() model.SignalReport { return p.readabilityReport(doc, opts.TargetReadability) }},
	}
	if local {
		jobs = append(jobs, job{"geo", func() model.SignalReport { return signals.GEO(doc) }})
	}

	results := make([]model.SignalReport, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(idx int, run func() model.SignalReport) {
			defer wg.Done()
			results[idx] = run()
		}(i, j.run)
	}
	wg.Wait()
	reports = append(reports, results...)

	in := score.Inputs{Local: local, FactCheck: opts.FactCheckConfidence}
	for _, r := range reports {
		switch r.Dimension {
		case "seo":
			in.SEO = r.Score
		case "engagement":
			in.Engagement = r.Score
		case "aeo":
			in.AEO = r.Score
		case "readability":
			in.Readability = r.Score
		case "geo":
			in.GEO = r.Score
		}
	}

	return p.scorer.Combine(in), reports
}

func (p *Pipeline) readabilityReport(doc model.ContentDocument, target *int) model.SignalReport {
	var an readability.Analysis
	if target != nil {
		an = p.analyzer.AnalyzeWithTarget(doc.Text, *target)
	} else {
		an = p.analyzer.Analyze(doc.Text)
	}
	evidence := map[string]any{
		"sentences":          an.Sentences,
		"words":              an.Words,
		"avg_sentence_len":   an.AvgSentenceLen,
		"avg_syllables_word": an.AvgSyllablesWord,
		"reading_ease":       an.ReadingEase,
	}
	if target != nil {
		evidence["target_readability"] = *target
	}
	return model.SignalReport{Dimension: "readability", Score: an.Score, Evidence: evidence}
}

// ClassifyIntent derives the audience readability target for a content job.
func (p *Pipeline) ClassifyIntent(keywords []string, audience string) model.TargetIntent {
	return p.classifier.Classify(keywords, audience)
}

// VerifyClaims runs the fact-verification pipeline. Requires both oracles.
func (p *Pipeline) VerifyClaims(ctx context.Context, doc model.ContentDocument) (*model.FactCheckResult, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("fact-check requires a generation oracle (set oracle.api_key)")
	}
	if p.searcher == nil {
		return nil, fmt.Errorf("fact-check requires a search oracle (set search.base_url)")
	}
	fc := factcheck.NewPipeline(p.generator, p.searcher, p.cfg.Search)
	return fc.Verify(ctx, doc)
}

// ImproveFivePass runs the full five-pass improvement sequence. A fact-check
// is attempted first when both oracles are available; if it fails, the job
// proceeds on the without-fact-check weight table rather than aborting.
func (p *Pipeline) ImproveFivePass(ctx context.Context, doc model.ContentDocument, target *int) (*model.ImprovementResult, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("improvement requires a generation oracle (set oracle.api_key)")
	}

	var factCheck *int
	var fcErr error
	if p.searcher != nil {
		if result, err := p.VerifyClaims(ctx, doc); err != nil {
			fcErr = err
		} else {
			factCheck = &result.Confidence
		}
	}

	o := improve.NewOrchestrator(p.generator, p.scoreFunc(target, factCheck), p.cfg.Gates, factCheck)
	result, err := o.FivePass(ctx, doc)
	if err != nil {
		return nil, err
	}
	if fcErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("fact-check failed (%v); scored without a fact-check component. Transient oracle error, safe to retry", fcErr))
	}
	return result, nil
}

// ImproveSinglePass applies one targeted improvement pass.
func (p *Pipeline) ImproveSinglePass(ctx context.Context, doc model.ContentDocument, pass string, target *int) (*model.PassResult, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("improvement requires a generation oracle (set oracle.api_key)")
	}
	o := improve.NewOrchestrator(p.generator, p.scoreFunc(target, nil), p.cfg.Gates, nil)
	return o.SinglePass(ctx, doc, improve.PassName(pass))
}

// ImproveIterative runs the bounded iterative controller with full audit
// context and returns the best variant seen.
func (p *Pipeline) ImproveIterative(ctx context.Context, doc model.ContentDocument, auditReport string, maxIterations int, target *int) (*model.IterationResult, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("improvement requires a generation oracle (set oracle.api_key)")
	}
	if maxIterations <= 0 {
		maxIterations = p.cfg.Improve.MaxIterations
	}
	o := improve.NewOrchestrator(p.generator, p.scoreFunc(target, nil), p.cfg.Gates, nil)
	return o.Iterative(ctx, doc, auditReport, maxIterations, p.cfg.Improve.TargetScore)
}

// scoreFunc bakes the job's readability target and fact-check confidence
// into a re-scoring closure for the orchestrator.
func (p *Pipeline) scoreFunc(target, factCheck *int) improve.ScoreFunc {
	return func(doc model.ContentDocument) model.CompositeScore {
		composite, _ := p.Score(doc, ScoreOptions{
			TargetReadability:   target,
			FactCheckConfidence: factCheck,
		})
		return composite
	}
}
