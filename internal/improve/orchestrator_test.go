package improve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avoskres/aiso/internal/model"
	"github.com/avoskres/aiso/internal/oracle"
)

// rewriteGenerator returns scripted rewrites in call order.
type rewriteGenerator struct {
	rewrites []string
	err      error
	calls    int
	prompts  []string
}

func (g *rewriteGenerator) Name() string { return "rewrite" }

func (g *rewriteGenerator) Generate(ctx context.Context, req oracle.GenerateRequest) (string, error) {
	g.prompts = append(g.prompts, req.Instruction)
	if g.err != nil {
		return "", g.err
	}
	i := g.calls
	g.calls++
	if i < len(g.rewrites) {
		return g.rewrites[i], nil
	}
	return req.Document, nil
}

// scoreByText maps document text to a fixed composite, defaulting to base.
func scoreByText(scores map[string]int, base int) ScoreFunc {
	return func(doc model.ContentDocument) model.CompositeScore {
		s := base
		if v, ok := scores[doc.Text]; ok {
			s = v
		}
		return model.CompositeScore{
			SEO: s, Readability: s, Engagement: s, AEO: s, Composite: s,
		}
	}
}

func intPtr(v int) *int { return &v }

func defaultGates() model.GatesConfig {
	return model.DefaultConfig().Gates
}

func TestFivePass_ChainingInvariant(t *testing.T) {
	gen := &rewriteGenerator{rewrites: []string{"v1", "v2", "v3", "v4", "v5"}}
	score := scoreByText(map[string]int{
		"v0": 40, "v1": 50, "v2": 58, "v3": 63, "v4": 70, "v5": 72,
	}, 0)
	o := NewOrchestrator(gen, score, defaultGates(), intPtr(80))

	result, err := o.FivePass(context.Background(), model.ContentDocument{Text: "v0"})
	if err != nil {
		t.Fatalf("FivePass: %v", err)
	}

	if len(result.Passes) != 5 {
		t.Fatalf("got %d passes, want 5", len(result.Passes))
	}
	for k := 1; k < len(result.Passes); k++ {
		if result.Passes[k].ScoreBefore != result.Passes[k-1].ScoreAfter {
			t.Errorf("pass %d scoreBefore=%d != pass %d scoreAfter=%d",
				k, result.Passes[k].ScoreBefore, k-1, result.Passes[k-1].ScoreAfter)
		}
	}
	if result.Rejected {
		t.Errorf("unexpected rejection: %s", result.Reason)
	}
	if result.FinalDocument.Text != "v5" {
		t.Errorf("final document = %q, want v5", result.FinalDocument.Text)
	}
}

func TestFivePass_RejectsBelowFloor(t *testing.T) {
	gen := &rewriteGenerator{rewrites: []string{"v1", "v2", "v3", "v4", "v5"}}
	// Scores creep up but end at 58, below the floor of 60.
	score := scoreByText(map[string]int{
		"v0": 30, "v1": 40, "v2": 45, "v3": 50, "v4": 55, "v5": 58,
	}, 0)
	o := NewOrchestrator(gen, score, defaultGates(), intPtr(80))

	result, err := o.FivePass(context.Background(), model.ContentDocument{Text: "v0"})
	if err != nil {
		t.Fatalf("FivePass: %v", err)
	}

	if !result.Rejected {
		t.Fatal("expected rejection at final score 58")
	}
	if result.Reason == "" {
		t.Error("rejected result must carry a reason")
	}
	if result.FinalScore.Primary() != 58 {
		t.Errorf("final score = %d, want 58", result.FinalScore.Primary())
	}
}

func TestFivePass_FAQGateBlocksLowConfidenceFAQ(t *testing.T) {
	withFAQ := "answer text\n\n## Frequently Asked Questions\n\n### Is it safe?\n\nYes."
	gen := &rewriteGenerator{rewrites: []string{"v1", "v2", withFAQ, "v4", "v5"}}
	score := scoreByText(map[string]int{withFAQ: 90}, 65)

	// Incoming fact-check confidence 55 is below the gate of 65.
	o := NewOrchestrator(gen, score, defaultGates(), intPtr(55))

	result, err := o.FivePass(context.Background(), model.ContentDocument{Text: "v0"})
	if err != nil {
		t.Fatalf("FivePass: %v", err)
	}

	if strings.Contains(result.FinalDocument.Text, "Frequently Asked") {
		t.Error("FAQ section survived despite low fact-check confidence")
	}
	aeoPass := result.Passes[2]
	if aeoPass.Name != string(PassAEO) {
		t.Fatalf("pass 3 = %s, want aeo", aeoPass.Name)
	}
	if !aeoPass.Skipped {
		t.Error("expected AEO pass to report the blocked FAQ")
	}

	// The instruction itself must forbid the FAQ.
	if !strings.Contains(gen.prompts[2], "Do NOT add an FAQ section") {
		t.Errorf("aeo instruction does not forbid FAQ: %q", gen.prompts[2])
	}
}

func TestFivePass_FAQAllowedWithHighConfidence(t *testing.T) {
	withFAQ := "answer text\n\n## FAQ\n\n### How long does it take?\n\nTwo hours."
	gen := &rewriteGenerator{rewrites: []string{"v1", "v2", withFAQ, withFAQ + "!", withFAQ + "!!"}}
	score := scoreByText(nil, 70)
	o := NewOrchestrator(gen, score, defaultGates(), intPtr(80))

	result, err := o.FivePass(context.Background(), model.ContentDocument{Text: "v0"})
	if err != nil {
		t.Fatalf("FivePass: %v", err)
	}

	if !strings.Contains(result.FinalDocument.Text, "FAQ") {
		t.Error("FAQ should survive with fact-check confidence above the gate")
	}
	if !strings.Contains(gen.prompts[2], "Add a short FAQ section") {
		t.Errorf("aeo instruction should ask for an FAQ: %q", gen.prompts[2])
	}
}

func TestFivePass_RollsBackRegressions(t *testing.T) {
	gen := &rewriteGenerator{rewrites: []string{"worse", "same", "same", "same", "same"}}
	score := scoreByText(map[string]int{"v0": 70, "worse": 40, "same": 70}, 70)
	o := NewOrchestrator(gen, score, defaultGates(), intPtr(80))

	result, err := o.FivePass(context.Background(), model.ContentDocument{Text: "v0"})
	if err != nil {
		t.Fatalf("FivePass: %v", err)
	}

	first := result.Passes[0]
	if first.ScoreAfter != first.ScoreBefore {
		t.Errorf("regressing pass scoreAfter=%d, want rollback to %d", first.ScoreAfter, first.ScoreBefore)
	}
	if first.Note == "" {
		t.Error("rolled-back pass should carry a note")
	}
}

func TestFivePass_OracleErrorPropagates(t *testing.T) {
	gen := &rewriteGenerator{err: oracle.ErrUnavailable}
	o := NewOrchestrator(gen, scoreByText(nil, 50), defaultGates(), nil)

	_, err := o.FivePass(context.Background(), model.ContentDocument{Text: "v0"})
	if !errors.Is(err, oracle.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestSinglePass_Delta(t *testing.T) {
	gen := &rewriteGenerator{rewrites: []string{"better"}}
	score := scoreByText(map[string]int{"v0": 50, "better": 62}, 0)
	o := NewOrchestrator(gen, score, defaultGates(), nil)

	result, err := o.SinglePass(context.Background(), model.ContentDocument{Text: "v0"}, PassReadability)
	if err != nil {
		t.Fatalf("SinglePass: %v", err)
	}

	if result.Pass.Improvement != 12 {
		t.Errorf("improvement = %d, want 12", result.Pass.Improvement)
	}
	if result.Document.Text != "better" {
		t.Errorf("document = %q, want the rewrite", result.Document.Text)
	}
}

func TestSinglePass_UnknownPass(t *testing.T) {
	o := NewOrchestrator(&rewriteGenerator{}, scoreByText(nil, 50), defaultGates(), nil)

	if _, err := o.SinglePass(context.Background(), model.ContentDocument{Text: "v0"}, PassName("polish")); err == nil {
		t.Fatal("expected error for unknown pass")
	}
	if _, err := o.SinglePass(context.Background(), model.ContentDocument{Text: "v0"}, PassValidation); err == nil {
		t.Fatal("validation is not a selectable single pass")
	}
}

func TestIterative_TracksBestVariant(t *testing.T) {
	// Iteration 2 produces the best variant; iteration 3 regresses.
	gen := &rewriteGenerator{rewrites: []string{"i1", "i2", "i3"}}
	score := scoreByText(map[string]int{"v0": 40, "i1": 55, "i2": 70, "i3": 45}, 0)
	o := NewOrchestrator(gen, score, defaultGates(), nil)

	result, err := o.Iterative(context.Background(), model.ContentDocument{Text: "v0"}, "audit", 3, 90)
	if err != nil {
		t.Fatalf("Iterative: %v", err)
	}

	if result.BestDocument.Text != "i2" {
		t.Errorf("best document = %q, want i2", result.BestDocument.Text)
	}
	if result.BestScore.Primary() != 70 {
		t.Errorf("best score = %d, want 70", result.BestScore.Primary())
	}
	for _, h := range result.History {
		if h > result.BestScore.Primary() {
			t.Errorf("history score %d exceeds reported best %d", h, result.BestScore.Primary())
		}
	}
	if result.TargetMet {
		t.Error("target 90 was never reached")
	}
	if result.Iterations != 3 {
		t.Errorf("iterations = %d, want 3", result.Iterations)
	}
}

func TestIterative_StopsEarlyAtTarget(t *testing.T) {
	gen := &rewriteGenerator{rewrites: []string{"i1", "i2", "i3"}}
	score := scoreByText(map[string]int{"v0": 40, "i1": 85}, 0)
	o := NewOrchestrator(gen, score, defaultGates(), nil)

	result, err := o.Iterative(context.Background(), model.ContentDocument{Text: "v0"}, "", 5, 80)
	if err != nil {
		t.Fatalf("Iterative: %v", err)
	}

	if !result.TargetMet {
		t.Error("expected target met")
	}
	if result.Iterations != 1 {
		t.Errorf("iterations = %d, want 1 (early stop)", result.Iterations)
	}
	if result.BestDocument.Text != "i1" {
		t.Errorf("best document = %q, want i1", result.BestDocument.Text)
	}
}

func TestFivePass_WarningsOnDimensionShortfalls(t *testing.T) {
	gen := &rewriteGenerator{rewrites: []string{"v1", "v1", "v1", "v1", "v1"}}
	// Composite clears the floor but every dimension sits at 62, below the
	// AEO minimum of 65.
	score := scoreByText(nil, 62)
	o := NewOrchestrator(gen, score, defaultGates(), intPtr(80))

	result, err := o.FivePass(context.Background(), model.ContentDocument{Text: "v0"})
	if err != nil {
		t.Fatalf("FivePass: %v", err)
	}

	if result.Rejected {
		t.Fatal("composite 62 should pass the floor of 60")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "aeo") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an aeo warning, got %v", result.Warnings)
	}
}
