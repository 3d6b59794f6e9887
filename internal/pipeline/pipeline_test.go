package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/avoskres/aiso/internal/model"
	"github.com/avoskres/aiso/internal/oracle"
)

func newTestPipeline(t *testing.T, gen oracle.Generator, search oracle.Searcher) *Pipeline {
	t.Helper()
	p, err := New(model.DefaultConfig(), gen, search)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

var scoreDoc = model.ContentDocument{
	Title:           "A Practical Guide to Composting at Home",
	MetaDescription: "Everything you need to start composting at home, from choosing a bin to fixing smells, in one practical, beginner-friendly walkthrough guide.",
	Text: `# A Practical Guide to Composting

Composting turns food scraps into rich soil in about 8 weeks. It is simple to start and costs very little.

## Getting Started

1. Pick a shaded spot.
2. Layer greens and browns.
3. Turn the pile weekly.

## Common Problems

A smelly pile usually means too much green material. Add dry leaves to fix it.
`,
}

func TestScore_PureAndIdempotent(t *testing.T) {
	p := newTestPipeline(t, nil, nil)

	first, reports := p.Score(scoreDoc, ScoreOptions{})
	second, _ := p.Score(scoreDoc, ScoreOptions{})

	if first != second {
		t.Errorf("scoring not idempotent: %+v vs %+v", first, second)
	}
	if len(reports) != 4 {
		t.Errorf("got %d signal reports for national content, want 4", len(reports))
	}
	for _, r := range reports {
		if r.Score < 0 || r.Score > 100 {
			t.Errorf("%s score %d out of range", r.Dimension, r.Score)
		}
	}
}

func TestScore_LocalContextAddsGEO(t *testing.T) {
	doc := scoreDoc
	doc.Local = &model.LocalContext{City: "Austin", State: "Texas"}
	p := newTestPipeline(t, nil, nil)

	composite, reports := p.Score(doc, ScoreOptions{})

	if composite.GEO == nil {
		t.Fatal("expected GEO component for local content")
	}
	if len(reports) != 5 {
		t.Errorf("got %d signal reports for local content, want 5", len(reports))
	}
}

func TestScore_FactCheckConfidenceChangesWeighting(t *testing.T) {
	p := newTestPipeline(t, nil, nil)
	fc := 40

	without, _ := p.Score(scoreDoc, ScoreOptions{})
	with, _ := p.Score(scoreDoc, ScoreOptions{FactCheckConfidence: &fc})

	if with.CompositeWithFactCheck == nil {
		t.Fatal("expected composite_with_fact_check")
	}
	if with.Composite != without.Composite {
		t.Errorf("plain composite changed: %d vs %d", with.Composite, without.Composite)
	}
	if *with.CompositeWithFactCheck >= with.Composite {
		t.Errorf("low fact-check confidence should drag the primary score below %d, got %d",
			with.Composite, *with.CompositeWithFactCheck)
	}
}

func TestScore_TargetReadabilityRecorded(t *testing.T) {
	p := newTestPipeline(t, nil, nil)
	target := 70

	_, reports := p.Score(scoreDoc, ScoreOptions{TargetReadability: &target})

	for _, r := range reports {
		if r.Dimension == "readability" {
			if got := r.Evidence["target_readability"]; got != 70 {
				t.Errorf("target_readability evidence = %v, want 70", got)
			}
			return
		}
	}
	t.Fatal("no readability report found")
}

func TestVerifyClaims_RequiresOracles(t *testing.T) {
	p := newTestPipeline(t, nil, nil)

	if _, err := p.VerifyClaims(context.Background(), scoreDoc); err == nil {
		t.Error("expected error without oracles")
	}
}

type staticGenerator struct{ response string }

func (g *staticGenerator) Name() string { return "static" }
func (g *staticGenerator) Generate(ctx context.Context, req oracle.GenerateRequest) (string, error) {
	return g.response, nil
}

type emptySearcher struct{}

func (s *emptySearcher) Search(ctx context.Context, query string, max int) ([]model.Source, error) {
	return nil, nil
}

func TestVerifyClaims_EndToEndNoClaims(t *testing.T) {
	p := newTestPipeline(t, &staticGenerator{response: "[]"}, &emptySearcher{})

	result, err := p.VerifyClaims(context.Background(), scoreDoc)
	if err != nil {
		t.Fatalf("VerifyClaims: %v", err)
	}
	if result.Confidence != 100 || len(result.Claims) != 0 {
		t.Errorf("result = %+v, want confidence 100 with zero claims", result)
	}
}

func TestImprove_RequiresGenerator(t *testing.T) {
	p := newTestPipeline(t, nil, nil)

	if _, err := p.ImproveFivePass(context.Background(), scoreDoc, nil); err == nil {
		t.Error("ImproveFivePass should fail without a generator")
	}
	if _, err := p.ImproveSinglePass(context.Background(), scoreDoc, "readability", nil); err == nil {
		t.Error("ImproveSinglePass should fail without a generator")
	}
	if _, err := p.ImproveIterative(context.Background(), scoreDoc, "", 3, nil); err == nil {
		t.Error("ImproveIterative should fail without a generator")
	}
}

func TestRenderer_Markdown(t *testing.T) {
	p := newTestPipeline(t, nil, nil)
	composite, reports := p.Score(scoreDoc, ScoreOptions{})

	md := NewRenderer().Markdown(&model.ScoreReport{
		Document: scoreDoc,
		Signals:  reports,
		Score:    composite,
	})

	if !strings.Contains(md, "Composting") {
		t.Error("markdown report missing document title")
	}
	if !strings.Contains(md, "| SEO |") {
		t.Error("markdown report missing score table")
	}
	for _, dim := range []string{"seo", "readability", "engagement", "aeo"} {
		if !strings.Contains(md, "### "+dim) {
			t.Errorf("markdown report missing %s signal section", dim)
		}
	}
}
