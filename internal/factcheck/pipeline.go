// Package factcheck implements the claim-verification sub-pipeline: extract
// checkable claims, gather web evidence per claim, ask the generation oracle
// to classify each claim's support level, and roll the results into one
// confidence score.
package factcheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/avoskres/aiso/internal/model"
	"github.com/avoskres/aiso/internal/oracle"
)

// Pipeline runs the four verification stages. Any stage failing (oracle
// timeout, malformed response) fails the whole fact-check closed: confidence
// 0, zero claims, error surfaced.
type Pipeline struct {
	generator  oracle.Generator
	searcher   oracle.Searcher
	maxResults int
}

// NewPipeline creates a fact-check pipeline from explicit oracle clients.
func NewPipeline(generator oracle.Generator, searcher oracle.Searcher, cfg model.SearchConfig) *Pipeline {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Pipeline{
		generator:  generator,
		searcher:   searcher,
		maxResults: maxResults,
	}
}

const extractInstruction = `Extract every independently checkable factual claim from the document below: statistics, named findings, dates, and concrete assertions about the world. Exclude common knowledge, opinions, and the author's own recommendations.

Return ONLY a JSON array of claim strings, for example:
["In 2023, 61% of searches ended without a click.", "The average repair costs 300 dollars."]

Return [] if the document makes no checkable claims.`

// verifiedClaim mirrors the JSON shape requested from the verification stage.
type verifiedClaim struct {
	Claim      string   `json:"claim"`
	Status     string   `json:"status"`
	Confidence int      `json:"confidence"`
	Sources    []string `json:"sources"`
}

// Verify runs the full pipeline against a document.
func (p *Pipeline) Verify(ctx context.Context, doc model.ContentDocument) (*model.FactCheckResult, error) {
	// Stage 1: claim extraction.
	claimTexts, err := p.extractClaims(ctx, doc)
	if err != nil {
		return failClosed(), fmt.Errorf("extract claims: %w", err)
	}

	// No checkable claims is a valid terminal state: nothing to penalize.
	if len(claimTexts) == 0 {
		return &model.FactCheckResult{Confidence: 100, Claims: []model.Claim{}}, nil
	}

	// Stage 2: evidence gathering, one claim at a time. The search client
	// enforces the inter-call delay.
	evidence := make([][]model.Source, len(claimTexts))
	for i, claim := range claimTexts {
		sources, err := p.searcher.Search(ctx, claim, p.maxResults)
		if err != nil {
			return failClosed(), fmt.Errorf("search evidence for claim %d: %w", i+1, err)
		}
		evidence[i] = sources
	}

	// Stage 3: batched verification.
	claims, err := p.verifyClaims(ctx, claimTexts, evidence)
	if err != nil {
		return failClosed(), fmt.Errorf("verify claims: %w", err)
	}

	// Stage 4: aggregation.
	result := &model.FactCheckResult{
		Confidence: meanConfidence(claims),
		Claims:     claims,
	}
	result.CountByStatus()
	return result, nil
}

func (p *Pipeline) extractClaims(ctx context.Context, doc model.ContentDocument) ([]string, error) {
	raw, err := p.generator.Generate(ctx, oracle.GenerateRequest{
		Instruction: extractInstruction,
		Document:    doc.Text,
	})
	if err != nil {
		return nil, err
	}

	var claims []string
	if err := oracle.DecodeJSON(raw, &claims); err != nil {
		return nil, err
	}

	out := claims[:0]
	for _, c := range claims {
		if strings.TrimSpace(c) != "" {
			out = append(out, strings.TrimSpace(c))
		}
	}
	return out, nil
}

func (p *Pipeline) verifyClaims(ctx context.Context, claimTexts []string, evidence [][]model.Source) ([]model.Claim, error) {
	raw, err := p.generator.Generate(ctx, oracle.GenerateRequest{
		Instruction: buildVerifyInstruction(claimTexts, evidence),
	})
	if err != nil {
		return nil, err
	}

	var verified []verifiedClaim
	if err := oracle.DecodeJSON(raw, &verified); err != nil {
		return nil, err
	}
	if len(verified) != len(claimTexts) {
		return nil, fmt.Errorf("%w: verification returned %d claims, want %d",
			oracle.ErrMalformedResponse, len(verified), len(claimTexts))
	}

	claims := make([]model.Claim, len(verified))
	for i, v := range verified {
		claims[i] = model.Claim{
			Text:       claimTexts[i],
			Status:     parseStatus(v.Status),
			Confidence: clampConfidence(v.Confidence),
			Sources:    matchSources(v.Sources, evidence[i]),
		}
	}
	return claims, nil
}

func buildVerifyInstruction(claimTexts []string, evidence [][]model.Source) string {
	var b strings.Builder
	b.WriteString(`Classify how well each claim below is supported by its search evidence.

Rules:
- "verified": 2 or more corroborating sources
- "uncertain": exactly 1 supporting source, or the sources conflict
- "unverified": no supporting sources

Return ONLY a JSON array, one object per claim in the same order:
[{"claim": "...", "status": "verified|uncertain|unverified", "confidence": 0-100, "sources": ["url", ...]}]

`)
	for i, claim := range claimTexts {
		fmt.Fprintf(&b, "Claim %d: %s\n", i+1, claim)
		if len(evidence[i]) == 0 {
			b.WriteString("  (no search results)\n")
		}
		for _, src := range evidence[i] {
			fmt.Fprintf(&b, "  - %s | %s | %s\n", src.Title, src.URL, src.Snippet)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// matchSources keeps only cited URLs that actually appeared in the gathered
// evidence, so the oracle cannot attach sources it invented.
func matchSources(cited []string, evidence []model.Source) []model.Source {
	byURL := make(map[string]model.Source, len(evidence))
	for _, src := range evidence {
		byURL[src.URL] = src
	}

	var out []model.Source
	for _, u := range cited {
		if src, ok := byURL[u]; ok {
			out = append(out, src)
		}
	}
	return out
}

func parseStatus(s string) model.ClaimStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verified":
		return model.ClaimVerified
	case "uncertain":
		return model.ClaimUncertain
	default:
		return model.ClaimUnverified
	}
}

func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func meanConfidence(claims []model.Claim) int {
	if len(claims) == 0 {
		return 100
	}
	sum := 0
	for _, c := range claims {
		sum += c.Confidence
	}
	return sum / len(claims)
}

// failClosed is the hard-failure result: zero claims, zero confidence.
func failClosed() *model.FactCheckResult {
	return &model.FactCheckResult{Confidence: 0, Claims: []model.Claim{}}
}
