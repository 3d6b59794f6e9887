// Package oracle defines the narrow contracts to the two external black-box
// services: the content-generation oracle (an LLM) and the claim-verification
// web-search oracle. The core never constructs ambient/global clients; a
// configured client is passed into every pipeline entrypoint that needs one.
package oracle

import (
	"context"

	"github.com/avoskres/aiso/internal/model"
)

// Generator is the content-generation oracle contract: a free-text
// instruction plus a document in, free text out. Structured asks are expected
// to come back as JSON; DecodeJSON enforces that.
type Generator interface {
	// Name returns the provider name.
	Name() string

	// Generate sends the instruction and document and returns the raw
	// response text.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest is one call to the generation oracle.
type GenerateRequest struct {
	// System frames the oracle's role for this call.
	System string

	// Instruction is the task description.
	Instruction string

	// Document is the content the instruction operates on (optional).
	Document string

	// MaxTokens limits the response length; 0 uses the client default.
	MaxTokens int
}

// Searcher is the web-search oracle contract: a query in, a bounded ordered
// result list out.
type Searcher interface {
	// Search runs the query and returns at most max results.
	Search(ctx context.Context, query string, max int) ([]model.Source, error)
}

// NewGenerator builds a generation-oracle client from configuration.
func NewGenerator(cfg model.OracleConfig) (Generator, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIGenerator(cfg)
	default:
		return nil, &UnsupportedProviderError{Provider: cfg.Provider}
	}
}
