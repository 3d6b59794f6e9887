package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/avoskres/aiso/internal/model"
	"github.com/avoskres/aiso/internal/oracle"
	"github.com/avoskres/aiso/internal/pipeline"
)

// loadConfig builds the runtime config from defaults, config file, and
// environment. API keys fall back to the provider's conventional env vars.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Oracle.APIKey == "" {
		cfg.Oracle.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv("AISO_SEARCH_API_KEY")
	}
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline wires the pipeline with whatever oracle clients the
// configuration allows. Commands that need a missing oracle get a clear
// error from the pipeline itself.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	var generator oracle.Generator
	if cfg.Oracle.APIKey != "" {
		g, err := oracle.NewGenerator(cfg.Oracle)
		if err != nil {
			return nil, fmt.Errorf("generation oracle: %w", err)
		}
		generator = g
	}

	var searcher oracle.Searcher
	if cfg.Search.BaseURL != "" {
		s, err := oracle.NewSearchClient(cfg.Search)
		if err != nil {
			return nil, fmt.Errorf("search oracle: %w", err)
		}
		searcher = s
	}

	return pipeline.New(cfg, generator, searcher)
}

// document flags shared by score/factcheck/improve commands.
var (
	docTitle       string
	docMeta        string
	docCity        string
	docState       string
	docServiceArea string
)

// loadDocument reads the content file and assembles the document snapshot.
func loadDocument(path string) (model.ContentDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ContentDocument{}, fmt.Errorf("read content file: %w", err)
	}

	doc := model.ContentDocument{
		Text:            string(data),
		Title:           docTitle,
		MetaDescription: docMeta,
	}
	if docCity != "" {
		doc.Local = &model.LocalContext{
			City:        docCity,
			State:       docState,
			ServiceArea: docServiceArea,
		}
	}
	return doc, nil
}
