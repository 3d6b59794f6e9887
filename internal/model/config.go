package model

import (
	"fmt"
	"math"
	"time"
)

// Config is the full runtime configuration. The weight tables and gate
// thresholds are empirically tuned numbers, so they live here rather than as
// constants in the scoring code.
type Config struct {
	Weights WeightsConfig `yaml:"weights" mapstructure:"weights"`
	Gates   GatesConfig   `yaml:"gates" mapstructure:"gates"`
	Oracle  OracleConfig  `yaml:"oracle" mapstructure:"oracle"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Improve ImproveConfig `yaml:"improve" mapstructure:"improve"`
	Verbose bool          `yaml:"verbose" mapstructure:"verbose"`
}

// WeightTable maps dimension name to its share of the composite.
// Each table must sum to exactly 1.0.
type WeightTable struct {
	SEO         float64 `yaml:"seo" mapstructure:"seo"`
	Readability float64 `yaml:"readability" mapstructure:"readability"`
	Engagement  float64 `yaml:"engagement" mapstructure:"engagement"`
	AEO         float64 `yaml:"aeo" mapstructure:"aeo"`
	GEO         float64 `yaml:"geo" mapstructure:"geo"`
	FactCheck   float64 `yaml:"fact_check" mapstructure:"fact_check"`
}

// Sum returns the total weight in the table.
func (w WeightTable) Sum() float64 {
	return w.SEO + w.Readability + w.Engagement + w.AEO + w.GEO + w.FactCheck
}

// WeightsConfig holds the four composite weight tables: national/local
// content, each with and without a fact-check component.
type WeightsConfig struct {
	National          WeightTable `yaml:"national" mapstructure:"national"`
	NationalFactCheck WeightTable `yaml:"national_fact_check" mapstructure:"national_fact_check"`
	Local             WeightTable `yaml:"local" mapstructure:"local"`
	LocalFactCheck    WeightTable `yaml:"local_fact_check" mapstructure:"local_fact_check"`
}

// GatesConfig holds the quality-gate thresholds used by the improvement
// orchestrator.
type GatesConfig struct {
	// AcceptFloor is the minimum composite score a five-pass run must reach;
	// below it the result is rejected.
	AcceptFloor int `yaml:"accept_floor" mapstructure:"accept_floor"`

	// FAQMinFactCheck gates the AEO/FAQ pass: no FAQ section is added when
	// fact-check confidence is below this.
	FAQMinFactCheck int `yaml:"faq_min_fact_check" mapstructure:"faq_min_fact_check"`

	// Per-dimension minimums. Shortfalls are reported as warnings, they do
	// not block success.
	MinFactCheck   int `yaml:"min_fact_check" mapstructure:"min_fact_check"`
	MinReadability int `yaml:"min_readability" mapstructure:"min_readability"`
	MinAEO         int `yaml:"min_aeo" mapstructure:"min_aeo"`
	MinSEO         int `yaml:"min_seo" mapstructure:"min_seo"`
	MinEngagement  int `yaml:"min_engagement" mapstructure:"min_engagement"`
	MinGEO         int `yaml:"min_geo" mapstructure:"min_geo"`
}

// OracleConfig configures the content-generation oracle client.
type OracleConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" (default)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SearchConfig configures the claim-verification search oracle client.
type SearchConfig struct {
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	MaxResults int           `yaml:"max_results" mapstructure:"max_results"`
	Timeout    int           `yaml:"timeout" mapstructure:"timeout"` // seconds
	Delay      time.Duration `yaml:"delay" mapstructure:"delay"`     // fixed delay between consecutive calls
	RatePerSec float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	CacheTTL   time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// ImproveConfig bounds the improvement controllers.
type ImproveConfig struct {
	MaxIterations int `yaml:"max_iterations" mapstructure:"max_iterations"` // bounded iterative mode
	TargetScore   int `yaml:"target_score" mapstructure:"target_score"`     // early-exit target for iterative mode
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: WeightsConfig{
			National: WeightTable{
				AEO: 0.30, SEO: 0.20, Readability: 0.25, Engagement: 0.25,
			},
			NationalFactCheck: WeightTable{
				FactCheck: 0.30, AEO: 0.25, SEO: 0.15, Readability: 0.15, Engagement: 0.15,
			},
			Local: WeightTable{
				AEO: 0.25, GEO: 0.15, SEO: 0.20, Readability: 0.20, Engagement: 0.20,
			},
			LocalFactCheck: WeightTable{
				FactCheck: 0.25, AEO: 0.20, GEO: 0.10, SEO: 0.15, Readability: 0.15, Engagement: 0.15,
			},
		},
		Gates: GatesConfig{
			AcceptFloor:     60,
			FAQMinFactCheck: 65,
			MinFactCheck:    70,
			MinReadability:  60,
			MinAEO:          65,
			MinSEO:          60,
			MinEngagement:   60,
			MinGEO:          60,
		},
		Oracle: OracleConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 4000,
		},
		Search: SearchConfig{
			MaxResults: 5,
			Timeout:    15,
			Delay:      500 * time.Millisecond,
			RatePerSec: 2,
			CacheTTL:   15 * time.Minute,
		},
		Improve: ImproveConfig{
			MaxIterations: 5,
			TargetScore:   80,
		},
	}
}

// Validate checks the invariants the scorer relies on, most importantly that
// every weight table sums to exactly 1.0.
func (c *Config) Validate() error {
	tables := map[string]WeightTable{
		"national":            c.Weights.National,
		"national_fact_check": c.Weights.NationalFactCheck,
		"local":               c.Weights.Local,
		"local_fact_check":    c.Weights.LocalFactCheck,
	}
	for name, t := range tables {
		if math.Abs(t.Sum()-1.0) > 1e-9 {
			return fmt.Errorf("weight table %q sums to %.4f, want 1.0", name, t.Sum())
		}
	}
	if c.Gates.AcceptFloor < 0 || c.Gates.AcceptFloor > 100 {
		return fmt.Errorf("accept_floor %d out of range [0,100]", c.Gates.AcceptFloor)
	}
	if c.Improve.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.Improve.MaxIterations)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search max_results must be positive, got %d", c.Search.MaxResults)
	}
	return nil
}
