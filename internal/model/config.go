package model

import "time"

// Config is the complete runtime configuration.
//
// Hierarchy (highest to lowest priority): CLI flags, CLAUSECHECK_* environment
// variables, ~/.clausecheck/config.yaml, defaults.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Matching    MatchingConfig    `yaml:"matching"`
	Taxonomy    TaxonomyConfig    `yaml:"taxonomy"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls fetching of URL-hosted policy documents.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`

	// RequestsPerSecond / Burst bound per-domain fetch rate.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// RespectRobots disables fetching paths disallowed by robots.txt.
	RespectRobots bool `yaml:"respect_robots"`
}

// CacheConfig controls the TTL cache of fetched document text.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// MatchingConfig holds the fuzzy-matching thresholds. The defaults are the
// tuned values the decision precedence depends on; change with care.
type MatchingConfig struct {
	// Engine selects the similarity backend: "fuzzy" (ratio family) or
	// "containment" (substring fallback).
	Engine string `yaml:"engine"`

	ExclusionThreshold int `yaml:"exclusion_threshold"`
	InclusionThreshold int `yaml:"inclusion_threshold"`
	FallbackThreshold  int `yaml:"fallback_threshold"`

	// InclusionOverride is the confidence an inclusion needs to beat a
	// conflicting exclusion.
	InclusionOverride int `yaml:"inclusion_override"`
}

// TaxonomyConfig locates an optional YAML override of the built-in
// procedure taxonomy.
type TaxonomyConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ConcurrencyConfig bounds parallelism in batch evaluation.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// LLMConfig configures the optional decision-explanation provider.
// The explanation never affects the verdict.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", or "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "clausecheck/0.1 (+https://github.com/clausecheck/clausecheck)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 2,
			Burst:             5,
			RespectRobots:     true,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Matching: MatchingConfig{
			Engine:             "fuzzy",
			ExclusionThreshold: 80,
			InclusionThreshold: 75,
			FallbackThreshold:  60,
			InclusionOverride:  95,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Provider:  "", // disabled by default
			Timeout:   30,
			MaxTokens: 500,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
