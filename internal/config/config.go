// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/skill-extractor/internal/llm"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g.
// SKILLX_EXTRACTION_CONFIDENCE_THRESHOLD.
const EnvPrefix = "SKILLX"

// Config is the full application configuration. It can be loaded from a JSON
// or YAML file; every key can be overridden from the environment.
type Config struct {
	Extraction ExtractionConfig `mapstructure:"extraction" json:"extraction"`
	LLM        LLMConfig        `mapstructure:"llm" json:"llm"`
	Knowledge  KnowledgeConfig  `mapstructure:"knowledge" json:"knowledge"`
	Cache      CacheConfig      `mapstructure:"cache" json:"cache"`
	Server     ServerConfig     `mapstructure:"server" json:"server"`
	Log        LogConfig        `mapstructure:"log" json:"log"`
}

// ExtractionConfig tunes the extraction engine.
type ExtractionConfig struct {
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold" json:"confidence_threshold" validate:"gte=0,lte=1"`
	ContextWindowSize   int           `mapstructure:"context_window_size" json:"context_window_size" validate:"gt=0"`
	AIEnabled           bool          `mapstructure:"ai_enabled" json:"ai_enabled"`
	AITimeout           time.Duration `mapstructure:"ai_timeout" json:"ai_timeout" validate:"gt=0"`
}

// LLMConfig selects the AI provider and models.
type LLMConfig struct {
	Provider string       `mapstructure:"provider" json:"provider" validate:"oneof=gemini genai anthropic"`
	APIKey   string       `mapstructure:"api_key" json:"-"`
	Tier     string       `mapstructure:"tier" json:"tier" validate:"oneof=lite standard advanced"`
	Models   ModelsConfig `mapstructure:"models" json:"models"`
}

// ModelsConfig overrides the provider's default model per tier.
type ModelsConfig struct {
	Lite     string `mapstructure:"lite" json:"lite,omitempty"`
	Standard string `mapstructure:"standard" json:"standard,omitempty"`
	Advanced string `mapstructure:"advanced" json:"advanced,omitempty"`
}

// KnowledgeConfig locates the ontology and trending data. Embedded defaults
// are used when no file or database is configured.
type KnowledgeConfig struct {
	OntologyFile    string        `mapstructure:"ontology_file" json:"ontology_file,omitempty"`
	TrendingFile    string        `mapstructure:"trending_file" json:"trending_file,omitempty"`
	DatabaseURL     string        `mapstructure:"database_url" json:"-"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval" json:"refresh_interval" validate:"gte=0"`
}

// CacheConfig configures the AI reply cache.
type CacheConfig struct {
	RedisURL   string        `mapstructure:"redis_url" json:"-"`
	TTL        time.Duration `mapstructure:"ttl" json:"ttl" validate:"gt=0"`
	MaxEntries int           `mapstructure:"max_entries" json:"max_entries" validate:"gt=0"`
}

// ServerConfig configures the HTTP API. A zero RateLimit disables limiting.
type ServerConfig struct {
	Port      int `mapstructure:"port" json:"port" validate:"min=1,max=65535"`
	RateLimit int `mapstructure:"rate_limit" json:"rate_limit" validate:"gte=0"`
}

// LogConfig configures the logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json" json:"json"`
	Debug bool `mapstructure:"debug" json:"debug"`
}

var validate = validator.New()

// Default returns the default configuration.
func Default() Config {
	return Config{
		Extraction: ExtractionConfig{
			ConfidenceThreshold: 0.6,
			ContextWindowSize:   50,
			AIEnabled:           true,
			AITimeout:           15 * time.Second,
		},
		LLM: LLMConfig{
			Provider: string(llm.ProviderGemini),
			Tier:     string(llm.TierLite),
		},
		Cache: CacheConfig{
			TTL:        time.Hour,
			MaxEntries: 1000,
		},
		Server: ServerConfig{
			Port:      8080,
			RateLimit: 120,
		},
	}
}

// Load reads configuration from path (optional) and the environment, on top
// of Default, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerAPIKey(cfg.LLM.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("extraction.confidence_threshold", d.Extraction.ConfidenceThreshold)
	v.SetDefault("extraction.context_window_size", d.Extraction.ContextWindowSize)
	v.SetDefault("extraction.ai_enabled", d.Extraction.AIEnabled)
	v.SetDefault("extraction.ai_timeout", d.Extraction.AITimeout)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.tier", d.LLM.Tier)
	v.SetDefault("llm.models.lite", d.LLM.Models.Lite)
	v.SetDefault("llm.models.standard", d.LLM.Models.Standard)
	v.SetDefault("llm.models.advanced", d.LLM.Models.Advanced)

	v.SetDefault("knowledge.ontology_file", d.Knowledge.OntologyFile)
	v.SetDefault("knowledge.trending_file", d.Knowledge.TrendingFile)
	v.SetDefault("knowledge.database_url", d.Knowledge.DatabaseURL)
	v.SetDefault("knowledge.refresh_interval", d.Knowledge.RefreshInterval)

	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.max_entries", d.Cache.MaxEntries)

	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
}

// providerAPIKey reads the conventional API key variable for a provider.
func providerAPIKey(provider string) string {
	if provider == string(llm.ProviderAnthropic) {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config error: %s failed %q validation (value %v)",
				configKey(verrs[0].Namespace()), verrs[0].Tag(), verrs[0].Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	k := c.Knowledge
	if k.DatabaseURL != "" && (k.OntologyFile != "" || k.TrendingFile != "") {
		return fmt.Errorf("config error: 'knowledge.database_url' and knowledge files are mutually exclusive")
	}
	if k.RefreshInterval > 0 && k.DatabaseURL == "" && k.OntologyFile == "" && k.TrendingFile == "" {
		return fmt.Errorf("config error: 'knowledge.refresh_interval' requires a knowledge file or database")
	}

	files := []struct{ key, path string }{
		{"knowledge.ontology_file", k.OntologyFile},
		{"knowledge.trending_file", k.TrendingFile},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s not found: %s", f.key, f.path)
		}
	}

	return nil
}

// configKey turns a validator namespace such as "Config.Extraction.AITimeout"
// into the section path "extraction.AITimeout".
func configKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	if len(parts) > 1 {
		parts[0] = strings.ToLower(parts[0])
	}
	return strings.Join(parts, ".")
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. It is used to layer CLI flag values over a loaded file.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Extraction.ConfidenceThreshold == 0 {
		result.Extraction.ConfidenceThreshold = defaults.Extraction.ConfidenceThreshold
	}
	if result.Extraction.ContextWindowSize == 0 {
		result.Extraction.ContextWindowSize = defaults.Extraction.ContextWindowSize
	}
	if result.Extraction.AITimeout == 0 {
		result.Extraction.AITimeout = defaults.Extraction.AITimeout
	}

	if result.LLM.Provider == "" {
		result.LLM.Provider = defaults.LLM.Provider
	}
	if result.LLM.APIKey == "" {
		result.LLM.APIKey = defaults.LLM.APIKey
	}
	if result.LLM.Tier == "" {
		result.LLM.Tier = defaults.LLM.Tier
	}
	if result.LLM.Models.Lite == "" {
		result.LLM.Models.Lite = defaults.LLM.Models.Lite
	}
	if result.LLM.Models.Standard == "" {
		result.LLM.Models.Standard = defaults.LLM.Models.Standard
	}
	if result.LLM.Models.Advanced == "" {
		result.LLM.Models.Advanced = defaults.LLM.Models.Advanced
	}

	if result.Knowledge.OntologyFile == "" {
		result.Knowledge.OntologyFile = defaults.Knowledge.OntologyFile
	}
	if result.Knowledge.TrendingFile == "" {
		result.Knowledge.TrendingFile = defaults.Knowledge.TrendingFile
	}
	if result.Knowledge.DatabaseURL == "" {
		result.Knowledge.DatabaseURL = defaults.Knowledge.DatabaseURL
	}
	if result.Knowledge.RefreshInterval == 0 {
		result.Knowledge.RefreshInterval = defaults.Knowledge.RefreshInterval
	}

	if result.Cache.RedisURL == "" {
		result.Cache.RedisURL = defaults.Cache.RedisURL
	}
	if result.Cache.TTL == 0 {
		result.Cache.TTL = defaults.Cache.TTL
	}
	if result.Cache.MaxEntries == 0 {
		result.Cache.MaxEntries = defaults.Cache.MaxEntries
	}

	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.RateLimit == 0 {
		result.Server.RateLimit = defaults.Server.RateLimit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// AIActive reports whether the AI signal should be used.
func (c *Config) AIActive() bool {
	return c.Extraction.AIEnabled && c.LLM.APIKey != ""
}

// LLMClientConfig returns the provider's model table with configured overrides.
func (c *Config) LLMClientConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		return nil, err
	}
	out := llm.DefaultConfigFor(provider)
	out.Provider = provider
	for tier, model := range map[llm.ModelTier]string{
		llm.TierLite:     c.LLM.Models.Lite,
		llm.TierStandard: c.LLM.Models.Standard,
		llm.TierAdvanced: c.LLM.Models.Advanced,
	} {
		if model != "" {
			out = out.WithModel(tier, model)
		}
	}
	return out, nil
}

// ModelTier returns the tier used for extraction.
func (c *Config) ModelTier() llm.ModelTier {
	tier, err := llm.ParseTier(c.LLM.Tier)
	if err != nil {
		return llm.TierLite
	}
	return tier
}
