package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for ragnews.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	LLM     LLMConfig     `yaml:"llm"`
	Crawl   CrawlConfig   `yaml:"crawl"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig holds article store configuration. An empty Path selects the
// in-memory store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LLMConfig holds generation-service configuration. The API credential is
// read from the environment variable named by APIKeyEnv at startup.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// CrawlConfig holds ingestion configuration. LinkIncludes and LinkExcludes
// are glob patterns matched against the path of outbound links during
// recursive crawls.
type CrawlConfig struct {
	Depth           int      `yaml:"depth"`
	MinArticleChars int      `yaml:"min_article_chars"`
	TimeoutSecs     int      `yaml:"timeout_secs"`
	UserAgent       string   `yaml:"user_agent"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes"`
	LinkIncludes    []string `yaml:"link_includes"`
	LinkExcludes    []string `yaml:"link_excludes"`
}

// SearchConfig holds retrieval configuration. TimeBiasAlpha controls recency
// decay: smaller values make recency dominate the ranking.
type SearchConfig struct {
	Limit         int     `yaml:"limit"`
	TimeBiasAlpha float64 `yaml:"time_bias_alpha"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "ragnews.db",
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			APIKeyEnv:   "GROQ_API_KEY",
			Model:       "llama-3.1-70b-versatile",
			Temperature: 0.5,
			TimeoutSecs: 120,
		},
		Crawl: CrawlConfig{
			Depth:           0,
			MinArticleChars: 100,
			TimeoutSecs:     30,
			UserAgent:       "ragnews/1.0",
			MaxBodyBytes:    10 * 1024 * 1024,
			LinkIncludes:    []string{"**"},
			LinkExcludes:    []string{},
		},
		Search: SearchConfig{
			Limit:         10,
			TimeBiasAlpha: 1.0,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file, overlaying the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ragnews.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ragnews.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
