package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	DefaultProvider  = "gemini"
	DefaultModel     = "gemini-1.5-flash"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultAddr      = ":8080"
)

// Config holds server and model settings. The API key is never compiled in:
// it comes from the file or from the environment variable named by LLM.APIKeyEnv.
type Config struct {
	ServerAddr  string    `json:"server_addr,omitempty" yaml:"server_addr,omitempty"`
	VerdictMode string    `json:"verdict_mode,omitempty" yaml:"verdict_mode,omitempty"`
	LLM         LLMConfig `json:"llm" yaml:"llm"`
}

// LLMConfig selects and configures the text-generation provider.
type LLMConfig struct {
	Provider       string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model          string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey         string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APIKeyEnv      string `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	BaseURL        string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads JSON or YAML config from disk, chosen by file extension.
// An empty path yields Default().
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json", "":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultAddr
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultProvider
	}
	if c.LLM.Model == "" && c.LLM.Provider == DefaultProvider {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = DefaultAPIKeyEnv
	}
}

// ResolveAPIKey returns the explicit key, else the value of APIKeyEnv.
func (l LLMConfig) ResolveAPIKey() string {
	if l.APIKey != "" {
		return l.APIKey
	}
	if l.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(l.APIKeyEnv))
}
