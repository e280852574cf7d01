// Package config loads edusheet settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/edusheet/internal/llm"
	"github.com/abhisek/edusheet/internal/store"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath    string         `mapstructure:"db_path"`
	PublicURL string         `mapstructure:"public_url"`
	HTTP      HTTPConfig     `mapstructure:"http"`
	Log       LogConfig      `mapstructure:"log"`
	LLM       LLMConfig      `mapstructure:"llm"`
	Defaults  DefaultsConfig `mapstructure:"defaults"`
}

type HTTPConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultsConfig holds labels prefilled on new worksheets.
type DefaultsConfig struct {
	SchoolName string `mapstructure:"school_name"`
	ClassName  string `mapstructure:"class_name"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	ProviderConfig `mapstructure:",squash"`
	FallbackModels []string `mapstructure:"fallback_models"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

type LLMConfig struct {
	Provider   string         `mapstructure:"provider"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	Gemini     GeminiConfig   `mapstructure:"gemini"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Retry      RetryConfig    `mapstructure:"retry"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit YAML file. It must exist when set. When
	// empty, DefaultConfigFile is read if present.
	ConfigFile string

	// EnvFile is loaded into the process environment if it exists.
	// Defaults to ".env".
	EnvFile string
}

// SettableKeys are the keys that may be stored in the settings table and
// changed with `config set`. API keys are deliberately absent.
var SettableKeys = []string{
	"public_url",
	"log.level",
	"log.format",
	"llm.provider",
	"llm.gemini.model",
	"llm.gemini.fallback_models",
	"llm.openai.model",
	"llm.anthropic.model",
	"llm.openrouter.model",
	"defaults.school_name",
	"defaults.class_name",
}

// ErrUnknownKey is returned for keys outside SettableKeys.
var ErrUnknownKey = errors.New("config: unknown or read-only key")

// envBindings maps config keys to the environment variables read for them,
// first match wins.
var envBindings = map[string][]string{
	"db_path":                    {"EDUSHEET_DB_PATH", "EDUSHEET_DB"},
	"public_url":                 {"EDUSHEET_PUBLIC_URL"},
	"http.addr":                  {"EDUSHEET_HTTP_ADDR"},
	"http.cors_origins":          {"EDUSHEET_HTTP_CORS_ORIGINS"},
	"log.level":                  {"EDUSHEET_LOG_LEVEL"},
	"log.format":                 {"EDUSHEET_LOG_FORMAT"},
	"llm.provider":               {"EDUSHEET_LLM_PROVIDER"},
	"llm.timeout":                {"EDUSHEET_LLM_TIMEOUT"},
	"llm.gemini.api_key":         {"EDUSHEET_GEMINI_API_KEY"},
	"llm.gemini.model":           {"EDUSHEET_GEMINI_MODEL"},
	"llm.gemini.fallback_models": {"EDUSHEET_GEMINI_FALLBACKS"},
	"llm.openai.api_key":         {"EDUSHEET_OPENAI_API_KEY"},
	"llm.openai.model":           {"EDUSHEET_OPENAI_MODEL"},
	"llm.openai.base_url":        {"EDUSHEET_OPENAI_BASE_URL"},
	"llm.anthropic.api_key":      {"EDUSHEET_ANTHROPIC_API_KEY"},
	"llm.anthropic.model":        {"EDUSHEET_ANTHROPIC_MODEL"},
	"llm.openrouter.api_key":     {"EDUSHEET_OPENROUTER_API_KEY"},
	"llm.openrouter.model":       {"EDUSHEET_OPENROUTER_MODEL"},
	"llm.retry.max_attempts":     {"EDUSHEET_LLM_RETRY_MAX_ATTEMPTS"},
	"defaults.school_name":       {"EDUSHEET_SCHOOL_NAME"},
	"defaults.class_name":        {"EDUSHEET_CLASS_NAME"},
}

// Loader holds the layered configuration sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader reads the config file and .env and binds the environment.
func NewLoader(opts Options) (*Loader, error) {
	v := viper.New()
	setDefaults(v)

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	file := opts.ConfigFile
	if file == "" {
		file = DefaultConfigFile()
		if _, err := os.Stat(file); err != nil {
			file = ""
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, err
		}
	}
	return &Loader{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("db_path", "")
	v.SetDefault("public_url", "http://localhost:8080/")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.gemini.model", def.Gemini.Model)
	v.SetDefault("llm.gemini.fallback_models", def.Gemini.Fallbacks)
	v.SetDefault("llm.openai.model", def.OpenAI.Model)
	v.SetDefault("llm.anthropic.model", def.Anthropic.Model)
	v.SetDefault("llm.openrouter.model", def.OpenRouter.Model)
	v.SetDefault("llm.retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", def.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", def.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", def.Retry.Multiplier)
	v.SetDefault("defaults.school_name", "")
	v.SetDefault("defaults.class_name", "")
}

// Load is NewLoader followed by Config.
func Load(opts Options) (*Config, error) {
	l, err := NewLoader(opts)
	if err != nil {
		return nil, err
	}
	return l.Config()
}

// Apply overlays stored settings. Values set here take precedence over
// every other source.
func (l *Loader) Apply(settings map[string]string) error {
	for k, val := range settings {
		if !slices.Contains(SettableKeys, k) {
			return fmt.Errorf("%w: %s", ErrUnknownKey, k)
		}
		l.v.Set(k, val)
	}
	return nil
}

// Get returns the effective value of key as a string.
func (l *Loader) Get(key string) (string, bool) {
	if !l.v.IsSet(key) {
		return "", false
	}
	val := l.v.Get(key)
	switch t := val.(type) {
	case []string:
		return strings.Join(t, ","), true
	case []any:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ","), true
	}
	return l.v.GetString(key), true
}

// Keys returns every known key in sorted order.
func (l *Loader) Keys() []string {
	keys := l.v.AllKeys()
	slices.Sort(keys)
	return keys
}

// Config resolves the layered sources into a Config.
func (l *Loader) Config() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// Comma-separated lists arrive as one element when set from a string.
	cfg.LLM.Gemini.FallbackModels = splitList(cfg.LLM.Gemini.FallbackModels)
	cfg.HTTP.CORSOrigins = splitList(cfg.HTTP.CORSOrigins)

	if cfg.DBPath == "" {
		path, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = discoverProvider(&cfg.LLM)
	}
	fillVendorKey(&cfg.LLM)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// discoverProvider prefers a provider that already has a key configured,
// then the vendors' standard key variables. Gemini is the default when no
// key is found anywhere.
func discoverProvider(c *LLMConfig) string {
	switch {
	case c.Gemini.APIKey != "":
		return llm.ProviderGemini
	case c.OpenAI.APIKey != "":
		return llm.ProviderOpenAI
	case c.Anthropic.APIKey != "":
		return llm.ProviderAnthropic
	case c.OpenRouter.APIKey != "":
		return llm.ProviderOpenRouter
	}

	found, ok := llm.DiscoverConfig()
	if !ok {
		return llm.ProviderGemini
	}
	c.Gemini.APIKey = found.Gemini.APIKey
	c.OpenAI.APIKey = found.OpenAI.APIKey
	c.Anthropic.APIKey = found.Anthropic.APIKey
	c.OpenRouter.APIKey = found.OpenRouter.APIKey
	return found.Provider
}

// vendorKeyEnv lists the vendors' own key variables per provider.
var vendorKeyEnv = map[string][]string{
	llm.ProviderGemini:     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	llm.ProviderOpenAI:     {"OPENAI_API_KEY"},
	llm.ProviderAnthropic:  {"ANTHROPIC_API_KEY"},
	llm.ProviderOpenRouter: {"OPENROUTER_API_KEY"},
}

// fillVendorKey reads the selected provider's key from the vendor variable
// when no edusheet-specific key is configured.
func fillVendorKey(c *LLMConfig) {
	var dst *string
	switch c.Provider {
	case llm.ProviderGemini:
		dst = &c.Gemini.APIKey
	case llm.ProviderOpenAI:
		dst = &c.OpenAI.APIKey
	case llm.ProviderAnthropic:
		dst = &c.Anthropic.APIKey
	case llm.ProviderOpenRouter:
		dst = &c.OpenRouter.APIKey
	default:
		return
	}
	if *dst != "" {
		return
	}
	for _, name := range vendorKeyEnv[c.Provider] {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}

func (c *Config) validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	switch c.LLM.Provider {
	case llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOpenRouter, llm.ProviderMock:
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	if c.PublicURL == "" {
		return errors.New("public_url must not be empty")
	}
	return nil
}

// LLMSettings converts the llm section for llm.NewProvider.
func (c *Config) LLMSettings() llm.Config {
	l := c.LLM
	return llm.Config{
		Provider: l.Provider,
		Gemini: llm.GeminiConfig{
			APIKey:    l.Gemini.APIKey,
			Model:     l.Gemini.Model,
			Fallbacks: l.Gemini.FallbackModels,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  l.OpenAI.APIKey,
			Model:   l.OpenAI.Model,
			BaseURL: l.OpenAI.BaseURL,
		},
		Anthropic: llm.AnthropicConfig{
			APIKey: l.Anthropic.APIKey,
			Model:  l.Anthropic.Model,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  l.OpenRouter.APIKey,
			Model:   l.OpenRouter.Model,
			BaseURL: l.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: l.Retry.MaxAttempts,
			InitialWait: l.Retry.InitialWait,
			MaxWait:     l.Retry.MaxWait,
			Multiplier:  l.Retry.Multiplier,
		},
		Timeout: l.Timeout,
	}
}

// DefaultConfigFile is $XDG_CONFIG_HOME/edusheet/config.yaml, falling back
// to ~/.config/edusheet/config.yaml.
func DefaultConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "edusheet", "config.yaml")
}

func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
