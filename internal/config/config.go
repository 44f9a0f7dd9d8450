package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Export   ExportConfig   `mapstructure:"export"`
	Evidence EvidenceConfig `mapstructure:"evidence"`
	LogLevel string         `mapstructure:"log_level"`
}

// LLMConfig holds the completion provider configuration
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // mock, openai or gemini
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// StorageConfig selects where entity slots are persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // sqlite, bolt or memory
	Path    string `mapstructure:"path"`
}

// ExportConfig holds the paginated document layout, in millimetres except
// LineWidth which counts characters.
type ExportConfig struct {
	LineWidth  int     `mapstructure:"line_width"`
	LineHeight float64 `mapstructure:"line_height"`
	TopMargin  float64 `mapstructure:"top_margin"`
	PageHeight float64 `mapstructure:"page_height"`
	LeftMargin float64 `mapstructure:"left_margin"`
	FontSize   float64 `mapstructure:"font_size"`
}

// EvidenceConfig bounds the generated image preview.
type EvidenceConfig struct {
	PreviewWidth  int `mapstructure:"preview_width"`
	PreviewHeight int `mapstructure:"preview_height"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "mock")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("export.line_width", 90)
	v.SetDefault("export.line_height", 7)
	v.SetDefault("export.top_margin", 20)
	v.SetDefault("export.page_height", 280)
	v.SetDefault("export.left_margin", 10)
	v.SetDefault("export.font_size", 10)
	v.SetDefault("evidence.preview_width", 200)
	v.SetDefault("evidence.preview_height", 200)
	v.SetDefault("log_level", "info")
}

// Load loads the configuration from config.yaml (or CONFIG_PATH), applying
// defaults and CASEHELPER_* environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("casehelper")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// keys without a default are invisible to Unmarshal unless bound
	for _, key := range []string{"llm.base_url", "llm.api_key", "llm.model", "storage.path"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
