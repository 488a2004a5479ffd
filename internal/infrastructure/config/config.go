// Package config loads application configuration from a YAML file with
// environment variable overrides. The loaded Config is passed explicitly into
// constructors; core logic never reads ambient configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Seed       SeedConfig       `mapstructure:"seed"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // "sqlite" or "mysql"
	Path            string `mapstructure:"path"`   // sqlite file path
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// OpenAIConfig carries upstream provider credentials and model selection.
// APIKey is required for any generation attempt; its absence is a
// configuration error reported before the first upstream call.
type OpenAIConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	TextModel      string        `mapstructure:"text_model"`
	ImageModel     string        `mapstructure:"image_model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// GenerationConfig tunes the generation pipeline.
type GenerationConfig struct {
	SystemPrompt    string  `mapstructure:"system_prompt"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxTokens       int     `mapstructure:"max_tokens"`
	ImageSize       string  `mapstructure:"image_size"`
	ImageQuality    string  `mapstructure:"image_quality"`
	ImageStyle      string  `mapstructure:"image_style"`      // style suffix appended to image prompts
	ProcessImages   bool    `mapstructure:"process_images"`   // download + thumbnail; URL-mode fallback when false
	MaxImagePrompt  int     `mapstructure:"max_image_prompt"` // character cap before submission
	MaxFictionChars int     `mapstructure:"max_fiction_chars"`
}

// SeedConfig points at an optional JSON dataset of categories and parameters
// imported once when the store is empty.
type SeedConfig struct {
	Path    string `mapstructure:"path"`
	Enabled bool   `mapstructure:"enabled"`
}

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("LOREFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is acceptable; env vars and defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "./data/loreforge.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.database", "loreforge")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 50)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// OpenAI defaults (api_key must come from config or LOREFORGE_OPENAI_API_KEY)
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.base_url", "")
	viper.SetDefault("openai.text_model", "gpt-4o")
	viper.SetDefault("openai.image_model", "dall-e-3")
	viper.SetDefault("openai.request_timeout", "120s")

	// Generation defaults
	viper.SetDefault("generation.system_prompt",
		"You are a speculative fiction writer. Write a short, vivid story using the given premise. Begin with a line \"Title: <title>\".")
	viper.SetDefault("generation.temperature", 0.9)
	viper.SetDefault("generation.max_tokens", 1200)
	viper.SetDefault("generation.image_size", "1024x1024")
	viper.SetDefault("generation.image_quality", "standard")
	viper.SetDefault("generation.image_style", "digital painting, dramatic lighting, highly detailed")
	viper.SetDefault("generation.process_images", true)
	viper.SetDefault("generation.max_image_prompt", 4000)
	viper.SetDefault("generation.max_fiction_chars", 50000)

	// Seed defaults
	viper.SetDefault("seed.enabled", true)
	viper.SetDefault("seed.path", "./configs/seed.json")
}
