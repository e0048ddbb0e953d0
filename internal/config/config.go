package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration for both the client and the
// development API server.
type Config struct {
	Backend    BackendConfig    `mapstructure:"backend"`
	Chat       ChatConfig       `mapstructure:"chat"`
	VendorForm VendorFormConfig `mapstructure:"vendor_form"`
	User       UserConfig       `mapstructure:"user"`
	Log        LogConfig        `mapstructure:"log"`
	Server     ServerConfig     `mapstructure:"server"`
	Assistant  AssistantConfig  `mapstructure:"assistant"`
}

// BackendConfig points the client at the planner API.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ChatConfig bounds a single assistant turn.
type ChatConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// VendorFormConfig controls registration normalization.
type VendorFormConfig struct {
	RequireServices bool `mapstructure:"require_services"`
}

// UserConfig is the profile provisioned at startup.
type UserConfig struct {
	Name            string  `mapstructure:"name"`
	Email           string  `mapstructure:"email"`
	Phone           string  `mapstructure:"phone"`
	Role            string  `mapstructure:"role"`
	Budget          float64 `mapstructure:"budget"`
	Location        string  `mapstructure:"location"`
	StylePreference string  `mapstructure:"style_preference"`
	GuestCount      int     `mapstructure:"guest_count"`
}

// LogConfig holds slog settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ServerConfig holds settings for wedplan-api.
type ServerConfig struct {
	Port          string `mapstructure:"port"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
	DatabasePath  string `mapstructure:"database_path"`
	Seed          bool   `mapstructure:"seed"`
}

// AssistantConfig selects the backend planner.
type AssistantConfig struct {
	Provider   string `mapstructure:"provider"`
	APIKeyEnv  string `mapstructure:"api_key_env"`
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	PromptFile string `mapstructure:"prompt_file"`
}

// Load reads configuration from .env, file and env. Env var overrides use
// prefix WEDPLAN_.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("WEDPLAN_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "wedplan"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WEDPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:8001/api")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("chat.timeout", 60*time.Second)
	v.SetDefault("vendor_form.require_services", false)

	v.SetDefault("user.name", "Demo User")
	v.SetDefault("user.email", "demo@example.com")
	v.SetDefault("user.phone", "+91 9999999999")
	v.SetDefault("user.role", "customer")
	v.SetDefault("user.budget", 500000)
	v.SetDefault("user.location", "Mumbai")
	v.SetDefault("user.style_preference", "Modern")
	v.SetDefault("user.guest_count", 200)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("server.port", "8001")
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("server.database_path", filepath.Join(os.Getenv("HOME"), ".local", "share", "wedplan", "wedplan.db"))
	v.SetDefault("server.seed", true)

	v.SetDefault("assistant.provider", "offline")
	v.SetDefault("assistant.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.model", "gpt-4o-mini")
	v.SetDefault("assistant.prompt_file", "")
}

// Path returns the config file location Save writes to.
func Path() string {
	if p := os.Getenv("WEDPLAN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "wedplan", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if
// needed. The assistant API key is written as-is; prefer the env var.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.base_url", cfg.Backend.BaseURL)
	v.Set("backend.timeout", cfg.Backend.Timeout.String())
	v.Set("chat.timeout", cfg.Chat.Timeout.String())
	v.Set("vendor_form.require_services", cfg.VendorForm.RequireServices)
	v.Set("user.name", cfg.User.Name)
	v.Set("user.email", cfg.User.Email)
	v.Set("user.phone", cfg.User.Phone)
	v.Set("user.role", cfg.User.Role)
	v.Set("user.budget", cfg.User.Budget)
	v.Set("user.location", cfg.User.Location)
	v.Set("user.style_preference", cfg.User.StylePreference)
	v.Set("user.guest_count", cfg.User.GuestCount)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.file", cfg.Log.File)
	v.Set("server.port", cfg.Server.Port)
	v.Set("server.allowed_origin", cfg.Server.AllowedOrigin)
	v.Set("server.database_path", cfg.Server.DatabasePath)
	v.Set("server.seed", cfg.Server.Seed)
	v.Set("assistant.provider", cfg.Assistant.Provider)
	v.Set("assistant.api_key_env", cfg.Assistant.APIKeyEnv)
	v.Set("assistant.api_key", cfg.Assistant.APIKey)
	v.Set("assistant.model", cfg.Assistant.Model)
	v.Set("assistant.prompt_file", cfg.Assistant.PromptFile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
