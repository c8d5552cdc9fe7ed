// Package config loads the server configuration from a YAML file, the
// environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SITEWIZARD_SERVER_ADDR.
const EnvPrefix = "SITEWIZARD"

// Config is the complete server configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Generation GenerationConfig `mapstructure:"generation"`
	Wizard     WizardConfig     `mapstructure:"wizard"`
	Live       LiveConfig       `mapstructure:"live"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig configures the root logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// Format returns the logging format name.
func (c LogConfig) Format() string {
	if c.JSON {
		return "json"
	}
	return "text"
}

// GenerationConfig configures the text generation backend. An empty API
// key runs the wizard offline on fallbacks.
type GenerationConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// WizardConfig tunes the wizard's timers. Topic queries of MinQueryLength
// runes or fewer never reach the generator.
type WizardConfig struct {
	SuggestDebounce time.Duration `mapstructure:"suggest_debounce" validate:"gt=0"`
	MinQueryLength  int           `mapstructure:"min_query_length" validate:"gt=0"`
	PublishDelay    time.Duration `mapstructure:"publish_delay" validate:"gte=0"`
	DefaultLanguage string        `mapstructure:"default_language" validate:"oneof=en ar"`
}

// LiveConfig configures live sessions.
type LiveConfig struct {
	AllowedOrigins []string      `mapstructure:"allowed_origins" validate:"dive,origin"`
	SessionTTL     time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	// MaxSessions caps concurrent connections; zero means no limit.
	MaxSessions  int           `mapstructure:"max_sessions" validate:"gte=0"`
	EventTimeout time.Duration `mapstructure:"event_timeout" validate:"gt=0"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.model", "gemini-2.5-flash")
	v.SetDefault("generation.timeout", 20*time.Second)

	v.SetDefault("wizard.suggest_debounce", 600*time.Millisecond)
	v.SetDefault("wizard.min_query_length", 2)
	v.SetDefault("wizard.publish_delay", 2*time.Second)
	v.SetDefault("wizard.default_language", "en")

	v.SetDefault("live.allowed_origins", []string{})
	v.SetDefault("live.session_ttl", 30*time.Minute)
	v.SetDefault("live.max_sessions", 0)
	v.SetDefault("live.event_timeout", 3*time.Second)
}

// Load reads the configuration. path names an explicit config file; when it
// is empty ./sitewizard.yaml is used if present. Environment variables
// override file values, and GEMINI_API_KEY fills in a missing API key.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("sitewizard")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Generation.APIKey == "" {
		cfg.Generation.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
