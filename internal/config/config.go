package config

import (
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"goprofile/internal"
	"goprofile/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g. GOPROFILE_WORKERS
const EnvPrefix = "GOPROFILE"

// Config represents the complete application configuration
type Config struct {
	LogLevel string       `mapstructure:"log_level" yaml:"log_level"`
	Workers  int          `mapstructure:"workers" yaml:"workers"`
	TopN     int          `mapstructure:"top_n" yaml:"top_n"`
	Server   ServerConfig `mapstructure:"server" yaml:"server"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string `mapstructure:"port" yaml:"port"`
	GinMode     string `mapstructure:"gin_mode" yaml:"gin_mode"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing precedence. A .env file in the working directory
// is loaded first when present.
func Load(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("top_n", 10)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.max_upload_mb", 32)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "read config %s", cfgFile))
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "unmarshal config"))
	}

	if err := Validate(&c); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &c, nil
}

// Validate checks value ranges
func Validate(c *Config) error {
	if _, ok := internal.ParseLevel(c.LogLevel); !ok {
		return errors.ConfigInvalid("unknown log_level " + c.LogLevel)
	}
	if c.Workers < 1 {
		return errors.ConfigInvalid("workers must be at least 1")
	}
	if c.TopN < 1 {
		return errors.ConfigInvalid("top_n must be at least 1")
	}
	if c.Server.Port == "" {
		return errors.ConfigInvalid("server.port is required")
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("server.gin_mode must be debug, release or test")
	}
	if c.Server.MaxUploadMB < 1 {
		return errors.ConfigInvalid("server.max_upload_mb must be at least 1")
	}
	return nil
}

// Logger builds the application logger at the configured level
func (c *Config) Logger() *internal.Logger {
	level, _ := internal.ParseLevel(c.LogLevel)
	return internal.NewLogger(level)
}
