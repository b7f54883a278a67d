package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vet-practice/internal/platform/logger"
)

const EnvPrefix = "PRACTICE"

// Config de la demo. Prioridad: flag > env (PRACTICE_*) > archivo > default.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	AppName   string `mapstructure:"app_name"`

	// Dataset: path a un YAML de dataset. Vacío = dataset de ejemplo embebido.
	Dataset string `mapstructure:"dataset"`
}

// flag name -> key de viper
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"dataset":    "dataset",
}

// Load arma la config. configFile es opcional (yaml/json/toml según extensión);
// flags puede ser nil.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("app_name", "vet-practice")
	v.SetDefault("dataset", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %q: %w", configFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// LoggerOptions traduce la config a opciones del logger.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.LogLevel),
		Format: logger.ParseFormat(c.LogFormat),
		App:    c.AppName,
	}
}
