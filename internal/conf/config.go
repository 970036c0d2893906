// Package conf loads HR Hub settings from config file, environment and
// flags via viper.
package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds the runtime configuration for the notification center.
type Settings struct {
	// Debug enables debug logging
	Debug bool `mapstructure:"debug"`
	// DataDir is the directory holding the persisted snapshot
	DataDir string `mapstructure:"datadir"`
	// RetentionDays is the age threshold for cleaning read notifications
	RetentionDays int `mapstructure:"retentiondays"`
	// SeedUsers are the user identifiers seeded with default configs
	SeedUsers []string `mapstructure:"seedusers"`
	// Host is the HTTP listen address
	Host string `mapstructure:"host"`
	// Port is the HTTP listen port
	Port string `mapstructure:"port"`
}

// Load reads settings from hrhub.yaml (working directory, ~/.config/hrhub,
// /etc/hrhub), HRHUB_* environment variables and any flags already bound to
// viper. A missing config file is fine; defaults apply.
func Load() (*Settings, error) {
	viper.SetConfigName("hrhub")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/hrhub")
	viper.AddConfigPath("/etc/hrhub")

	viper.SetEnvPrefix("hrhub")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return settings, nil
}

func setDefaults() {
	viper.SetDefault("debug", false)
	viper.SetDefault("datadir", "data")
	viper.SetDefault("retentiondays", 30)
	viper.SetDefault("seedusers", []string{"admin@hrhub.local", "user@hrhub.local"})
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", "8080")
}
