// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environement variables.
type Config struct {
	ServerAddress   string `mapstructure:"SERVER_ADDRESS"`
	Environment     string `mapstructure:"GO_ENV"`
	AccrualEnabled  bool   `mapstructure:"ACCRUAL_ENABLED"`
	AccrualSchedule string `mapstructure:"ACCRUAL_SCHEDULE"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
