package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/univalle/workload-harvester/config"
)

// loadConfig reads the TOML configuration the harvest command runs with,
// following the same search path convention (home-directory dotfolder,
// explicit --config override) the rest of this codebase's commands use.
func loadConfig(cfgFile string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, configDir))
		v.SetConfigName(strings.TrimSuffix(configName, filepath.Ext(configName)))
	}
	v.AutomaticEnv()

	cfg := config.DefaultConfig()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
