// Config loading for the crate CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/cratedig/crate/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir      = "data_dir"
	cfgKeyFetchTimeout = "fetch_timeout"
	cfgKeyUserAgent    = "user_agent"
)

// cliConfig is the loaded viper instance, set by PersistentPreRunE.
var cliConfig *viper.Viper

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# crate configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Timeout for metadata fetches (optional, default 15s)
# fetch_timeout: 15s

# User-Agent header for metadata fetches (optional)
# user_agent:
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyFetchTimeout, types.DefaultFetchTimeout)
	v.SetDefault(cfgKeyUserAgent, types.DefaultUserAgent)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// storeConfig builds a types.Config from the loaded configuration and
// the resolved data directory.
func storeConfig() (types.Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{DataDir: dataDir}
	if cliConfig != nil {
		cfg.FetchTimeout = cliConfig.GetDuration(cfgKeyFetchTimeout)
		cfg.UserAgent = cliConfig.GetString(cfgKeyUserAgent)
	}
	return cfg.WithDefaults(), nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
