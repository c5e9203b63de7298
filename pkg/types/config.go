package types

import (
	"errors"
	"time"
)

// Fetch defaults used when the config file does not override them.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultUserAgent    = "crate/1.0 (+https://github.com/cratedig/crate)"
)

// Config holds store location and metadata-fetch parameters.
type Config struct {
	DataDir      string        `json:"data_dir" yaml:"data_dir"`
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`
	UserAgent    string        `json:"user_agent" yaml:"user_agent"`
}

// Config validation errors.
var (
	ErrDataDirEmpty        = errors.New("data dir must not be empty")
	ErrFetchTimeoutInvalid = errors.New("fetch timeout must be positive")
)

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.FetchTimeout < 0 {
		return ErrFetchTimeoutInvalid
	}
	return nil
}

// WithDefaults returns a copy of the config with zero-valued fetch
// settings replaced by the package defaults.
func (c Config) WithDefaults() Config {
	if c.FetchTimeout == 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}
