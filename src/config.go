package aausat

/*------------------------------------------------------------------
 *
 * Purpose:	Read the receiver configuration file.
 *
 * Description:	YAML, every key optional:
 *
 *			key: "passphrase"	# Omit to skip authentication.
 *			viterbi: true
 *			reed_solomon: true
 *			randomizer: true
 *			strip_tag: false	# Drop unchecked tag when there is no key.
 *			workers: 4
 *			log_dir: ""		# Daily packet log files here, or
 *			log_file: ""		# one packet log file.
 *			metrics_addr: ""	# e.g. ":9120" to serve /metrics.
 *
 *		Command line options override the file.
 *
 *------------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CodecConfig `yaml:",inline"`

	StripTag    bool   `yaml:"strip_tag"`
	Workers     int    `yaml:"workers"`
	LogDir      string `yaml:"log_dir"`
	LogFile     string `yaml:"log_file"`
	MetricsAddr string `yaml:"metrics_addr"`
}

const DEFAULT_WORKERS = 4

func DefaultConfig() Config {
	return Config{
		CodecConfig: DefaultCodecConfig(),
		Workers:     DEFAULT_WORKERS,
	}
}

// Looked for, in order, when no file is named.
var configSearchLocations = []string{
	"aausat.yaml",
	"/etc/aausat.yaml",
}

// LoadConfig reads path over the defaults.  An empty path means try
// the search locations and use the defaults if none exist.
func LoadConfig(path string) (Config, error) {
	var cfg = DefaultConfig()

	if path == "" {
		for _, loc := range configSearchLocations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	var f, openErr = os.Open(path) //nolint:gosec
	if openErr != nil {
		return cfg, fmt.Errorf("config: %w", openErr)
	}
	defer f.Close() //nolint:errcheck

	var err = decodeConfig(f, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func decodeConfig(r io.Reader, cfg *Config) error {
	var data, readErr = io.ReadAll(r)
	if readErr != nil {
		return readErr
	}

	return yaml.Unmarshal(data, cfg)
}

func (cfg Config) Validate() error {
	if cfg.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.LogDir != "" && cfg.LogFile != "" {
		return errors.New("config: use log_dir or log_file, not both")
	}
	return nil
}
