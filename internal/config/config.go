// Package config holds runtime settings for OpenClip. Values are resolved in
// layers: built-in defaults, then an optional JSON file, then the
// command-line flags bound by the CLI. Later sources win.
package config

import "os"

// KeyEnvVar names the environment variable consulted for the store key when
// neither a flag nor the JSON file provides one.
const KeyEnvVar = "OPENCLIP_KEY"

// Config holds runtime settings for OpenClip.
//
// Fields:
//   - DBPath: the primary (history) store file.
//   - ReplicaPath: the secondary ("cloud") store file.
//   - Key: the SQLCipher key both stores are opened with. Key management
//     is out of scope; the key simply arrives as configuration.
//   - PageSize: records per history page.
type Config struct {
	DBPath      string `json:"db_path"`
	ReplicaPath string `json:"replica_path"`
	Key         string `json:"key"`
	PageSize    int    `json:"page_size"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "clipboard.db"
	c.ReplicaPath = "clipboard_cloud.db"
	c.Key = ""
	c.PageSize = 20
}

// Load constructs a Config: defaults, then the JSON file (if a path is
// given), then the key environment variable. Flag overrides are applied by
// the caller on top.
func Load(configFile string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if configFile != "" {
		if err := cfg.applyJSON(configFile); err != nil {
			return nil, err
		}
	}

	if key := os.Getenv(KeyEnvVar); key != "" {
		cfg.Key = key
	}

	return cfg, nil
}
