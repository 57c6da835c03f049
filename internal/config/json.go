package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// applyJSON overlays c with values from a JSON file. Only fields present in
// the file override the current values.
func (c *Config) applyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode into a copy of the current values so absent keys keep their
	// defaults.
	overlay := *c
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	*c = overlay
	return nil
}
