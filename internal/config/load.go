package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Load decodes a YAML document into a Config seeded with Default(),
// so any field the document omits keeps its default value, then
// validates the result. On success it also returns any non-fatal
// warnings produced during validation (e.g. a dropped invalid
// numbering format).
func Load(yamlDoc []byte) (*Config, []string, error) {
	cfg := Default()
	if len(yamlDoc) > 0 {
		if err := yaml.Unmarshal(yamlDoc, cfg); err != nil {
			return nil, nil, fmt.Errorf("parsing configuration: %w", err)
		}
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}
