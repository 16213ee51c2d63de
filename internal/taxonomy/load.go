package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load builds the registry from the built-in defaults, optionally merging a
// YAML override file. Sections present in the file replace the corresponding
// default section wholesale; absent sections keep the defaults. The merged
// registry is validated before it is returned.
func Load(path string) (Registry, error) {
	reg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Registry{}, fmt.Errorf("read registry file: %w", err)
		}

		var override Registry
		if err := yaml.Unmarshal(raw, &override); err != nil {
			return Registry{}, fmt.Errorf("parse registry file %s: %w", path, err)
		}
		reg = merge(reg, override)
	}

	if err := reg.Validate(); err != nil {
		return Registry{}, fmt.Errorf("invalid registry: %w", err)
	}
	return reg, nil
}

func merge(base, override Registry) Registry {
	if len(override.Active) > 0 {
		base.Active = override.Active
	}
	if len(override.Countries) > 0 {
		base.Countries = override.Countries
	}
	if len(override.GlobalTopics) > 0 {
		base.GlobalTopics = override.GlobalTopics
	}
	if len(override.ViralTopics) > 0 {
		base.ViralTopics = override.ViralTopics
	}
	if len(override.ViralPeople) > 0 {
		base.ViralPeople = override.ViralPeople
	}
	if len(override.Weights) > 0 {
		base.Weights = override.Weights
	}
	return base
}
