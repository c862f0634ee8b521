package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
	"gopkg.in/yaml.v3"
)

// File is the structure of a scenario file.
type File struct {
	Scenarios []domain.Scenario `yaml:"scenarios" json:"scenarios"`
}

// LoadFile reads scenarios from a YAML or JSON file, chosen by extension.
// Unnamed scenarios are named after their position ("scenario-1", ...).
func LoadFile(path string) ([]domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)))
}

// Parse decodes scenario file content. ext selects the format: ".json" for JSON,
// anything else for YAML.
func Parse(data []byte, ext string) ([]domain.Scenario, error) {
	var f File
	if ext == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse scenario json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse scenario yaml: %w", err)
		}
	}

	seen := make(map[string]bool, len(f.Scenarios))
	for i := range f.Scenarios {
		sc := &f.Scenarios[i]
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
	return f.Scenarios, nil
}

// Find returns the scenario called name.
func Find(scenarios []domain.Scenario, name string) (domain.Scenario, error) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, nil
		}
	}
	return domain.Scenario{}, fmt.Errorf("scenario %q not found", name)
}
