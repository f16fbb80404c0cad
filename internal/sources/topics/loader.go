package topics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the browse topics file.
type Loader struct {
	filePath string
}

// NewLoader creates a topics file loader.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the topics.yaml file.
func (l *Loader) Load() (*TopicsConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read topics file: %w", err)
	}

	var config TopicsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse topics yaml: %w", err)
	}

	return &config, nil
}
