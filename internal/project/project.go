package project

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const (
	capkitDir   = ".capkit"
	projectFile = "project.yaml"
)

// Config represents the .capkit/project.yaml structure.
type Config struct {
	// Tools lists the AI tools whose target directories receive kits.
	Tools []string `yaml:"tools"`
	// Modules lists the selected module roots, in install order.
	Modules []string `yaml:"modules,omitempty"`
}

// ConfigPath returns the full path to .capkit/project.yaml for a project.
func ConfigPath(projectDir string) string {
	return filepath.Join(projectDir, capkitDir, projectFile)
}

// Load reads and parses .capkit/project.yaml from the given project directory.
func Load(projectDir string) (*Config, error) {
	path := ConfigPath(projectDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing project config: %w", err)
	}

	return &config, nil
}

// Save writes the project config to .capkit/project.yaml.
func Save(projectDir string, config *Config) error {
	path := ConfigPath(projectDir)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling project config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}

	return nil
}

// Init creates the .capkit/ directory with a fresh project.yaml. It refuses
// to clobber an existing one.
func Init(projectDir string, tools []string) error {
	path := ConfigPath(projectDir)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("project already initialized: %s exists", path)
	}

	dir := filepath.Join(projectDir, capkitDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", capkitDir, err)
	}

	return Save(projectDir, &Config{Tools: tools})
}
