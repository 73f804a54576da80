package userdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/capkit-labs/capkit/internal/branding"
	"github.com/capkit-labs/capkit/internal/config"
)

// Directory name constants for the source layout convention.
const (
	// CatalogDir holds the core kit catalog under the home root.
	CatalogDir = "catalog"
	// ModulesDir holds one subdirectory per module under the home root.
	ModulesDir = "modules"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetCatalogRoot returns the path to the core catalog root.
//
// Resolution order: the CAPKIT_CATALOG env var, then $CAPKIT_HOME/catalog
// (platform-team mode), then the catalog_dir config key, then
// ~/.capkit/catalog.
func GetCatalogRoot() (string, error) {
	return resolveRoot("CATALOG", "catalog_dir", CatalogDir)
}

// GetModulesRoot returns the path to the modules root, resolved the same
// way as the catalog root (CAPKIT_MODULES, $CAPKIT_HOME/modules,
// modules_dir, ~/.capkit/modules).
func GetModulesRoot() (string, error) {
	return resolveRoot("MODULES", "modules_dir", ModulesDir)
}

func resolveRoot(envSuffix, configKey, dirName string) (string, error) {
	if v := os.Getenv(branding.EnvVar(envSuffix)); v != "" {
		return v, nil
	}
	if home := os.Getenv(branding.EnvVar("HOME")); home != "" {
		return filepath.Join(home, dirName), nil
	}
	if v := config.Get(configKey); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir(), dirName), nil
}

// ListModules returns the names of the modules available under the modules
// root: its immediate subdirectories, dot-entries skipped. A missing root
// means no modules, not an error.
func ListModules() ([]string, error) {
	root, err := GetModulesRoot()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading modules directory %s: %w", root, err)
	}

	var modules []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			modules = append(modules, entry.Name())
		}
	}
	return modules, nil
}
