//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/capkit-labs/capkit/internal/registry"
	"github.com/capkit-labs/capkit/internal/userdata"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // CAPKIT_HOME — contains catalog/ and modules/
	ProjectDir string // A mock project directory
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so all operations are sandboxed. The env vars are restored
// after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}

	t.Setenv("CAPKIT_HOME", env.HomeDir)
	t.Setenv("CAPKIT_CATALOG", "")
	t.Setenv("CAPKIT_MODULES", "")

	return env
}

// discoverer builds a Discoverer over the sandboxed source layout.
func discoverer(t *testing.T) *registry.Discoverer {
	t.Helper()

	catalogRoot, err := userdata.GetCatalogRoot()
	if err != nil {
		t.Fatalf("resolving catalog root: %v", err)
	}
	modulesRoot, err := userdata.GetModulesRoot()
	if err != nil {
		t.Fatalf("resolving modules root: %v", err)
	}
	return registry.NewDiscoverer(catalogRoot, modulesRoot)
}

// writeKit drops a kit directory with a manifest and extra files under the
// given source root.
func writeKit(t *testing.T, sourceRoot, name, manifestContent string, files map[string]string) string {
	t.Helper()

	kitDir := filepath.Join(sourceRoot, registry.DefaultKitsDir, name)
	if err := os.MkdirAll(kitDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(kitDir, "KIT.md"), []byte(manifestContent), 0644); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		path := filepath.Join(kitDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return kitDir
}

// catalogRootDir returns the sandboxed catalog root path.
func catalogRootDir(t *testing.T) string {
	t.Helper()
	root, err := userdata.GetCatalogRoot()
	if err != nil {
		t.Fatal(err)
	}
	return root
}

// moduleRootDir returns (and creates) the root for a named module.
func moduleRootDir(t *testing.T, name string) string {
	t.Helper()
	modulesRoot, err := userdata.GetModulesRoot()
	if err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(modulesRoot, name)
	if err := os.MkdirAll(filepath.Join(root, registry.DefaultKitsDir), 0755); err != nil {
		t.Fatal(err)
	}
	return root
}
