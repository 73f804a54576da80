package registry

import (
	"os"
	"path/filepath"

	"github.com/capkit-labs/capkit/internal/logging"
	"github.com/capkit-labs/capkit/internal/manifest"
)

// Cleanup removes from targetDir every immediate entry the engine manages
// and returns how many it removed: entries whose names match a kit in
// catalog, plus kit directories an earlier pass installed whose names the
// catalog no longer carries. An installed kit is recognized by its manifest
// file; entries with neither a catalog name nor a manifest are never
// touched, whatever they are. A missing or unreadable target means nothing
// to clean. A removal that fails is logged and left in place for the
// install pass to overwrite.
func Cleanup(targetDir string, catalog []Descriptor) int {
	log := logging.GetLogger("registry.sync")

	entries, err := os.ReadDir(targetDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Str("target", targetDir).Err(err).Msg("cleanup skipped, target unreadable")
		}
		return 0
	}

	names := make(map[string]bool, len(catalog))
	for _, kit := range catalog {
		names[kit.Name] = true
	}

	removed := 0
	for _, entry := range entries {
		if !names[entry.Name()] && !installedKit(targetDir, entry) {
			continue
		}
		path := filepath.Join(targetDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			log.Warn().Str("path", path).Err(err).Msg("removal failed")
			continue
		}
		removed++
	}

	log.Debug().Str("target", targetDir).Int("removed", removed).Msg("cleanup complete")
	return removed
}

// installedKit reports whether entry is a directory holding a manifest, the
// shape every kit the engine installs has.
func installedKit(targetDir string, entry os.DirEntry) bool {
	if !entry.IsDir() {
		return false
	}
	_, err := os.Stat(filepath.Join(targetDir, entry.Name(), manifest.FileName))
	return err == nil
}

// Install copies every kit in catalog into targetDir under the kit's name,
// creating the target as needed. One kit's failure is recorded and the
// batch moves on; Installed counts only clean copies.
func Install(targetDir string, catalog []Descriptor) SyncResult {
	log := logging.GetLogger("registry.sync")

	var result SyncResult
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		// Each copy below will fail and record its own error.
		log.Warn().Str("target", targetDir).Err(err).Msg("creating target failed")
	}

	for _, kit := range catalog {
		dst := filepath.Join(targetDir, kit.Name)
		if err := copyTree(kit.SourcePath, dst); err != nil {
			log.Warn().Str("kit", kit.Name).Err(err).Msg("install failed")
			result.Errors = append(result.Errors, SyncError{Kit: kit.Name, Err: err})
			continue
		}
		result.Installed++
		log.Debug().Str("kit", kit.Name).Str("source", kit.Source).Str("target", targetDir).
			Msg("kit installed")
	}
	return result
}

// Sync makes targetDir hold exactly the kits in catalog: stale managed
// copies are removed first, then every kit is copied fresh. An empty
// catalog is a no-op that leaves the target alone, because deselecting
// everything is not a request to wipe the target.
func Sync(targetDir string, catalog []Descriptor) SyncResult {
	if len(catalog) == 0 {
		return SyncResult{}
	}
	Cleanup(targetDir, catalog)
	return Install(targetDir, catalog)
}

// SyncTarget discovers the catalog for the given module selection and syncs
// it into targetDir. Discovery diagnostics are logged; the sync result
// carries the per-kit outcome.
func (d *Discoverer) SyncTarget(targetDir string, modules []string) SyncResult {
	catalog, diags := d.Discover(modules)
	if len(diags) > 0 {
		log := logging.GetLogger("registry.sync")
		for _, diag := range diags {
			log.Warn().Str("source", diag.Source).Str("path", diag.Path).Err(diag.Err).
				Msg("discovery degraded")
		}
	}
	return Sync(targetDir, catalog)
}
