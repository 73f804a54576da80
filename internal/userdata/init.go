package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/capkit-labs/capkit/internal/manifest"
	"github.com/capkit-labs/capkit/internal/platform"
	"github.com/capkit-labs/capkit/internal/registry"
)

// starterKitName is the kit InitGlobal seeds the fresh catalog with.
const starterKitName = "getting-started"

// Manifest for the starter kit.
const starterManifestContent = `---
name: getting-started
description: A starter kit showing the KIT.md layout
---

# Getting started

Edit this file to describe what the assistant should know or do when this
kit is installed. Everything below the closing ` + "`---`" + ` marker is free-form
instructional text; only the header fields above are read by the CLI.

Additional files in this directory are copied alongside the manifest.
`

// Companion resource file for the starter kit.
const starterReferenceContent = `# Reference

Put supporting material for the kit here. The whole directory is copied
into each target, so relative links between kit files keep working.
`

// InitGlobal creates the global source layout: the catalog root with its
// kits folder, the modules root, and a starter kit so discovery has
// something to find. Progress goes to w; existing items are skipped.
func InitGlobal(w io.Writer) error {
	catalogRoot, err := GetCatalogRoot()
	if err != nil {
		return err
	}
	modulesRoot, err := GetModulesRoot()
	if err != nil {
		return err
	}

	kitsDir := filepath.Join(catalogRoot, registry.DefaultKitsDir)
	if err := ensureDir(w, kitsDir, DirPermNormal); err != nil {
		return err
	}
	if err := ensureDir(w, modulesRoot, DirPermNormal); err != nil {
		return err
	}

	starterDir := filepath.Join(kitsDir, starterKitName)
	if err := ensureDir(w, starterDir, DirPermNormal); err != nil {
		return err
	}
	manifestPath := filepath.Join(starterDir, manifest.FileName)
	if err := ensureFile(w, manifestPath, starterManifestContent, FilePermNormal); err != nil {
		return err
	}
	referencePath := filepath.Join(starterDir, "reference.md")
	if err := ensureFile(w, referencePath, starterReferenceContent, FilePermNormal); err != nil {
		return err
	}

	return nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
