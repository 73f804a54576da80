package registry

import (
	"fmt"

	"github.com/capkit-labs/capkit/internal/manifest"
)

// CoreSource tags kits discovered under the catalog root, as opposed to a
// named module root.
const CoreSource = "core"

// Source represents one location searched for kits.
type Source struct {
	Name     string // CoreSource or the module name
	BasePath string // path to the source root
}

// Descriptor identifies one discoverable kit. Descriptors are built fresh
// on every discovery pass and never mutated afterwards.
type Descriptor struct {
	Name         string            // kit directory name
	Source       string            // name of the source it was found in
	SourcePath   string            // path to the kit directory
	ManifestPath string            // path to the manifest inside SourcePath
	Meta         manifest.Metadata // parsed header fields, zero when unreadable
}

// Diagnostic records a soft failure during discovery: a source or manifest
// that could not be read. Discovery degrades instead of failing and hands
// callers what it skipped.
type Diagnostic struct {
	Source string
	Path   string
	Err    error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("source %s: %s: %v", d.Source, d.Path, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// SyncError records one kit whose copy failed during install.
type SyncError struct {
	Kit string
	Err error
}

func (e SyncError) Error() string { return fmt.Sprintf("%s: %v", e.Kit, e.Err) }

func (e SyncError) Unwrap() error { return e.Err }

// SyncResult captures the outcome of one sync pass against one target.
// Skipped is reserved for kits intentionally left unprocessed; no current
// flow sets it.
type SyncResult struct {
	Installed int
	Skipped   int
	Errors    []SyncError
}
