// Package registry discovers kits across the core catalog and module
// sources and syncs a selected catalog into target directories. Every pass
// is best-effort: discovery degrades per source, installs degrade per kit,
// and nothing here aborts a batch over one failure.
package registry
