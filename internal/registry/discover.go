package registry

import (
	"os"
	"path/filepath"

	"github.com/capkit-labs/capkit/internal/logging"
	"github.com/capkit-labs/capkit/internal/manifest"
)

// DefaultKitsDir is the subfolder under every source root that holds kits.
const DefaultKitsDir = "kits"

// Discoverer scans the core catalog and selected module roots for kits.
//
// KitsDir and ManifestName default to the standard layout convention;
// tests exercise alternate layouts by overriding them after construction.
type Discoverer struct {
	CatalogRoot string
	ModulesRoot string

	KitsDir      string
	ManifestName string
}

// NewDiscoverer returns a Discoverer over the standard source layout.
func NewDiscoverer(catalogRoot, modulesRoot string) *Discoverer {
	return &Discoverer{
		CatalogRoot:  catalogRoot,
		ModulesRoot:  modulesRoot,
		KitsDir:      DefaultKitsDir,
		ManifestName: manifest.FileName,
	}
}

// Sources returns the roots a discovery pass visits: the core catalog
// first, then the given modules in caller order.
func (d *Discoverer) Sources(modules []string) []Source {
	sources := make([]Source, 0, len(modules)+1)
	sources = append(sources, Source{Name: CoreSource, BasePath: d.CatalogRoot})
	for _, m := range modules {
		sources = append(sources, Source{Name: m, BasePath: filepath.Join(d.ModulesRoot, m)})
	}
	return sources
}

// Discover walks every source and returns the catalog of kits found, in
// source order and then directory enumeration order within each source.
//
// Discovery never fails. A source without a kits folder contributes
// nothing, an unreadable folder contributes nothing plus a Diagnostic, and
// a kit whose manifest turns unreadable between the existence check and
// the read keeps its catalog slot with zero metadata. Duplicate names
// across sources are all kept; install order decides which copy ends up
// owning the target directory.
func (d *Discoverer) Discover(modules []string) ([]Descriptor, []Diagnostic) {
	log := logging.GetLogger("registry.discover")

	var catalog []Descriptor
	var diags []Diagnostic

	for _, src := range d.Sources(modules) {
		kitsPath := filepath.Join(src.BasePath, d.KitsDir)

		entries, err := os.ReadDir(kitsPath)
		if err != nil {
			if os.IsNotExist(err) {
				// A root with no kits folder is a normal state.
				continue
			}
			log.Warn().Str("source", src.Name).Str("path", kitsPath).Err(err).
				Msg("skipping unreadable source")
			diags = append(diags, Diagnostic{Source: src.Name, Path: kitsPath, Err: err})
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			kitPath := filepath.Join(kitsPath, entry.Name())
			manifestPath := filepath.Join(kitPath, d.ManifestName)
			info, err := os.Stat(manifestPath)
			if err != nil || info.IsDir() {
				continue
			}

			meta, err := manifest.ParseMetadata(manifestPath)
			if err != nil {
				// Manifest raced away after the stat. The kit stays in the
				// catalog with default metadata.
				log.Warn().Str("kit", entry.Name()).Str("source", src.Name).Err(err).
					Msg("manifest unreadable")
				diags = append(diags, Diagnostic{Source: src.Name, Path: manifestPath, Err: err})
				meta = manifest.Metadata{}
			}

			catalog = append(catalog, Descriptor{
				Name:         entry.Name(),
				Source:       src.Name,
				SourcePath:   kitPath,
				ManifestPath: manifestPath,
				Meta:         meta,
			})
		}
	}

	log.Debug().Int("kits", len(catalog)).Int("diagnostics", len(diags)).Msg("discovery complete")
	return catalog, diags
}

// Select filters a discovered catalog down to the given module selection:
// core kits always pass, module kits pass when their module is listed.
func Select(catalog []Descriptor, modules []string) []Descriptor {
	allowed := make(map[string]bool, len(modules)+1)
	allowed[CoreSource] = true
	for _, m := range modules {
		allowed[m] = true
	}

	var selected []Descriptor
	for _, kit := range catalog {
		if allowed[kit.Source] {
			selected = append(selected, kit)
		}
	}
	return selected
}

// Resolve returns the catalog entry that would own the installed directory
// for name. With duplicate names the last match wins, because install order
// decides the final on-disk state.
func Resolve(catalog []Descriptor, name string) (Descriptor, bool) {
	for i := len(catalog) - 1; i >= 0; i-- {
		if catalog[i].Name == name {
			return catalog[i], true
		}
	}
	return Descriptor{}, false
}
