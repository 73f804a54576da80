package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/capkit-labs/capkit/internal/manifest"
	"github.com/capkit-labs/capkit/internal/registry"
	"github.com/capkit-labs/capkit/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	listModules    []string
	listTarget     string
	listProjectDir string
	listAll        bool
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available or installed kits",
	Long: `List kits available across the core catalog and the selected modules, or
every module with --all. With --target, list the kits currently installed
in a target directory instead.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringArrayVar(&listModules, "module", nil, "Module to include (repeatable)")
	listCmd.Flags().StringVar(&listTarget, "target", "", "List kits installed in this directory instead")
	listCmd.Flags().StringVar(&listProjectDir, "project", ".", "Project directory holding .capkit/project.yaml")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include every module, not just the selected ones")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents one kit for display.
type listEntry struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

func runList(cmd *cobra.Command, args []string) error {
	var entries []listEntry
	var err error

	if listTarget != "" {
		entries, err = installedEntries(listTarget, cmd.ErrOrStderr())
	} else {
		entries, err = availableEntries(listModules, listProjectDir, listAll, cmd.ErrOrStderr())
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		if listTarget != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No kits installed.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No kits available.")
		}
		return nil
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tDESCRIPTION")
	for _, e := range entries {
		desc := e.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Source, truncate(desc, 60))
	}
	return w.Flush()
}

// discoverAll walks the core catalog and every module present on disk,
// printing discovery diagnostics to stderr.
func discoverAll(stderr io.Writer) ([]registry.Descriptor, error) {
	catalogRoot, err := userdata.GetCatalogRoot()
	if err != nil {
		return nil, fmt.Errorf("resolving catalog root: %w", err)
	}
	modulesRoot, err := userdata.GetModulesRoot()
	if err != nil {
		return nil, fmt.Errorf("resolving modules root: %w", err)
	}
	modules, err := userdata.ListModules()
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}

	d := registry.NewDiscoverer(catalogRoot, modulesRoot)
	catalog, diags := d.Discover(modules)
	for _, diag := range diags {
		fmt.Fprintf(stderr, "warning: %v\n", diag)
	}
	return catalog, nil
}

// availableEntries lists the kits a sync could install. The full catalog is
// discovered once, then narrowed to the module selection unless all is set.
func availableEntries(flagModules []string, projectDir string, all bool, stderr io.Writer) ([]listEntry, error) {
	catalog, err := discoverAll(stderr)
	if err != nil {
		return nil, err
	}
	if !all {
		catalog = registry.Select(catalog, resolveModules(flagModules, projectDir))
	}

	entries := make([]listEntry, 0, len(catalog))
	for _, kit := range catalog {
		entries = append(entries, listEntry{
			Name:        kit.Name,
			Source:      kit.Source,
			Description: kit.Meta.Description,
		})
	}
	return entries, nil
}

// installedEntries lists the kit directories present in a target: immediate
// subdirectories carrying a manifest, same shape the sync engine manages.
// Each is attributed to the catalog entry that owns it; a kit no source
// carries anymore shows "-".
func installedEntries(target string, stderr io.Writer) ([]listEntry, error) {
	dirEntries, err := os.ReadDir(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading target %s: %w", target, err)
	}

	catalog, err := discoverAll(stderr)
	if err != nil {
		return nil, err
	}

	var entries []listEntry
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			continue
		}
		manifestPath := filepath.Join(target, entry.Name(), manifest.FileName)
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}
		meta, err := manifest.ParseMetadata(manifestPath)
		if err != nil {
			meta = manifest.Metadata{}
		}

		source := "-"
		if owner, ok := registry.Resolve(catalog, entry.Name()); ok {
			source = owner.Source
		}
		entries = append(entries, listEntry{
			Name:        entry.Name(),
			Source:      source,
			Description: meta.Description,
		})
	}
	return entries, nil
}
