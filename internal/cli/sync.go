package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"text/tabwriter"

	"github.com/capkit-labs/capkit/internal/branding"
	"github.com/capkit-labs/capkit/internal/config"
	"github.com/capkit-labs/capkit/internal/project"
	"github.com/capkit-labs/capkit/internal/registry"
	"github.com/capkit-labs/capkit/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	syncModules    []string
	syncTargets    []string
	syncProjectDir string
	syncDryRun     bool
	syncJSON       bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync selected kits into target directories",
	Long: `Discover kits across the core catalog and the selected modules, then make
each target directory hold exactly that set: stale managed kits are removed,
every selected kit is copied fresh, and unrelated target content is left
alone.

Targets default to the tool directories declared in .capkit/project.yaml;
modules default from the same file, then from the default_modules config
key. Explicit --target and --module flags override both.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringArrayVar(&syncModules, "module", nil, "Module to include (repeatable)")
	syncCmd.Flags().StringArrayVar(&syncTargets, "target", nil, "Target directory (repeatable)")
	syncCmd.Flags().StringVar(&syncProjectDir, "project", ".", "Project directory holding .capkit/project.yaml")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print what would be synced without touching targets")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Output results in JSON format")
	rootCmd.AddCommand(syncCmd)
}

// targetReport is the per-target outcome for display.
type targetReport struct {
	Target    string          `json:"target"`
	Installed int             `json:"installed"`
	Skipped   int             `json:"skipped"`
	Errors    []kitErrorEntry `json:"errors,omitempty"`
}

type kitErrorEntry struct {
	Kit   string `json:"kit"`
	Error string `json:"error"`
}

func runSync(cmd *cobra.Command, args []string) error {
	catalogRoot, err := userdata.GetCatalogRoot()
	if err != nil {
		return fmt.Errorf("resolving catalog root: %w", err)
	}
	modulesRoot, err := userdata.GetModulesRoot()
	if err != nil {
		return fmt.Errorf("resolving modules root: %w", err)
	}

	modules := resolveModules(syncModules, syncProjectDir)
	targets, err := resolveTargets(syncTargets, syncProjectDir)
	if err != nil {
		return err
	}

	// Discover once; every target receives the same catalog.
	d := registry.NewDiscoverer(catalogRoot, modulesRoot)
	catalog, diags := d.Discover(modules)
	for _, diag := range diags {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", diag)
	}

	if syncDryRun {
		return printDryRun(cmd, catalog, targets)
	}

	var reports []targetReport
	failed := 0
	for _, target := range targets {
		result := registry.Sync(target, catalog)

		report := targetReport{
			Target:    target,
			Installed: result.Installed,
			Skipped:   result.Skipped,
		}
		for _, e := range result.Errors {
			report.Errors = append(report.Errors, kitErrorEntry{Kit: e.Kit, Error: e.Err.Error()})
			failed++
		}
		reports = append(reports, report)
	}

	if syncJSON {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		for _, r := range reports {
			if len(r.Errors) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d kits\n", r.Target, r.Installed)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %d kits, %d failed\n", r.Target, r.Installed, len(r.Errors))
			for _, e := range r.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s: %s\n", e.Kit, e.Error)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d kit(s) failed to sync", failed)
	}
	return nil
}

func printDryRun(cmd *cobra.Command, catalog []registry.Descriptor, targets []string) error {
	if len(catalog) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No kits selected; targets would be left untouched.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tDESCRIPTION")
	for _, kit := range catalog {
		fmt.Fprintf(w, "%s\t%s\t%s\n", kit.Name, kit.Source, truncate(kit.Meta.Description, 60))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nWould sync into:")
	for _, target := range targets {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", target)
	}
	return nil
}

// resolveModules picks the module selection: explicit flags win, then the
// project file's modules, then the default_modules config key. No selection
// at all is fine; the core catalog is always included.
func resolveModules(flagModules []string, projectDir string) []string {
	if len(flagModules) > 0 {
		return flagModules
	}
	if cfg, err := project.Load(projectDir); err == nil && len(cfg.Modules) > 0 {
		return cfg.Modules
	}
	return config.GetStrings("default_modules")
}

// resolveTargets picks the target directories: explicit flags win, otherwise
// the project file's tools map to their kit directories under projectDir.
func resolveTargets(flagTargets []string, projectDir string) ([]string, error) {
	if len(flagTargets) > 0 {
		return flagTargets, nil
	}

	cfg, err := project.Load(projectDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no targets: pass --target or run '%s init' in the project first", branding.CLIName())
		}
		return nil, err
	}
	if len(cfg.Tools) == 0 {
		return nil, fmt.Errorf("no tools declared in %s", project.ConfigPath(projectDir))
	}

	targets := make([]string, 0, len(cfg.Tools))
	for _, name := range cfg.Tools {
		tool, ok := project.ParseToolName(name)
		if !ok {
			return nil, fmt.Errorf("unknown tool %q in %s", name, project.ConfigPath(projectDir))
		}
		targets = append(targets, tool.TargetDir(projectDir))
	}
	return targets, nil
}

// truncate shortens s to at most n runes for table display.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
