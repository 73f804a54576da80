package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/capkit-labs/capkit/internal/branding"
	"github.com/capkit-labs/capkit/internal/config"
	"github.com/capkit-labs/capkit/internal/manifest"
	"github.com/capkit-labs/capkit/internal/project"
	"github.com/capkit-labs/capkit/internal/registry"
	"github.com/capkit-labs/capkit/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorProjectDir string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the " + branding.DisplayName() + " installation",
	Long: `Run diagnostic checks: source roots, kit discovery, manifest validity,
project configuration, and the CLI version against the catalog's required
version constraint.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorProjectDir, "project", ".", "Project directory holding .capkit/project.yaml")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := false

	fmt.Fprintf(out, "Mode: %s\n", userdata.DetectMode())

	catalogRoot, err := userdata.GetCatalogRoot()
	if err != nil {
		return fmt.Errorf("resolving catalog root: %w", err)
	}
	modulesRoot, err := userdata.GetModulesRoot()
	if err != nil {
		return fmt.Errorf("resolving modules root: %w", err)
	}

	fmt.Fprintln(out, "Sources check:")
	checkDir(out, "catalog root", catalogRoot)
	checkDir(out, "modules root", modulesRoot)

	modules, err := userdata.ListModules()
	if err != nil {
		fmt.Fprintf(out, "  [WARN] listing modules: %v\n", err)
	}

	fmt.Fprintln(out, "Discovery check:")
	d := registry.NewDiscoverer(catalogRoot, modulesRoot)
	catalog, diags := d.Discover(modules)
	fmt.Fprintf(out, "  [ OK ] %d kits across %d sources\n", len(catalog), len(modules)+1)
	for _, diag := range diags {
		fmt.Fprintf(out, "  [WARN] %v\n", diag)
	}

	if len(catalog) > 0 {
		fmt.Fprintln(out, "Manifest check:")
		invalid := 0
		for _, kit := range catalog {
			result, err := manifest.ValidateFile(kit.ManifestPath)
			if err != nil || !result.Valid {
				invalid++
				fmt.Fprintf(out, "  [WARN] %s (%s): manifest does not meet the publishing schema\n", kit.Name, kit.Source)
			}
		}
		if invalid == 0 {
			fmt.Fprintf(out, "  [ OK ] all %d kit manifests valid\n", len(catalog))
		}
	}

	if !checkProject(out, doctorProjectDir) {
		failed = true
	}
	if !checkRequiredVersion(out) {
		failed = true
	}

	if failed {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func checkDir(out io.Writer, label, path string) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		fmt.Fprintf(out, "  [ OK ] %s at %s\n", label, path)
		return
	}
	fmt.Fprintf(out, "  [MISS] %s not found at %s (run '%s init --global')\n", label, path, branding.CLIName())
}

// checkProject validates .capkit/project.yaml if one exists. A missing file
// is fine; a broken one is a failure.
func checkProject(out io.Writer, projectDir string) bool {
	fmt.Fprintln(out, "Project check:")
	cfg, err := project.Load(projectDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "  [SKIP] no %s\n", project.ConfigPath(projectDir))
			return true
		}
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}

	ok := true
	for _, name := range cfg.Tools {
		if _, valid := project.ParseToolName(name); !valid {
			fmt.Fprintf(out, "  [FAIL] unknown tool %q\n", name)
			ok = false
		}
	}
	if ok {
		fmt.Fprintf(out, "  [ OK ] %d tool(s) configured\n", len(cfg.Tools))
	}
	return ok
}

// checkRequiredVersion gates the running CLI against the catalog's pinned
// minimum, a semver constraint in the requires config key.
func checkRequiredVersion(out io.Writer) bool {
	required := config.Get("requires")
	if required == "" {
		return true
	}

	fmt.Fprintln(out, "Version check:")
	constraint, err := semver.NewConstraint(required)
	if err != nil {
		fmt.Fprintf(out, "  [WARN] invalid requires constraint %q: %v\n", required, err)
		return true
	}

	version, err := semver.NewVersion(strings.TrimPrefix(buildVersion, "v"))
	if err != nil {
		// Dev builds carry no comparable version.
		fmt.Fprintf(out, "  [WARN] cannot compare build version %q against %q\n", buildVersion, required)
		return true
	}

	if constraint.Check(version) {
		fmt.Fprintf(out, "  [ OK ] version %s satisfies %q\n", buildVersion, required)
		return true
	}
	fmt.Fprintf(out, "  [FAIL] version %s does not satisfy %q\n", buildVersion, required)
	return false
}
