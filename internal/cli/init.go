package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/capkit-labs/capkit/internal/branding"
	"github.com/capkit-labs/capkit/internal/project"
	"github.com/capkit-labs/capkit/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	initGlobal bool
	initTools  string
)

func init() {
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "Initialize the global source layout (~/.capkit/)")
	initCmd.Flags().StringVar(&initTools, "tools", "claude-code,cursor,copilot,opencode", "Comma-separated list of AI tools to configure")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize " + branding.DisplayName() + " configuration",
	Long: `Initialize the ` + branding.DisplayName() + ` configuration.

Without flags, creates a project-level .capkit/project.yaml in the current
directory. With --global, initializes the global source layout
(~/.capkit/catalog and ~/.capkit/modules) with a starter kit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initGlobal {
			return runGlobalInit(cmd)
		}
		return runProjectInit(cmd)
	},
}

func runGlobalInit(cmd *cobra.Command) error {
	catalogRoot, err := userdata.GetCatalogRoot()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initializing sources at %s\n", catalogRoot)

	if err := userdata.InitGlobal(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("initializing sources: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nSources initialized successfully.")
	return nil
}

func runProjectInit(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	tools := parseToolsList(initTools)
	if len(tools) == 0 {
		return fmt.Errorf("at least one tool must be specified via --tools")
	}
	for _, name := range tools {
		if _, ok := project.ParseToolName(name); !ok {
			return fmt.Errorf("unknown tool %q (supported: %s)", name, supportedTools())
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initializing %s project in %s\n", branding.DisplayName(), cwd)
	fmt.Fprintf(cmd.OutOrStdout(), "Tools: %s\n", strings.Join(tools, ", "))

	if err := project.Init(cwd, tools); err != nil {
		return fmt.Errorf("initializing project: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nProject initialized. Created %s\n", project.ConfigPath(cwd))
	fmt.Fprintf(cmd.OutOrStdout(), "Run '%s sync' to install kits into the configured tools.\n", branding.CLIName())
	return nil
}

func parseToolsList(s string) []string {
	parts := strings.Split(s, ",")
	tools := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			tools = append(tools, trimmed)
		}
	}
	return tools
}

func supportedTools() string {
	names := make([]string, 0, len(project.AllTools()))
	for _, t := range project.AllTools() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
