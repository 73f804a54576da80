package cli

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/capkit-labs/capkit/internal/scaffold"
	"github.com/spf13/cobra"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var (
	createDescription string
	createOutputDir   string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new kit from the built-in template",
	Long: `Create a new kit skeleton: a KIT.md manifest with a pre-filled metadata
header and a starter resource file.

Example:
  capkit create code-review --description "Review Go code for common mistakes"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateName(name); err != nil {
			return err
		}

		data := scaffold.NewData(name, createDescription)
		outDir := createOutputDir
		if outDir == "" {
			outDir = filepath.Join(".", name)
		}

		result, err := scaffold.Generate(data, outDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created kit at %s/\n", result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\nWarnings:")
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", w)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "\nNext steps:")
		fmt.Fprintln(cmd.OutOrStdout(), "  1. Edit KIT.md with the kit's instructions")
		fmt.Fprintln(cmd.OutOrStdout(), "  2. Move the directory under a catalog or module kits/ folder")
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "Kit description for the manifest header")
	createCmd.Flags().StringVar(&createOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	rootCmd.AddCommand(createCmd)
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must match pattern [a-z0-9][a-z0-9-]*", name)
	}
	return nil
}
