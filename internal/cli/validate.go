package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/capkit-labs/capkit/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a kit manifest against the publishing schema",
	Long: `Validate a KIT.md manifest header against the kit schema. The path may be
the manifest file itself or a kit directory containing one.

The sync engine never requires a valid header; this check is for authors
who want their kits to list cleanly.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		fmt.Fprintln(cmd.OutOrStdout(), "  [ OK ] Valid kit manifest")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
