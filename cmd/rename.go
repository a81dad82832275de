package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/logger"
	"github.com/Lumos-Labs-HQ/fkgraph/internal/sanitize"
)

var renameCmd = &cobra.Command{
	Use:   "rename [dir]",
	Short: "Remove whitespace from SQL file names",
	Long: `
Walk a directory tree and remove every whitespace character from file
names ("1. perseus.Goo.sql" -> "1.perseus.Goo.sql"). Runs as a preview
unless --execute is given. Files whose new name already exists are skipped.

Examples:
  fkgraph rename source
  fkgraph rename source --execute`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		execute, _ := cmd.Flags().GetBool("execute")

		mode := "[PREVIEW]"
		if execute {
			mode = "[EXECUTE]"
		}
		color.Cyan("%s Renaming files in: %s", mode, root)

		res, err := sanitize.Run(fs, root, !execute)
		if err != nil {
			return err
		}

		for _, r := range res.Renames {
			switch r.Status {
			case sanitize.StatusPreview:
				fmt.Printf("  PREVIEW: '%s' -> '%s'\n", r.Old, r.New)
			case sanitize.StatusRenamed:
				fmt.Printf("  Renamed: '%s' -> '%s'\n", r.Old, r.New)
			case sanitize.StatusConflict:
				color.Yellow("  Warning: '%s' -> '%s' already exists. Skipping.", r.Old, r.New)
			case sanitize.StatusFailed:
				logger.Error("rename failed", zap.String("file", r.Old), zap.Error(r.Err))
				color.Red("  Error renaming '%s': %v", r.Old, r.Err)
			}
		}

		fmt.Println()
		fmt.Printf("  Files renamed: %d\n", res.Renamed)
		fmt.Printf("  Files without whitespace: %d\n", res.Unchanged)
		fmt.Printf("  Conflicts: %d\n", res.Conflicts)
		fmt.Printf("  Errors: %d\n", res.Errors)

		if !execute && res.Renamed > 0 {
			fmt.Println()
			color.Yellow("No changes were made. Re-run with --execute to apply them.")
		}
		if res.Errors > 0 {
			return fmt.Errorf("%d file(s) could not be renamed", res.Errors)
		}
		return nil
	},
}

func init() {
	renameCmd.Flags().Bool("execute", false, "Apply the renames (default is a preview)")
}
