package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default fkgraph.config.json",
	Long:  `Write fkgraph.config.json with default settings into the current directory and create the FK script directory it points at.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(fs); err != nil {
			return fmt.Errorf("failed to initialize project: %w", err)
		}

		color.Green("🎉 Created %s", config.ConfigFileName)
		fmt.Println()
		color.Cyan("Next steps:")
		fmt.Printf("  1. Copy the SQL Server FK scripts into %s\n", config.DefaultConfig().FKDir)
		fmt.Println("  2. Run 'fkgraph parse' and 'fkgraph tree'")
		return nil
	},
}
