package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fkgraph version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fkgraph version %s\n", Version)
	},
}
