package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/fkgraph"
)

var parseCmd = &cobra.Command{
	Use:   "parse [fk-dir]",
	Short: "Parse FK scripts into an adjacency list and summary",
	Long: `
Parse every .sql file in the FK directory (argument or fk_dir) and write:
- fk_adjacency_list.json: child table -> referenced tables with columns and cascade actions
- fk_summary.json: counts, table list, cross-schema and self-referencing FKs

Files that cannot be parsed are reported and skipped.

Examples:
  fkgraph parse
  fkgraph parse "source/original/sqlserver/13. create-foreign-key-constraint"
  fkgraph parse --format yaml -o docs`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		formatName := cfg.Format
		if f, _ := cmd.Flags().GetString("format"); f != "" {
			formatName = f
		}
		format, err := fkgraph.ParseFormat(formatName)
		if err != nil {
			return err
		}

		g, err := loadGraph(cfg, args)
		if err != nil {
			return err
		}

		paths, err := fkgraph.WriteArtifacts(fs, cfg.OutputDir, g, format)
		if err != nil {
			return err
		}

		s := g.Summary()
		success("Parsed %d FK constraint files", s.TotalFKCount+len(g.Diagnostics))
		success("Total FK constraints: %d", s.TotalFKCount)
		success("Total child tables with FKs: %d", s.TotalChildTables)
		success("Total unique tables (child + parent): %d", s.TotalUniqueTables)
		success("Cross-schema FKs: %d", s.CrossSchemaCount)
		success("Self-referencing FKs: %d", s.SelfReferencingCount)
		if len(g.Diagnostics) > 0 {
			fmt.Printf("\n%d file(s) could not be parsed\n", len(g.Diagnostics))
		}

		fmt.Println("\nOutput files:")
		for _, p := range paths {
			fmt.Printf("  - %s\n", p)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().String("format", "", "Artifact format: json or yaml (overrides format)")
}
