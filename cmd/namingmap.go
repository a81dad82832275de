package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/naming"
)

var namingMapCmd = &cobra.Command{
	Use:   "naming-map [fk-dir]",
	Short: "Write the SQL Server to PostgreSQL naming conversion map",
	Long: `
Write naming-conversion-map.csv listing every table, FK column and named
constraint found in the FK scripts next to its PostgreSQL name: snake_case
identifiers, schemas renamed through schema_map and constraint prefixes
(FK_, PK_, ...) removed. The names match those used by 'fkgraph order'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		g, err := loadGraph(cfg, args)
		if err != nil {
			return err
		}

		entries := naming.NewMapper(cfg.SchemaMap).Entries(g)

		path := filepath.Join(cfg.OutputDir, naming.MapFile)
		f, err := fs.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()

		if err := naming.WriteMap(f, entries); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		success("Naming map with %d entries written: %s", len(entries), path)
		return nil
	},
}
