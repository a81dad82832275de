package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/naming"
	"github.com/Lumos-Labs-HQ/fkgraph/internal/pgddl"
)

var checksCmd = &cobra.Command{
	Use:   "checks [fk-dir]",
	Short: "Write orphan-row validation queries for the migrated data",
	Long: `
Write fk_orphan_checks.sql: one query per foreign key counting child rows
whose key has no matching parent row in PostgreSQL. Run it after the data
load and before adding the constraints; every row should report 0.`,
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

		gen := pgddl.NewGenerator(analyze(cfg, g), naming.NewMapper(cfg.SchemaMap))
		script, err := gen.OrphanChecks()
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.OutputDir, pgddl.OrphanChecksFile)
		if err := afero.WriteFile(fs, path, []byte(script), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		success("Orphan checks for %d FK constraints written: %s", g.EdgeCount(), path)
		return nil
	},
}
