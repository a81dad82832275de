package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/naming"
	"github.com/Lumos-Labs-HQ/fkgraph/internal/pgddl"
)

var orderCmd = &cobra.Command{
	Use:   "order [fk-dir]",
	Short: "Print the table load order and write PostgreSQL FK DDL",
	Long: `
Print tables grouped by dependency level (parents first) using their
PostgreSQL names, and write fk_constraints_pg.sql with every FK rewritten
for PostgreSQL: snake_case identifiers, schemas renamed through schema_map,
statements ordered by the child table's level.

The script is only written, never executed.`,
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

		color.Cyan("📋 Load order")
		for _, step := range gen.Plan() {
			fmt.Printf("  Level %d (%d): %s\n", step.Level, len(step.Tables), strings.Join(step.Tables, ", "))
		}

		path := filepath.Join(cfg.OutputDir, pgddl.ConstraintsFile)
		if err := afero.WriteFile(fs, path, []byte(gen.Constraints()), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		fmt.Println()
		success("PostgreSQL FK DDL written: %s", path)
		return nil
	},
}
