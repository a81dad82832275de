package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/fkgraph"
)

var treeCmd = &cobra.Command{
	Use:   "tree [fk-dir]",
	Short: "Generate the FK dependency tree report",
	Long: `
Build the FK graph and write FK_DEPENDENCY_TREE.md with:
- root tables (no FK dependencies) and their children
- tables grouped by dependency level, with parents and cascade actions
- leaf tables (never referenced)
- the most referenced hub tables
- FK cycles, when present

Examples:
  fkgraph tree
  fkgraph tree --from-json fk_adjacency_list.json
  fkgraph tree --top 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if top, _ := cmd.Flags().GetInt("top"); top > 0 {
			cfg.TopN = top
		}

		var g *fkgraph.Graph
		if from, _ := cmd.Flags().GetString("from-json"); from != "" {
			g, err = fkgraph.ReadAdjacency(fs, from)
		} else {
			g, err = loadGraph(cfg, args)
		}
		if err != nil {
			return err
		}

		a := analyze(cfg, g)
		path, err := fkgraph.WriteReport(fs, cfg.OutputDir, a, cfg.TopN)
		if err != nil {
			return err
		}

		success("Generated FK dependency tree: %s", path)
		success("Root tables (Level 0): %d", len(a.Roots))
		success("Dependency levels: 0 to %d", a.Levels.Max())
		success("Leaf tables: %d", len(a.Leaves))
		success("Total tables: %d", len(g.Tables))
		if n := len(a.Levels.Cycles); n > 0 {
			fmt.Printf("\n%d FK cycle(s) found, see the Cycles section\n", n)
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().String("from-json", "", "Build from a previously written adjacency list (.json or .yaml)")
	treeCmd.Flags().Int("top", 0, "Number of hub tables to rank (overrides top_n)")
}
