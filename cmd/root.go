package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/config"
	"github.com/Lumos-Labs-HQ/fkgraph/internal/logger"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════╗",
		"║                                              ║",
		"║   fkgraph · SQL Server → PostgreSQL FK tree  ║",
		"║                                              ║",
		"╚══════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("            ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "fkgraph",
	Short: "Foreign key dependency analysis for SQL Server to PostgreSQL migrations",
	Long: `
fkgraph reads a directory of SQL Server foreign key scripts (one
ALTER TABLE ... FOREIGN KEY statement per file) and derives the FK
dependency graph: root and leaf tables, dependency levels, hub tables
and cycles.

Artifacts:
- fk_adjacency_list.json / fk_summary.json (parse)
- FK_DEPENDENCY_TREE.md (tree)
- fk_constraints_pg.sql (order)
- fk_orphan_checks.sql (checks)`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			if err := logger.SetLevel("debug"); err != nil {
				return err
			}
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("fkgraph version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	defer logger.Sync()
	RegisterBaseCommands()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./fkgraph.config.json)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output directory (overrides output_dir)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")

	viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("fkgraph.config")
	}

	config.SetDefaults()
	config.BindEnv()

	// A missing config file is fine: defaults and env cover every key.
	_ = viper.ReadInConfig()
}
