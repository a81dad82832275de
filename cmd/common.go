package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/config"
	"github.com/Lumos-Labs-HQ/fkgraph/internal/fkgraph"
	"github.com/Lumos-Labs-HQ/fkgraph/internal/logger"
)

var fs = afero.NewOsFs()

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.EnsureDirectories(fs); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return cfg, nil
}

// loadGraph parses the FK directory and reports every file that was skipped.
func loadGraph(cfg *config.Config, args []string) (*fkgraph.Graph, error) {
	dir := cfg.ResolveFKDir(args)
	logger.Info("reading FK constraint files", zap.String("dir", dir))

	g, err := fkgraph.LoadDir(fs, dir, fkgraph.NewParser(cfg.DefaultSchema))
	if err != nil {
		return nil, err
	}

	reportDiagnostics(g)
	return g, nil
}

func reportDiagnostics(g *fkgraph.Graph) {
	for _, d := range g.Diagnostics {
		logger.Warn("skipped FK file", zap.String("file", d.File), zap.String("reason", d.Reason))
		color.Yellow("⚠️  Warning: Could not parse %s (%s)", d.File, d.Reason)
	}
}

func analyze(cfg *config.Config, g *fkgraph.Graph) *fkgraph.Analysis {
	a := fkgraph.Analyze(g, fkgraph.Options{MaxIterations: cfg.MaxIterations})
	if !a.Levels.Converged {
		logger.Warn("dependency levels did not converge",
			zap.Int("iterations", a.Levels.Iterations),
			zap.Int("cycles", len(a.Levels.Cycles)))
	}
	for _, c := range a.Levels.Cycles {
		color.Yellow("⚠️  FK cycle: %v", c)
	}
	return a
}

func success(format string, args ...interface{}) {
	color.Green("✓ "+format, args...)
}
