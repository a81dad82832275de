package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const ConfigFileName = "fkgraph.config.json"

type Config struct {
	Version       string            `json:"version" mapstructure:"version"`
	FKDir         string            `json:"fk_dir" mapstructure:"fk_dir"`         // directory of one-constraint-per-file FK scripts
	OutputDir     string            `json:"output_dir" mapstructure:"output_dir"` // where artifacts are written
	DefaultSchema string            `json:"default_schema" mapstructure:"default_schema"`
	MaxIterations int               `json:"max_iterations" mapstructure:"max_iterations"`
	TopN          int               `json:"top_n" mapstructure:"top_n"`
	Format        string            `json:"format" mapstructure:"format"`
	SchemaMap     map[string]string `json:"schema_map" mapstructure:"schema_map"`
	Log           Log               `json:"log" mapstructure:"log"`
}

type Log struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Version:       "1",
		FKDir:         "source/original/sqlserver/13. create-foreign-key-constraint",
		OutputDir:     ".",
		DefaultSchema: "dbo",
		MaxIterations: 100,
		TopN:          15,
		Format:        "json",
		SchemaMap:     map[string]string{"dbo": "perseus"},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// EnvPrefix namespaces environment overrides: FKGRAPH_TOP_N, FKGRAPH_LOG_LEVEL.
const EnvPrefix = "FKGRAPH"

// SetDefaults registers every key of DefaultConfig with viper. Keys unknown
// to viper are skipped by Unmarshal even when an env var sets them.
// schema_map is left out so a configured map replaces the default instead of
// being merged into it.
func SetDefaults() {
	def := DefaultConfig()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("fk_dir", def.FKDir)
	viper.SetDefault("output_dir", def.OutputDir)
	viper.SetDefault("default_schema", def.DefaultSchema)
	viper.SetDefault("max_iterations", def.MaxIterations)
	viper.SetDefault("top_n", def.TopN)
	viper.SetDefault("format", def.Format)
	viper.SetDefault("log.level", def.Log.Level)
	viper.SetDefault("log.format", def.Log.Format)
}

// BindEnv enables FKGRAPH_* overrides; nested keys use an underscore.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func Load() (*Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.SchemaMap == nil && !viper.IsSet("schema_map") {
		cfg.SchemaMap = DefaultConfig().SchemaMap
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	}

	supportedFormats := []string{"json", "yaml", "yml"}
	supported := false
	for _, f := range supportedFormats {
		if strings.EqualFold(c.Format, f) {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported format: %s. Supported formats: %v", c.Format, supportedFormats)
	}

	if strings.Contains(c.DefaultSchema, ".") {
		return fmt.Errorf("default_schema cannot contain a dot: %s", c.DefaultSchema)
	}

	return nil
}

func (c *Config) EnsureDirectories(fs afero.Fs) error {
	dir := c.OutputDir
	if dir == "" || dir == "." {
		return nil
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ResolveFKDir prefers an explicit command argument over the configured directory.
func (c *Config) ResolveFKDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return c.FKDir
}

func IsInitialized(fs afero.Fs) bool {
	ok, err := afero.Exists(fs, ConfigFileName)
	return err == nil && ok
}

// InitializeProject writes a default config file into the working directory.
func InitializeProject(fs afero.Fs) error {
	if IsInitialized(fs) {
		return fmt.Errorf("%s already exists", ConfigFileName)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := afero.WriteFile(fs, ConfigFileName, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ConfigFileName, err)
	}

	cfg := DefaultConfig()
	if err := fs.MkdirAll(filepath.Clean(cfg.FKDir), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", cfg.FKDir, err)
	}
	return nil
}
