package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/naming"
	"github.com/Lumos-Labs-HQ/fkgraph/internal/pgddl"
)

const (
	fkSamples = `ALTER TABLE [dbo].[orders]  WITH CHECK ADD  CONSTRAINT [fk_orders_customer] FOREIGN KEY([customer_id])
REFERENCES [dbo].[customers] ([id])
ON DELETE CASCADE
GO`
	fkLines = `ALTER TABLE dbo.order_lines ADD CONSTRAINT fk_lines_order FOREIGN KEY (order_id) REFERENCES dbo.orders (id);`
)

// withMemFS points the commands at an in-memory filesystem seeded with FK scripts.
func withMemFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	mem := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(mem, filepath.Join("fk", name), []byte(content), 0644))
	}

	prev := fs
	fs = mem
	viper.Reset()
	viper.Set("fk_dir", "fk")
	viper.Set("output_dir", ".")
	t.Cleanup(func() {
		fs = prev
		viper.Reset()
	})
	return mem
}

func TestParseCommand(t *testing.T) {
	mem := withMemFS(t, map[string]string{
		"1. orders.sql": fkSamples,
		"2. lines.sql":  fkLines,
		"3. broken.sql": "ALTER TABLE dbo.x ADD FOREIGN KEY (a)",
	})

	require.NoError(t, parseCmd.RunE(parseCmd, nil))

	for _, name := range []string{"fk_adjacency_list.json", "fk_summary.json"} {
		ok, err := afero.Exists(mem, name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}

	data, err := afero.ReadFile(mem, "fk_adjacency_list.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dbo.orders"`)
	assert.Contains(t, string(data), `"on_delete": "CASCADE"`)
}

func TestParseCommand_MissingDirectory(t *testing.T) {
	withMemFS(t, nil)
	viper.Set("fk_dir", "missing")

	err := parseCmd.RunE(parseCmd, nil)
	assert.ErrorContains(t, err, "failed to read FK directory missing")
}

func TestParseCommand_InvalidFormat(t *testing.T) {
	withMemFS(t, map[string]string{"1.sql": fkLines})
	viper.Set("format", "xml")

	err := parseCmd.RunE(parseCmd, nil)
	assert.ErrorContains(t, err, "invalid config")
}

func TestTreeCommand(t *testing.T) {
	mem := withMemFS(t, map[string]string{
		"1.sql": fkSamples,
		"2.sql": fkLines,
	})

	require.NoError(t, treeCmd.RunE(treeCmd, nil))

	data, err := afero.ReadFile(mem, "FK_DEPENDENCY_TREE.md")
	require.NoError(t, err)
	report := string(data)
	assert.Contains(t, report, "## Root Tables")
	assert.Contains(t, report, "dbo.customers")
	assert.Contains(t, report, "dbo.order_lines")
}

func TestTreeCommand_FromJSON(t *testing.T) {
	mem := withMemFS(t, map[string]string{"1.sql": fkSamples})
	require.NoError(t, parseCmd.RunE(parseCmd, nil))
	require.NoError(t, mem.Remove(filepath.Join("fk", "1.sql")))

	require.NoError(t, treeCmd.Flags().Set("from-json", "fk_adjacency_list.json"))
	t.Cleanup(func() { _ = treeCmd.Flags().Set("from-json", "") })

	require.NoError(t, treeCmd.RunE(treeCmd, nil))

	data, err := afero.ReadFile(mem, "FK_DEPENDENCY_TREE.md")
	require.NoError(t, err)
	assert.Contains(t, string(data), "dbo.orders")
}

func TestOrderAndChecksCommands(t *testing.T) {
	mem := withMemFS(t, map[string]string{
		"1.sql": fkSamples,
		"2.sql": fkLines,
	})

	require.NoError(t, orderCmd.RunE(orderCmd, nil))
	require.NoError(t, checksCmd.RunE(checksCmd, nil))

	ddl, err := afero.ReadFile(mem, pgddl.ConstraintsFile)
	require.NoError(t, err)
	assert.Contains(t, string(ddl), "ALTER TABLE perseus.orders")
	assert.Contains(t, string(ddl), "ON DELETE CASCADE")

	checks, err := afero.ReadFile(mem, pgddl.OrphanChecksFile)
	require.NoError(t, err)
	assert.Contains(t, string(checks), "LEFT JOIN perseus.customers")
}

func TestRenameCommand(t *testing.T) {
	mem := withMemFS(t, nil)
	require.NoError(t, afero.WriteFile(mem, filepath.Join("src", "1. perseus.Goo.sql"), []byte("--"), 0644))

	require.NoError(t, renameCmd.RunE(renameCmd, []string{"src"}))
	ok, _ := afero.Exists(mem, filepath.Join("src", "1. perseus.Goo.sql"))
	assert.True(t, ok, "preview must not rename")

	require.NoError(t, renameCmd.Flags().Set("execute", "true"))
	t.Cleanup(func() { _ = renameCmd.Flags().Set("execute", "false") })

	require.NoError(t, renameCmd.RunE(renameCmd, []string{"src"}))
	ok, _ = afero.Exists(mem, filepath.Join("src", "1.perseus.Goo.sql"))
	assert.True(t, ok)
}

func TestNamingMapCommand(t *testing.T) {
	mem := withMemFS(t, map[string]string{
		"1.sql": fkSamples,
		"2.sql": fkLines,
	})

	require.NoError(t, namingMapCmd.RunE(namingMapCmd, nil))

	data, err := afero.ReadFile(mem, naming.MapFile)
	require.NoError(t, err)
	csv := string(data)
	assert.Contains(t, csv, "table,order_lines,order_lines,dbo,perseus,unchanged\n")
	assert.Contains(t, csv, "column,orders.customer_id,orders.customer_id,dbo,perseus,unchanged\n")
	assert.Contains(t, csv, `constraint,fk_orders_customer,orders_customer,dbo,perseus,"prefix removed, snake_case"`)
}

func TestParseCommand_OutputDir(t *testing.T) {
	mem := withMemFS(t, map[string]string{"1.sql": fkLines})
	viper.Set("output_dir", "docs/fk")

	require.NoError(t, parseCmd.RunE(parseCmd, nil))

	ok, err := afero.DirExists(mem, "docs/fk")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = afero.Exists(mem, filepath.Join("docs", "fk", "fk_summary.json"))
	assert.True(t, ok)
}
