package fkgraph

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFS(t *testing.T, dir string, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(dir, 0755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), []byte(content), 0644))
	}
	return fs
}

func TestLoadDir(t *testing.T) {
	fs := memFS(t, "fk", map[string]string{
		"2. fk_b.sql": fk("dbo.b", "dbo.c"),
		"1. fk_a.sql": fk("dbo.a", "dbo.b"),
		"3. bad.sql":  "ALTER TABLE dbo.x ADD FOREIGN KEY (y)",
		"notes.txt":   fk("dbo.ignored", "dbo.c"),
	})
	require.NoError(t, fs.MkdirAll("fk/nested.sql", 0755))

	g, err := LoadDir(fs, "fk", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"dbo.a", "dbo.b", "dbo.c"}, g.SortedTables())
	require.Len(t, g.Diagnostics, 1)
	assert.Equal(t, "3. bad.sql", g.Diagnostics[0].File)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(afero.NewMemMapFs(), "nope", nil)
	assert.ErrorContains(t, err, "failed to read FK directory nope")
}

func TestLoadDir_Empty(t *testing.T) {
	g, err := LoadDir(memFS(t, "fk", nil), "fk", nil)
	require.NoError(t, err)
	assert.Empty(t, g.Tables)
	assert.Empty(t, g.Diagnostics)
}

func TestWriteArtifacts_JSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := buildGraph(t, map[string]string{
		"1.sql": `ALTER TABLE perseus.orders ADD CONSTRAINT fk_orders_customer FOREIGN KEY (customer_id) REFERENCES perseus.customers (id) ON DELETE CASCADE;`,
	})

	paths, err := WriteArtifacts(fs, "out", g, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("out", "fk_adjacency_list.json"), filepath.Join("out", "fk_summary.json")}, paths)

	data, err := afero.ReadFile(fs, paths[0])
	require.NoError(t, err)
	var raw map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	entry := raw["perseus.orders"][0]
	assert.Equal(t, "perseus.customers", entry["parent_table"])
	assert.Equal(t, "fk_orders_customer", entry["fk_name"])
	assert.Equal(t, "CASCADE", entry["on_delete"])
	assert.Contains(t, entry, "on_update")
	assert.Nil(t, entry["on_update"])

	data, err = afero.ReadFile(fs, paths[1])
	require.NoError(t, err)
	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 1, summary.TotalFKCount)
	assert.Equal(t, []string{"perseus.customers", "perseus.orders"}, summary.AllTables)

	rebuilt, err := ReadAdjacency(fs, paths[0])
	require.NoError(t, err)
	assert.Equal(t, g.Adjacency, rebuilt.Adjacency)
}

func TestWriteArtifacts_YAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := buildGraph(t, map[string]string{
		"1.sql": `ALTER TABLE perseus.orders ADD FOREIGN KEY (customer_id) REFERENCES perseus.customers (id) ON UPDATE SET NULL;`,
	})

	paths, err := WriteArtifacts(fs, "out", g, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "fk_adjacency_list.yaml"), paths[0])

	data, err := afero.ReadFile(fs, paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "on_update: SET NULL")
	assert.Contains(t, string(data), "on_delete: null")

	rebuilt, err := ReadAdjacency(fs, paths[0])
	require.NoError(t, err)
	assert.Equal(t, g.Adjacency, rebuilt.Adjacency)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	fs := afero.NewMemMapFs()
	path, err := WriteReport(fs, "docs", Analyze(NewBuilder(nil).Graph(), Options{}), 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("docs", ReportFile), path)

	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, ok)
}
