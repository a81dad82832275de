package naming

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/fkgraph"
)

func mapGraph(t *testing.T) *fkgraph.Graph {
	t.Helper()
	b := fkgraph.NewBuilder(nil)
	for name, src := range map[string]string{
		"1.sql": `ALTER TABLE [dbo].[Goo] WITH CHECK ADD CONSTRAINT [FK_Goo_GooType] FOREIGN KEY([GooTypeID]) REFERENCES [dbo].[GooType] ([ID])`,
		"2.sql": `ALTER TABLE hermes.run ADD FOREIGN KEY (goo_id) REFERENCES dbo.Goo (ID)`,
	} {
		require.True(t, b.Add(name, src).OK(), name)
	}
	return b.Graph()
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"FK_Goo_GooType", "Goo_GooType"},
		{"pk_goo", "goo"},
		{"usp_UpdateMUpstream", "UpdateMUpstream"},
		{"fk_", "fk_"},
		{"Goo", "Goo"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPrefix(tt.in))
		})
	}
}

func TestMapper_Entries(t *testing.T) {
	m := NewMapper(map[string]string{"dbo": "perseus"})

	entries := m.Entries(mapGraph(t))
	assert.Equal(t, []MapEntry{
		{ObjectTable, "Goo", "goo", "dbo", "perseus", "snake_case"},
		{ObjectTable, "GooType", "goo_type", "dbo", "perseus", "snake_case"},
		{ObjectTable, "run", "run", "hermes", "hermes", "unchanged"},
		{ObjectColumn, "Goo.GooTypeID", "goo.goo_type_id", "dbo", "perseus", "snake_case"},
		{ObjectColumn, "Goo.ID", "goo.id", "dbo", "perseus", "snake_case"},
		{ObjectColumn, "GooType.ID", "goo_type.id", "dbo", "perseus", "snake_case"},
		{ObjectColumn, "run.goo_id", "run.goo_id", "hermes", "hermes", "unchanged"},
		{ObjectConstraint, "FK_Goo_GooType", "goo_goo_type", "dbo", "perseus", "prefix removed, snake_case"},
	}, entries)
}

func TestWriteMap(t *testing.T) {
	m := NewMapper(map[string]string{"dbo": "perseus"})

	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, m.Entries(mapGraph(t))))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "object_type,sqlserver_name,postgresql_name,schema_sqlserver,schema_postgresql,notes", lines[0])
	assert.Equal(t, `constraint,FK_Goo_GooType,goo_goo_type,dbo,perseus,"prefix removed, snake_case"`, lines[8])
}

func TestWriteMap_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, nil))
	assert.Equal(t, "object_type,sqlserver_name,postgresql_name,schema_sqlserver,schema_postgresql,notes\n", buf.String())
}
