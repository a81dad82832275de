package fkgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_Sections(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"1.sql": `ALTER TABLE perseus.orders ADD CONSTRAINT fk_orders_customer FOREIGN KEY (customer_id) REFERENCES perseus.customers (id) ON DELETE CASCADE ON UPDATE NO ACTION;`,
		"2.sql": fk("perseus.invoices", "perseus.customers"),
		"3.sql": fk("perseus.invoice_lines", "perseus.invoices"),
		"4.sql": `ALTER TABLE perseus.category ADD CONSTRAINT fk_cat_parent FOREIGN KEY (parent_id) REFERENCES perseus.category (id);`,
		"5.sql": "not sql at all",
	})
	a := Analyze(g, Options{})
	doc := RenderMarkdown(a, 2)

	assert.Contains(t, doc, "# FK Dependency Tree Analysis\n")
	assert.Contains(t, doc, "## Root Tables (Level 0 - No FK Dependencies)\n**Count:** 1\n")
	assert.Contains(t, doc, "- **perseus.customers** (2 FK references)\n  - Children: perseus.invoices, perseus.orders\n")
	assert.Contains(t, doc, "## Dependency Levels (0 to 2)\n")
	assert.Contains(t, doc, "### Level 0 (1 tables with self references only)\n")
	assert.Contains(t, doc, "### Level 1 (2 tables)\n")
	assert.Contains(t, doc, "  - Cascades: perseus.customers (DELETE CASCADE, UPDATE NO ACTION)\n")
	assert.Contains(t, doc, "## Leaf Tables (Never Referenced)\n**Count:** 2\n")
	assert.Contains(t, doc, "## Top 2 Most Referenced Tables (Hub Tables)\n")
	assert.Contains(t, doc, "1. **perseus.customers** - 2 FK references (Level 0)\n")
	assert.Contains(t, doc, "2. **perseus.category** - 1 FK references (Level 0)\n")
	assert.NotContains(t, doc, "3. **")
	assert.Contains(t, doc, "## Unparseable Files\n**Count:** 1\n")
	assert.Contains(t, doc, "- `5.sql`: missing ALTER TABLE clause")
	assert.NotContains(t, doc, "## Cycles")

	// invoices is referenced once, orders never: invoices comes first in level 1.
	level1 := doc[strings.Index(doc, "### Level 1"):strings.Index(doc, "### Level 2")]
	assert.Less(t, strings.Index(level1, "perseus.invoices"), strings.Index(level1, "perseus.orders"))
}

func TestRenderMarkdown_Empty(t *testing.T) {
	doc := RenderMarkdown(Analyze(NewBuilder(nil).Graph(), Options{}), 0)

	assert.Contains(t, doc, "**Count:** 0")
	assert.Contains(t, doc, "## Dependency Levels (0 to 0)")
	assert.Contains(t, doc, "## Leaf Tables (Never Referenced)\n**Count:** 0")
	assert.Contains(t, doc, "## Top 15 Most Referenced Tables (Hub Tables)")
	assert.NotContains(t, doc, "### Level")
	assert.NotContains(t, doc, "did not converge")
}

func TestRenderMarkdown_Cycles(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"1.sql": fk("s.a", "s.b"),
		"2.sql": fk("s.b", "s.a"),
	})
	doc := RenderMarkdown(Analyze(g, Options{MaxIterations: 5}), 0)

	assert.Contains(t, doc, "Levels did not converge after 5 passes")
	assert.Contains(t, doc, "## Cycles\n**Count:** 1\n\n- s.a <-> s.b\n")
}

func TestAnalysis_HubsAndOrder(t *testing.T) {
	g := buildGraph(t, map[string]string{
		"1.sql": fk("s.a", "s.hub"),
		"2.sql": fk("s.b", "s.hub"),
		"3.sql": fk("s.c", "s.other"),
		"4.sql": fk("s.c", "s.a"),
	})
	a := Analyze(g, Options{})

	assert.Equal(t, []Hub{
		{Table: "s.hub", References: 2, Level: 0},
		{Table: "s.a", References: 1, Level: 1},
		{Table: "s.other", References: 1, Level: 0},
	}, a.Hubs(10))
	assert.Equal(t, []string{"s.hub", "s.other", "s.a", "s.b", "s.c"}, a.MigrationOrder())
}
