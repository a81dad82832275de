package fkgraph

import (
	"encoding/json"
	"strings"
)

// Action is a referential action attached to ON DELETE / ON UPDATE.
// The zero value means the clause was absent.
type Action string

const (
	ActionUnspecified Action = ""
	ActionCascade     Action = "CASCADE"
	ActionSetNull     Action = "SET NULL"
	ActionSetDefault  Action = "SET DEFAULT"
	ActionNoAction    Action = "NO ACTION"
	ActionRestrict    Action = "RESTRICT"
)

func (a Action) IsSet() bool {
	return a != ActionUnspecified
}

// MarshalJSON writes null for an unspecified action.
func (a Action) MarshalJSON() ([]byte, error) {
	if !a.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(string(a))
}

func (a *Action) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ActionUnspecified
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Action(strings.ToUpper(s))
	return nil
}

// MarshalYAML mirrors the JSON null handling for actions.
func (a Action) MarshalYAML() (interface{}, error) {
	if !a.IsSet() {
		return nil, nil
	}
	return string(a), nil
}

// Edge is one foreign key: Child references Parent.
type Edge struct {
	Child         string
	Parent        string
	Name          *string
	ChildColumns  []string
	ParentColumns []string
	OnDelete      Action
	OnUpdate      Action
}

func (e Edge) ConstraintName() string {
	if e.Name == nil {
		return ""
	}
	return *e.Name
}

func (e Edge) IsSelfReferencing() bool {
	return TableOf(e.Child) == TableOf(e.Parent)
}

func (e Edge) IsCrossSchema() bool {
	return SchemaOf(e.Child) != SchemaOf(e.Parent)
}

// AdjacencyEntry is the serialized form of an edge under its child table.
type AdjacencyEntry struct {
	ParentTable string   `json:"parent_table" yaml:"parent_table"`
	FKName      *string  `json:"fk_name" yaml:"fk_name"`
	ChildCols   []string `json:"child_cols" yaml:"child_cols"`
	ParentCols  []string `json:"parent_cols" yaml:"parent_cols"`
	OnDelete    Action   `json:"on_delete" yaml:"on_delete"`
	OnUpdate    Action   `json:"on_update" yaml:"on_update"`
}

func (e Edge) entry() AdjacencyEntry {
	return AdjacencyEntry{
		ParentTable: e.Parent,
		FKName:      e.Name,
		ChildCols:   e.ChildColumns,
		ParentCols:  e.ParentColumns,
		OnDelete:    e.OnDelete,
		OnUpdate:    e.OnUpdate,
	}
}

// Reference describes an incoming edge as seen from the parent table.
type Reference struct {
	Child         string
	Name          *string
	ChildColumns  []string
	ParentColumns []string
	OnDelete      Action
	OnUpdate      Action
}

// Diagnostic records a file that could not contribute an edge.
type Diagnostic struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

type CrossSchemaFK struct {
	Child  string  `json:"child" yaml:"child"`
	Parent string  `json:"parent" yaml:"parent"`
	FKName *string `json:"fk_name" yaml:"fk_name"`
}

type SelfReferencingFK struct {
	Table      string   `json:"table" yaml:"table"`
	FKName     *string  `json:"fk_name" yaml:"fk_name"`
	ChildCols  []string `json:"child_cols" yaml:"child_cols"`
	ParentCols []string `json:"parent_cols" yaml:"parent_cols"`
}

// Summary is the aggregate record written next to the adjacency list.
type Summary struct {
	TotalFKCount         int                 `json:"total_fk_count" yaml:"total_fk_count"`
	TotalChildTables     int                 `json:"total_child_tables" yaml:"total_child_tables"`
	TotalUniqueTables    int                 `json:"total_unique_tables" yaml:"total_unique_tables"`
	AllTables            []string            `json:"all_tables" yaml:"all_tables"`
	CrossSchemaFKs       []CrossSchemaFK     `json:"cross_schema_fks" yaml:"cross_schema_fks"`
	CrossSchemaCount     int                 `json:"cross_schema_count" yaml:"cross_schema_count"`
	SelfReferencingFKs   []SelfReferencingFK `json:"self_referencing_fks" yaml:"self_referencing_fks"`
	SelfReferencingCount int                 `json:"self_referencing_count" yaml:"self_referencing_count"`
}

// SchemaOf returns the qualifier before the first dot, or "" when unqualified.
func SchemaOf(table string) string {
	if i := strings.Index(table, "."); i >= 0 {
		return table[:i]
	}
	return ""
}

// TableOf returns the name after the first dot.
func TableOf(table string) string {
	if i := strings.Index(table, "."); i >= 0 {
		return table[i+1:]
	}
	return table
}

func qualify(schema, table string) string {
	return schema + "." + table
}
