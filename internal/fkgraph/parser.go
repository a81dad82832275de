package fkgraph

import "fmt"

// DefaultSchema qualifies table names that appear without a schema.
const DefaultSchema = "dbo"

// ParseResult is either a parsed edge or the reason the text was rejected.
type ParseResult struct {
	Edge   Edge
	Reason string
	ok     bool
}

func Parsed(e Edge) ParseResult {
	return ParseResult{Edge: e, ok: true}
}

func Unparseable(reason string) ParseResult {
	return ParseResult{Reason: reason}
}

func (r ParseResult) OK() bool {
	return r.ok
}

// Parser turns one ALTER TABLE ... FOREIGN KEY ... REFERENCES statement into an Edge.
type Parser struct {
	DefaultSchema string
}

func NewParser(defaultSchema string) *Parser {
	if defaultSchema == "" {
		defaultSchema = DefaultSchema
	}
	return &Parser{DefaultSchema: defaultSchema}
}

// Parse parses content with the package default schema.
func Parse(content string) ParseResult {
	return NewParser(DefaultSchema).Parse(content)
}

func (p *Parser) Parse(content string) ParseResult {
	c := &cursor{tokens: lex(content)}

	if !c.seek("ALTER", "TABLE") {
		return Unparseable("missing ALTER TABLE clause")
	}
	child, ok := p.qualifiedName(c)
	if !ok {
		return Unparseable("missing table name after ALTER TABLE")
	}

	if c.accept("WITH") {
		if !c.accept("CHECK") && !c.accept("NOCHECK") {
			return Unparseable("expected CHECK or NOCHECK after WITH")
		}
	}
	if !c.accept("ADD") {
		return Unparseable("missing ADD clause")
	}

	var name *string
	if c.accept("CONSTRAINT") {
		t, ok := c.ident()
		if !ok {
			return Unparseable("missing constraint name after CONSTRAINT")
		}
		n := t.text
		name = &n
	}

	if !c.accept("FOREIGN") || !c.accept("KEY") {
		return Unparseable("missing FOREIGN KEY clause")
	}
	childCols, ok := c.columnList()
	if !ok {
		return Unparseable("missing column list after FOREIGN KEY")
	}

	if !c.accept("REFERENCES") {
		return Unparseable("missing REFERENCES clause")
	}
	parent, ok := p.qualifiedName(c)
	if !ok {
		return Unparseable("missing table name after REFERENCES")
	}
	parentCols, ok := c.columnList()
	if !ok {
		return Unparseable("missing column list after REFERENCES")
	}

	if len(childCols) != len(parentCols) {
		return Unparseable(fmt.Sprintf("column count mismatch: %d child columns, %d parent columns",
			len(childCols), len(parentCols)))
	}

	edge := Edge{
		Child:         child,
		Parent:        parent,
		Name:          name,
		ChildColumns:  childCols,
		ParentColumns: parentCols,
	}

	for !c.done() {
		if c.peek().kind == tokSemicolon || c.peek().is("GO") {
			break
		}
		if !c.accept("ON") {
			c.pos++
			continue
		}
		switch {
		case c.accept("DELETE"):
			a, ok := c.action()
			if !ok {
				return Unparseable("unknown ON DELETE action")
			}
			edge.OnDelete = a
		case c.accept("UPDATE"):
			a, ok := c.action()
			if !ok {
				return Unparseable("unknown ON UPDATE action")
			}
			edge.OnUpdate = a
		default:
			return Unparseable("expected DELETE or UPDATE after ON")
		}
	}

	return Parsed(edge)
}

// qualifiedName reads name, schema.name or db.schema.name and returns schema.name.
func (p *Parser) qualifiedName(c *cursor) (string, bool) {
	first, ok := c.ident()
	if !ok {
		return "", false
	}
	parts := []string{first.text}
	for len(parts) < 3 && c.peek().kind == tokDot {
		c.pos++
		next, ok := c.ident()
		if !ok {
			return "", false
		}
		parts = append(parts, next.text)
	}

	switch len(parts) {
	case 1:
		return qualify(p.DefaultSchema, parts[0]), true
	default:
		return qualify(parts[len(parts)-2], parts[len(parts)-1]), true
	}
}

type cursor struct {
	tokens []token
	pos    int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.tokens)
}

func (c *cursor) peek() token {
	if c.done() {
		return token{kind: tokOther}
	}
	return c.tokens[c.pos]
}

func (c *cursor) accept(kw string) bool {
	if c.peek().is(kw) {
		c.pos++
		return true
	}
	return false
}

// seek advances past the first occurrence of the keyword sequence.
func (c *cursor) seek(kws ...string) bool {
	for i := c.pos; i+len(kws) <= len(c.tokens); i++ {
		match := true
		for j, kw := range kws {
			if !c.tokens[i+j].is(kw) {
				match = false
				break
			}
		}
		if match {
			c.pos = i + len(kws)
			return true
		}
	}
	return false
}

func (c *cursor) ident() (token, bool) {
	t := c.peek()
	if !t.isIdent() || t.text == "" {
		return token{}, false
	}
	c.pos++
	return t, true
}

func (c *cursor) columnList() ([]string, bool) {
	if c.peek().kind != tokLParen {
		return nil, false
	}
	c.pos++

	var cols []string
	for {
		t, ok := c.ident()
		if !ok {
			return nil, false
		}
		cols = append(cols, t.text)

		switch c.peek().kind {
		case tokComma:
			c.pos++
		case tokRParen:
			c.pos++
			return cols, true
		default:
			return nil, false
		}
	}
}

func (c *cursor) action() (Action, bool) {
	switch {
	case c.accept("CASCADE"):
		return ActionCascade, true
	case c.accept("RESTRICT"):
		return ActionRestrict, true
	case c.accept("SET"):
		if c.accept("NULL") {
			return ActionSetNull, true
		}
		if c.accept("DEFAULT") {
			return ActionSetDefault, true
		}
	case c.accept("NO"):
		if c.accept("ACTION") {
			return ActionNoAction, true
		}
	}
	return ActionUnspecified, false
}
