// Package sqlquery is a small, immutable SQL AST/printer: just enough
// algebra over queries, column references, and predicates for the cube
// indexer to compose DDL and SELECT text without round-tripping through a
// real parser.
package sqlquery

import (
	"fmt"
	"strings"
)

// Expr is any SQL expression that knows how to print itself and which
// base columns it reads from.
type Expr interface {
	SQL() string
	Columns() []string
}

// Column is a bare column reference, optionally qualified.
type Column struct {
	Table string
	Name  string
}

func Col(name string) Column { return Column{Name: name} }

func TableCol(table, name string) Column { return Column{Table: table, Name: name} }

func (c Column) SQL() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

func (c Column) Columns() []string { return []string{c.Name} }

// Raw is an already-rendered SQL fragment. Cols lists the base columns
// it depends on, since Raw can't introspect its own text.
type Raw struct {
	Text string
	Cols []string
}

func (r Raw) SQL() string      { return r.Text }
func (r Raw) Columns() []string { return r.Cols }

// As gives an expression an output alias, for use in a SELECT list.
type As struct {
	Expr  Expr
	Alias string
}

func (a As) SQL() string { return fmt.Sprintf("%s AS %s", a.Expr.SQL(), a.Alias) }

func (a As) Columns() []string { return a.Expr.Columns() }

// Call renders a SQL function call over one or more expressions, e.g.
// SUM(sales), FLOOR(x).
type Call struct {
	Func string
	Args []Expr
}

func (c Call) SQL() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.SQL()
	}
	return fmt.Sprintf("%s(%s)", c.Func, strings.Join(parts, ", "))
}

func (c Call) Columns() []string {
	var cols []string
	for _, a := range c.Args {
		cols = append(cols, a.Columns()...)
	}
	return cols
}

// Cast renders expr::typ (Postgres-style cast, matching the bin-function
// synthesizer's "::INTEGER"/"::DOUBLE" output in spec §4.5).
type Cast struct {
	Expr Expr
	Type string
}

func (c Cast) SQL() string { return fmt.Sprintf("%s::%s", c.Expr.SQL(), c.Type) }

func (c Cast) Columns() []string { return c.Expr.Columns() }

// BinOp renders `left op right`.
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

func (b BinOp) SQL() string { return fmt.Sprintf("%s %s %s", b.Left.SQL(), b.Op, b.Right.SQL()) }

func (b BinOp) Columns() []string { return append(b.Left.Columns(), b.Right.Columns()...) }

// Lit renders a literal value as SQL text. Number formats a numeric
// literal; callers pass pre-formatted text for anything else.
type Lit struct {
	Text string
}

func Number(v float64) Lit {
	return Lit{Text: trimFloat(v)}
}

func (l Lit) SQL() string       { return l.Text }
func (l Lit) Columns() []string { return nil }

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
