package sqlquery

import (
	"fmt"
	"strings"
)

// SelectItem is one entry of a SELECT list: an expression plus an optional
// output alias.
type SelectItem struct {
	Expr  Expr
	Alias string
}

func Select(expr Expr, alias string) SelectItem { return SelectItem{Expr: expr, Alias: alias} }

func (s SelectItem) SQL() string {
	if s.Alias == "" {
		return s.Expr.SQL()
	}
	return fmt.Sprintf("%s AS %s", s.Expr.SQL(), s.Alias)
}

// outputName is the name this item is addressable by in an outer scope:
// its alias if given, otherwise the bare column name for a plain Column.
func (s SelectItem) outputName() string {
	if s.Alias != "" {
		return s.Alias
	}
	if c, ok := s.Expr.(Column); ok {
		return c.Name
	}
	return s.Expr.SQL()
}

// Source is one FROM-list entry: a named table, or a nested query.
type Source struct {
	Table    string
	Subquery *Query
	Alias    string
}

func (s Source) SQL() string {
	if s.Subquery != nil {
		text := "(" + s.Subquery.String() + ")"
		if s.Alias != "" {
			text += " AS " + s.Alias
		}
		return text
	}
	text := s.Table
	if s.Alias != "" {
		text += " AS " + s.Alias
	}
	return text
}

// cte is one WITH-clause binding.
type cte struct {
	name  string
	query *Query
}

// Query is an immutable builder: every mutator returns a new value, so
// clones never alias the original's slices (spec §9 open question on
// clone()/toString() interaction is resolved by making the builder
// copy-on-write throughout).
type Query struct {
	with       []cte
	selectList []SelectItem
	from       []Source
	where      Predicate
	groupBy    []string
	orderBy    []string
}

// NewQuery starts a query selecting the given items from the given
// sources.
func NewQuery(items []SelectItem, from ...Source) *Query {
	return &Query{
		selectList: append([]SelectItem(nil), items...),
		from:       append([]Source(nil), from...),
	}
}

// With attaches a common-table-expression binding.
func (q *Query) With(name string, sub *Query) *Query {
	n := q.clone()
	n.with = append(n.with, cte{name: name, query: sub})
	return n
}

// SelectList returns the query's current SELECT items (the "get" half of
// the overloaded select()/select(items) builder method named in spec §9).
func (q *Query) SelectList() []SelectItem {
	return append([]SelectItem(nil), q.selectList...)
}

// WithSelect is the "set" half: it adds items to the SELECT list,
// deduplicating by output alias/name so repeated calls with overlapping
// columns are idempotent (mirrors the builder's own select(cols)
// dedup-by-alias behavior referenced in spec §4.4).
func (q *Query) WithSelect(items []SelectItem) *Query {
	n := q.clone()
	seen := make(map[string]bool, len(n.selectList))
	for _, it := range n.selectList {
		seen[it.outputName()] = true
	}
	for _, it := range items {
		if seen[it.outputName()] {
			continue
		}
		seen[it.outputName()] = true
		n.selectList = append(n.selectList, it)
	}
	return n
}

// Where replaces the query's WHERE predicate.
func (q *Query) Where(p Predicate) *Query {
	n := q.clone()
	n.where = p
	return n
}

// GroupBy replaces the GROUP BY key list.
func (q *Query) GroupBy(cols ...string) *Query {
	n := q.clone()
	n.groupBy = append([]string(nil), cols...)
	return n
}

// GroupByList returns the query's current GROUP BY keys.
func (q *Query) GroupByList() []string {
	return append([]string(nil), q.groupBy...)
}

// OrderBy replaces the ORDER BY list.
func (q *Query) OrderBy(cols ...string) *Query {
	n := q.clone()
	n.orderBy = append([]string(nil), cols...)
	return n
}

// OrderByList returns the current ORDER BY list.
func (q *Query) OrderByList() []string {
	return append([]string(nil), q.orderBy...)
}

// PopOrderBy captures and removes the query's ORDER BY list, per cube
// planner step 3 (spec §4.3): ordering is deferred to the cube-select
// layer, so the DDL that materializes the cube itself doesn't need one.
func (q *Query) PopOrderBy() (*Query, []string) {
	order := q.OrderByList()
	n := q.clone()
	n.orderBy = nil
	return n, order
}

// Clone returns a deep-enough copy for the caller to mutate independently.
func (q *Query) Clone() *Query {
	return q.clone()
}

func (q *Query) clone() *Query {
	n := &Query{
		with:       append([]cte(nil), q.with...),
		selectList: append([]SelectItem(nil), q.selectList...),
		from:       append([]Source(nil), q.from...),
		where:      q.where,
		groupBy:    append([]string(nil), q.groupBy...),
		orderBy:    append([]string(nil), q.orderBy...),
	}
	return n
}

// Subqueries returns this query's immediate subquery graph: FROM entries
// that are themselves queries, plus FROM references that resolve against
// this query's own WITH bindings (spec §4.4, "subquery discovery").
func (q *Query) Subqueries() []*Query {
	var subs []*Query
	for _, f := range q.from {
		if f.Subquery != nil {
			subs = append(subs, f.Subquery)
			continue
		}
		for _, c := range q.with {
			if c.name == f.Table {
				subs = append(subs, c.query)
				break
			}
		}
	}
	return subs
}

// String renders the query as SQL text. Rendering is a pure function of
// the struct, so two structurally identical queries always print
// identically.
func (q *Query) String() string {
	var b strings.Builder

	if len(q.with) > 0 {
		b.WriteString("WITH ")
		parts := make([]string, len(q.with))
		for i, c := range q.with {
			parts[i] = fmt.Sprintf("%s AS (%s)", c.name, c.query.String())
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(" ")
	}

	b.WriteString("SELECT ")
	items := make([]string, len(q.selectList))
	for i, it := range q.selectList {
		items[i] = it.SQL()
	}
	if len(items) == 0 {
		b.WriteString("*")
	} else {
		b.WriteString(strings.Join(items, ", "))
	}

	if len(q.from) > 0 {
		sources := make([]string, len(q.from))
		for i, f := range q.from {
			sources[i] = f.SQL()
		}
		b.WriteString(" FROM ")
		b.WriteString(strings.Join(sources, ", "))
	}

	if q.where != nil && q.where.SQL() != "" {
		b.WriteString(" WHERE ")
		b.WriteString(q.where.SQL())
	}

	if len(q.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(q.groupBy, ", "))
	}

	if len(q.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(q.orderBy, ", "))
	}

	return b.String()
}
