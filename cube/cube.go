// Package cube implements the cube planner (spec §4.3, component C):
// combining a client query, active columns, and client-declared
// dims/aggregates/auxiliary columns into a materialized cube's DDL, a
// stable content-addressed table name, and a parameterized select query.
package cube

import (
	"fmt"
	"hash/fnv"

	"github.com/cubeidx/cubeindexer/clause"
	"github.com/cubeidx/cubeindexer/sqlquery"
	"github.com/cubeidx/cubeindexer/util"
)

// IndexColumns is what the client declares about its own aggregation
// query (spec §3): the GROUP BY dimensions, the aggregate SELECT items,
// and any auxiliary columns its subquery must carry down.
type IndexColumns struct {
	Dims []string
	Aggr []sqlquery.SelectItem
	Aux  map[string]sqlquery.Expr
}

// CubeInfo is the planner's output (spec §3). Result is filled in by the
// caller (the Indexer) once DDL submission begins; it is nil immediately
// after Plan returns.
type CubeInfo struct {
	ID     string
	Table  string
	Create string
	Active clause.ActiveColumns
	Select *sqlquery.Query
	Result Future
	Skip   bool
}

// Future is the asynchronous handle to a submitted DDL batch. It is
// satisfied by package coordinator; cube only depends on its shape.
type Future interface {
	Done() <-chan struct{}
	Err() error
}

// Plan composes a CubeInfo from the client's own query, the clause's
// active columns, the client's declared index columns, and the schema the
// cube table should live in (spec §4.3 steps 1-6).
func Plan(clientQuery *sqlquery.Query, active clause.ActiveColumns, idx IndexColumns, schema string) CubeInfo {
	extra := make([]sqlquery.SelectItem, 0, len(active.Columns)+len(idx.Aux))
	groupKeys := make([]string, 0, len(active.Columns))

	for name, expr := range util.CanonicalMapIter(active.Columns) {
		extra = append(extra, sqlquery.Select(expr, name))
		groupKeys = append(groupKeys, name)
	}
	for name, expr := range util.CanonicalMapIter(idx.Aux) {
		extra = append(extra, sqlquery.Select(expr, name))
	}

	q := clientQuery.WithSelect(extra).GroupBy(append(clientQuery.GroupByList(), groupKeys...)...)

	// Push the active columns' base-column dependencies down into every
	// subquery so the outer cube has the inputs it needs (spec §4.4).
	var baseCols []string
	for _, expr := range util.CanonicalMapIter(active.Columns) {
		baseCols = append(baseCols, expr.Columns()...)
	}
	sqlquery.PushDownColumns(q, dedupe(baseCols))

	// Ordering is deferred to the cube-select layer (spec §4.3 step 3).
	q, order := q.PopOrderBy()

	create := q.String()
	id := fnv1aHex(create)
	table := fmt.Sprintf("%s.cube_%s", schema, id)

	selectItems := util.TransformSlice(idx.Dims, func(d string) sqlquery.SelectItem {
		return sqlquery.Select(sqlquery.Col(d), "")
	})
	selectItems = append(selectItems, idx.Aggr...)

	sel := sqlquery.NewQuery(selectItems, sqlquery.Source{Table: table}).
		GroupBy(idx.Dims...).
		OrderBy(order...)

	return CubeInfo{
		ID:     id,
		Table:  table,
		Create: fmt.Sprintf("CREATE TABLE %s AS (%s)", table, create),
		Active: active,
		Select: sel,
		Result: nil,
		Skip:   false,
	}
}

// Query returns a select query against the materialized cube, filtered by
// the given active predicate value. The template never carries an
// accumulated WHERE across calls (spec §3 invariant 4, §8 round-trip
// property): each call clones the template and attaches a single WHERE.
func (c CubeInfo) Query(p clause.ActivePredicateArg) *sqlquery.Query {
	pred := c.Active.Predicate(p)
	return c.Select.Clone().Where(pred)
}

func dedupe(cols []string) []string {
	seen := make(map[string]bool, len(cols))
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// fnv1aHex hashes s with 32-bit FNV-1a and formats it as unpadded
// lowercase hex (spec §6 "Hashing").
func fnv1aHex(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum32())
}
