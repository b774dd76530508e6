// Package clause models a selection clause and implements the
// active-clause analyzer (spec §4.2, component B): given an active
// clause, derive the active columns, a predicate generator over them, and
// the clause's identity source.
package clause

import (
	"strconv"

	"github.com/cubeidx/cubeindexer/scale"
	"github.com/cubeidx/cubeindexer/sqlquery"
)

// Kind distinguishes a point selection (single-value filters, e.g. a
// legend click) from an interval selection (a brush/range filter).
type Kind string

const (
	Point    Kind = "point"
	Interval Kind = "interval"
)

// Metadata is the clause metadata named in spec §3.
type Metadata struct {
	Type      Kind
	Scales    []scale.Descriptor
	Bin       scale.BinMode
	PixelSize int
}

// FieldPredicate is the per-field shape of the clause's current predicate:
// for a point clause it lists the referenced base columns; for an
// interval clause it carries the scaled field expression(s) being
// filtered, one per scale in the multi-scale case.
type FieldPredicate struct {
	Columns  []string
	Field    sqlquery.Expr   // single-interval field expression
	Children []sqlquery.Expr // multi-interval: one field expression per scale
}

// ActiveClause is the clause currently driving cross-filtering, per spec
// §3. Source is an opaque identity token — equality of Source means "same
// clause lineage" (spec GLOSSARY).
type ActiveClause struct {
	Source    any
	Meta      *Metadata
	Predicate FieldPredicate
	// Raw is the clause's current SQL predicate, used verbatim for Point
	// clauses (spec §4.2: "predicate = x => x").
	Raw sqlquery.Predicate
}

// Range is one interval's current selection bounds, e.g. [20, 40].
type Range struct {
	Lo, Hi float64
}

// ActivePredicateArg is what the caller hands to ActiveColumns.Predicate
// to materialize a WHERE predicate for a specific selection value: either
// a single Range (single-scale interval) or one Range per child
// (multi-scale interval). For interval clauses a nil/zero-value arg yields
// the empty predicate; point clauses ignore the arg and return Raw.
type ActivePredicateArg struct {
	Range    *Range
	Children []Range
}

// ActiveColumns is the result of analyzing an active clause (spec §3):
// the discretized/raw expressions that make the clause's value space a
// finite, coarsely-keyed dimension of the cube, plus a predicate
// generator over them. A nil Source marks "not indexable."
type ActiveColumns struct {
	Source    any
	Columns   map[string]sqlquery.Expr
	Predicate func(ActivePredicateArg) sqlquery.Predicate
}

// Unindexable is the canonical "this clause kind can't be cubed" value.
func Unindexable() ActiveColumns {
	return ActiveColumns{Source: nil}
}

func (a ActiveColumns) Indexable() bool {
	return a.Source != nil
}

// Analyze implements the active-clause analyzer (spec §4.2).
func Analyze(c ActiveClause) ActiveColumns {
	noColumns := c.Predicate.Columns == nil && c.Predicate.Field == nil && len(c.Predicate.Children) == 0
	if c.Meta == nil || noColumns {
		return Unindexable()
	}

	switch c.Meta.Type {
	case Point:
		return analyzePoint(c)
	case Interval:
		if len(c.Meta.Scales) == 0 {
			return Unindexable()
		}
		return analyzeInterval(c)
	default:
		return Unindexable()
	}
}

func analyzePoint(c ActiveClause) ActiveColumns {
	cols := make(map[string]sqlquery.Expr, len(c.Predicate.Columns))
	for _, col := range c.Predicate.Columns {
		cols[col] = sqlquery.Col(col)
	}
	raw := c.Raw
	return ActiveColumns{
		Source:  c.Source,
		Columns: cols,
		Predicate: func(ActivePredicateArg) sqlquery.Predicate {
			if raw == nil {
				return sqlquery.Empty()
			}
			return raw
		},
	}
}

func analyzeInterval(c ActiveClause) ActiveColumns {
	bins := make([]scale.BinFn, len(c.Meta.Scales))
	for i, s := range c.Meta.Scales {
		fn, ok := scale.Synthesize(s, c.Meta.PixelSize, c.Meta.Bin)
		if !ok {
			return Unindexable()
		}
		bins[i] = fn
	}

	if len(bins) == 1 {
		if c.Predicate.Field == nil {
			return Unindexable()
		}
		column := bins[0](c.Predicate.Field)
		cols := map[string]sqlquery.Expr{"active0": column}
		return ActiveColumns{
			Source:  c.Source,
			Columns: cols,
			Predicate: func(p ActivePredicateArg) sqlquery.Predicate {
				if p.Range == nil {
					return sqlquery.Empty()
				}
				lo := bins[0](sqlquery.Number(p.Range.Lo))
				hi := bins[0](sqlquery.Number(p.Range.Hi))
				return betweenExprs("active0", lo, hi)
			},
		}
	}

	if len(c.Predicate.Children) != len(bins) {
		return Unindexable()
	}
	cols := make(map[string]sqlquery.Expr, len(bins))
	for i, bin := range bins {
		cols[activeName(i)] = bin(c.Predicate.Children[i])
	}
	return ActiveColumns{
		Source:  c.Source,
		Columns: cols,
		Predicate: func(p ActivePredicateArg) sqlquery.Predicate {
			if len(p.Children) != len(bins) {
				return sqlquery.Empty()
			}
			preds := make([]sqlquery.Predicate, len(bins))
			for i, bin := range bins {
				lo := bin(sqlquery.Number(p.Children[i].Lo))
				hi := bin(sqlquery.Number(p.Children[i].Hi))
				preds[i] = betweenExprs(activeName(i), lo, hi)
			}
			return sqlquery.And(preds...)
		},
	}
}

func activeName(i int) string {
	return "active" + strconv.Itoa(i)
}

// betweenExprs renders `col BETWEEN lo AND hi` where lo/hi are themselves
// already-rendered bin expressions (the active predicate compares against
// the *binned* selection bounds, not the raw domain values).
func betweenExprs(column string, lo, hi sqlquery.Expr) sqlquery.Predicate {
	return sqlquery.Verbatim(
		sqlquery.Col(column).SQL()+" BETWEEN "+lo.SQL()+" AND "+hi.SQL(),
		column,
	)
}
