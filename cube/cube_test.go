package cube

import (
	"testing"

	"github.com/cubeidx/cubeindexer/clause"
	"github.com/cubeidx/cubeindexer/sqlquery"
	"github.com/stretchr/testify/assert"
)

func TestPlanProducesStableContentAddressedTable(t *testing.T) {
	q := sqlquery.NewQuery(
		[]sqlquery.SelectItem{sqlquery.Select(sqlquery.Col("id"), "")},
		sqlquery.Source{Table: "events"},
	)
	active := clause.ActiveColumns{
		Source:  "brush1",
		Columns: map[string]sqlquery.Expr{"active0": sqlquery.Col("latency_ms")},
		Predicate: func(clause.ActivePredicateArg) sqlquery.Predicate {
			return sqlquery.Empty()
		},
	}
	idx := IndexColumns{
		Dims: []string{"active0"},
		Aggr: []sqlquery.SelectItem{sqlquery.Select(sqlquery.Call{Func: "COUNT", Args: []sqlquery.Expr{sqlquery.Raw{Text: "*"}}}, "count")},
	}

	info1 := Plan(q, active, idx, "mosaic")
	info2 := Plan(q, active, idx, "mosaic")

	assert.Equal(t, info1.ID, info2.ID, "planning the same inputs twice must yield the same content hash")
	assert.Equal(t, "mosaic.cube_"+info1.ID, info1.Table)
	assert.Contains(t, info1.Create, "CREATE TABLE "+info1.Table+" AS (")
}

func TestPlanDeferesOrderingToSelectLayer(t *testing.T) {
	q := sqlquery.NewQuery(
		[]sqlquery.SelectItem{sqlquery.Select(sqlquery.Col("id"), "")},
		sqlquery.Source{Table: "events"},
	).OrderBy("id")
	active := clause.ActiveColumns{
		Source:  "brush1",
		Columns: map[string]sqlquery.Expr{"active0": sqlquery.Col("latency_ms")},
		Predicate: func(clause.ActivePredicateArg) sqlquery.Predicate {
			return sqlquery.Empty()
		},
	}
	idx := IndexColumns{Dims: []string{"active0"}}

	info := Plan(q, active, idx, "mosaic")

	assert.NotContains(t, info.Create, "ORDER BY", "the materializing DDL must not carry an ORDER BY")
	assert.Contains(t, info.Select.String(), "ORDER BY id", "ordering moves to the cube-select template")
}

func TestQueryAttachesActivePredicateFresh(t *testing.T) {
	sel := sqlquery.NewQuery(
		[]sqlquery.SelectItem{sqlquery.Select(sqlquery.Col("active0"), "")},
		sqlquery.Source{Table: "mosaic.cube_x"},
	)
	info := CubeInfo{
		Select: sel,
		Active: clause.ActiveColumns{
			Predicate: func(p clause.ActivePredicateArg) sqlquery.Predicate {
				if p.Range == nil {
					return sqlquery.Empty()
				}
				return sqlquery.IsBetween("active0", p.Range.Lo, p.Range.Hi)
			},
		},
	}

	q1 := info.Query(clause.ActivePredicateArg{Range: &clause.Range{Lo: 1, Hi: 2}})
	q2 := info.Query(clause.ActivePredicateArg{Range: &clause.Range{Lo: 3, Hi: 4}})

	assert.Contains(t, q1.String(), "BETWEEN 1 AND 2")
	assert.Contains(t, q2.String(), "BETWEEN 3 AND 4")
	assert.NotContains(t, q2.String(), "BETWEEN 1 AND 2", "each Query call must start from the template, not accumulate WHERE")
}
