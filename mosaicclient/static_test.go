package mosaicclient

import (
	"testing"

	"github.com/cubeidx/cubeindexer/clause"
	"github.com/cubeidx/cubeindexer/cube"
	"github.com/cubeidx/cubeindexer/sqlquery"
	"github.com/stretchr/testify/assert"
)

func TestStaticClientQueryAppliesFilter(t *testing.T) {
	c := &StaticClient{Base: sqlquery.NewQuery(
		[]sqlquery.SelectItem{sqlquery.Select(sqlquery.Col("a"), "")},
		sqlquery.Source{Table: "t"},
	)}

	unfiltered := c.Query(nil)
	filtered := c.Query(sqlquery.Verbatim("a > 1"))

	assert.NotContains(t, unfiltered.String(), "WHERE")
	assert.Contains(t, filtered.String(), "WHERE a > 1")
}

func TestStaticClientIndexColumnsRespectsIndexedFlag(t *testing.T) {
	c := &StaticClient{Columns: cube.IndexColumns{Dims: []string{"a"}}, Indexed: false}
	_, ok := c.IndexColumns()
	assert.False(t, ok)

	c.Indexed = true
	cols, ok := c.IndexColumns()
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, cols.Dims)
}

func TestStaticSelectionSkipDefaultsToFalse(t *testing.T) {
	s := &StaticSelection{}
	assert.False(t, s.Skip(&StaticClient{}, clause.ActiveClause{}))
}

func TestStaticSelectionRemoveTracksSources(t *testing.T) {
	s := &StaticSelection{}
	s2 := s.Remove("brush1").(*StaticSelection)
	assert.Equal(t, []any{"brush1"}, s2.removed)
	assert.Empty(t, s.removed, "Remove must not mutate the receiver")
}

func TestStaticSelectionPredicateFallsBackToEmpty(t *testing.T) {
	c := &StaticClient{}
	s := &StaticSelection{}
	assert.Equal(t, "", s.Predicate(c).SQL())
}
