package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cubeidx/cubeindexer/clause"
	"github.com/cubeidx/cubeindexer/coordinator"
	"github.com/cubeidx/cubeindexer/cube"
	"github.com/cubeidx/cubeindexer/mosaicclient"
	"github.com/cubeidx/cubeindexer/sqlquery"
)

type fakeCoordinator struct {
	batches [][]string
}

func (f *fakeCoordinator) Exec(statements ...string) *coordinator.Future {
	f.batches = append(f.batches, append([]string(nil), statements...))
	fut, resolve := coordinator.NewResolvedFuture()
	resolve(nil)
	return fut
}

func (f *fakeCoordinator) Logger() coordinator.Logger { return coordinator.NullLogger{} }

func indexableClient(indexed bool) *mosaicclient.StaticClient {
	return &mosaicclient.StaticClient{
		Base: sqlquery.NewQuery(
			[]sqlquery.SelectItem{sqlquery.Select(sqlquery.Col("id"), "")},
			sqlquery.Source{Table: "events"},
		),
		Columns: cube.IndexColumns{Dims: []string{"active0"}},
		Indexed: indexed,
	}
}

func pointClause(source any, column string) clause.ActiveClause {
	return clause.ActiveClause{
		Source:    source,
		Meta:      &clause.Metadata{Type: clause.Point},
		Predicate: clause.FieldPredicate{Columns: []string{column}},
		Raw:       sqlquery.Verbatim(column + " = 1"),
	}
}

func TestIndexDisabledIsUnindexable(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord, WithEnabled(false))
	client := indexableClient(true)

	entry := idx.Index(client, &mosaicclient.StaticSelection{}, pointClause("b1", "state"))
	assert.False(t, entry.IsIndexable())
	assert.Empty(t, coord.batches)
}

func TestIndexNilClauseSourceIsUnindexable(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord)
	client := indexableClient(true)

	entry := idx.Index(client, &mosaicclient.StaticSelection{}, clause.ActiveClause{})
	assert.False(t, entry.IsIndexable())
}

func TestIndexBuildsAndSubmitsDDLOnce(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord)
	client := indexableClient(true)
	sel := &mosaicclient.StaticSelection{}
	c := pointClause("b1", "state")

	entry1 := idx.Index(client, sel, c)
	entry2 := idx.Index(client, sel, c)

	if !assert.True(t, entry1.IsIndexable()) {
		return
	}
	assert.True(t, entry2.IsIndexable())
	assert.Equal(t, entry1.CubeInfo().ID, entry2.CubeInfo().ID)
	assert.Len(t, coord.batches, 1, "the second Index call must hit the per-client cache, not resubmit DDL")
	assert.Contains(t, coord.batches[0][0], "CREATE SCHEMA IF NOT EXISTS")
	assert.Contains(t, coord.batches[0][1], "CREATE TABLE")
}

func TestIndexNonIndexableClientIsMemoizedUnindexable(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord)
	client := indexableClient(false)

	entry := idx.Index(client, &mosaicclient.StaticSelection{}, pointClause("b1", "state"))
	assert.False(t, entry.IsIndexable())
	assert.Empty(t, coord.batches)
}

func TestIndexSkipSelectionIsMemoized(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord)
	client := indexableClient(true)
	sel := &mosaicclient.StaticSelection{SkipFunc: func(mosaicclient.Client, clause.ActiveClause) bool { return true }}

	entry := idx.Index(client, sel, pointClause("b1", "state"))
	assert.True(t, entry.IsSkip())
	assert.Empty(t, coord.batches)
}

func TestIndexClearsCacheWhenClauseSourceChanges(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord)
	client := indexableClient(true)
	sel := &mosaicclient.StaticSelection{}

	idx.Index(client, sel, pointClause("b1", "state"))
	idx.Index(client, sel, pointClause("b2", "country"))

	assert.Len(t, coord.batches, 2, "a new clause source must re-plan instead of reusing b1's cube")
}

func TestSetEnabledFalseClearsCache(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord)
	client := indexableClient(true)
	sel := &mosaicclient.StaticSelection{}

	idx.Index(client, sel, pointClause("b1", "state"))
	idx.SetEnabled(false)
	assert.Nil(t, idx.active)
	assert.Empty(t, idx.indexes)
}

func TestSetSchemaClearsCache(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord)
	client := indexableClient(true)
	sel := &mosaicclient.StaticSelection{}

	idx.Index(client, sel, pointClause("b1", "state"))
	idx.SetSchema("other")
	assert.Equal(t, "other", idx.Schema())
	assert.Empty(t, idx.indexes)
}

func TestDropIndexTablesSubmitsDropSchemaUnderCapturedName(t *testing.T) {
	coord := &fakeCoordinator{}
	idx := New(coord, WithSchema("analytics"))

	f := idx.DropIndexTables()
	<-f.Done()
	assert.NoError(t, f.Err())
	assert.Equal(t, []string{`DROP SCHEMA IF EXISTS "analytics" CASCADE`}, coord.batches[0])
}
