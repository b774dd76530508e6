// Package mosaicclient defines the narrow external capabilities the
// Indexer Core consumes from a MosaicClient and a Selection (spec §6),
// plus minimal in-memory implementations useful for composing a standalone
// cubeindexd process and for tests.
package mosaicclient

import (
	"github.com/cubeidx/cubeindexer/clause"
	"github.com/cubeidx/cubeindexer/cube"
	"github.com/cubeidx/cubeindexer/sqlquery"
)

// Client is the capability consumed from a MosaicClient (spec §6): it can
// produce its parametric aggregation query for a given filter predicate.
type Client interface {
	Query(filter sqlquery.Predicate) *sqlquery.Query
}

// IndexableClient is implemented by clients that can additionally report
// their own dims/aggr/aux decomposition. A client that doesn't implement
// this is treated as never indexable (spec §4.1 step 7: "Query
// indexColumns(client) -> IndexColumns | null").
type IndexableClient interface {
	Client
	IndexColumns() (cube.IndexColumns, bool)
}

// Selection is the capability consumed from a Selection (spec §6).
type Selection interface {
	// Remove returns a Selection with the given clause source removed, so
	// the DDL's WHERE contains only the non-active predicates.
	Remove(source any) Selection
	// Predicate materializes the filter predicate for a client.
	Predicate(c Client) sqlquery.Predicate
	// Skip is an optimization hint: true iff the client is unaffected by
	// the current cross-filter.
	Skip(c Client, active clause.ActiveClause) bool
}
