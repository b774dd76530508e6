package mosaicclient

import (
	"github.com/cubeidx/cubeindexer/clause"
	"github.com/cubeidx/cubeindexer/cube"
	"github.com/cubeidx/cubeindexer/sqlquery"
)

// StaticClient is a reference Client/IndexableClient used by tests and by
// cubeindexd's one-shot `index` subcommand: its query and index columns
// are fixed at construction rather than derived from a live reactive
// dataflow graph.
type StaticClient struct {
	Base    *sqlquery.Query
	Columns cube.IndexColumns
	Indexed bool
}

func (c *StaticClient) Query(filter sqlquery.Predicate) *sqlquery.Query {
	if filter == nil {
		return c.Base.Clone()
	}
	return c.Base.Clone().Where(filter)
}

func (c *StaticClient) IndexColumns() (cube.IndexColumns, bool) {
	if !c.Indexed {
		return cube.IndexColumns{}, false
	}
	return c.Columns, true
}

// StaticSelection is a reference Selection backed by a fixed per-client
// skip/predicate table.
type StaticSelection struct {
	Predicates map[Client]sqlquery.Predicate
	SkipFunc   func(Client, clause.ActiveClause) bool
	removed    []any
}

func (s *StaticSelection) Remove(source any) Selection {
	return &StaticSelection{
		Predicates: s.Predicates,
		SkipFunc:   s.SkipFunc,
		removed:    append(append([]any(nil), s.removed...), source),
	}
}

func (s *StaticSelection) Predicate(c Client) sqlquery.Predicate {
	if s.Predicates == nil {
		return sqlquery.Empty()
	}
	if p, ok := s.Predicates[c]; ok {
		return p
	}
	return sqlquery.Empty()
}

func (s *StaticSelection) Skip(c Client, active clause.ActiveClause) bool {
	if s.SkipFunc == nil {
		return false
	}
	return s.SkipFunc(c, active)
}
