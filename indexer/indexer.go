// Package indexer implements the top-level Indexer (spec §4.1, component
// E): the per-coordinator actor holding the active-clause cache, the
// per-client cube-info cache, and the enable flag and schema name, that
// orchestrates the bin synthesizer, active-clause analyzer, cube planner,
// and subquery push-down, and issues DDL through a Coordinator.
//
// Indexer is a single-threaded cooperative actor (spec §5): Index is
// synchronous with respect to its own state, and the only suspension
// point is waiting on a CacheEntry's Future. A caller sharing one Indexer
// across goroutines must serialize Index/Clear/SetEnabled/SetSchema/
// DropIndexTables itself — see Indexer.Lock.
package indexer

import (
	"fmt"
	"sync"

	"github.com/cubeidx/cubeindexer/clause"
	"github.com/cubeidx/cubeindexer/coordinator"
	"github.com/cubeidx/cubeindexer/cube"
	"github.com/cubeidx/cubeindexer/mosaicclient"
)

const defaultSchema = "mosaic"

type entryKind int

const (
	entryUnindexable entryKind = iota
	entrySkip
	entryBuilt
)

// CacheEntry is the sum type CubeInfo | Skip | null named in spec §3/§4.1,
// modeled per the design note in spec §9 ("unify as CacheEntry =
// Built(CubeInfo) | Skip | Unindexable").
type CacheEntry struct {
	kind entryKind
	info cube.CubeInfo
}

func unindexableEntry() CacheEntry { return CacheEntry{kind: entryUnindexable} }

func skipEntry() CacheEntry { return CacheEntry{kind: entrySkip} }

func builtEntry(info cube.CubeInfo) CacheEntry { return CacheEntry{kind: entryBuilt, info: info} }

// IsIndexable reports whether this entry carries a materialized cube.
func (e CacheEntry) IsIndexable() bool { return e.kind == entryBuilt }

// IsSkip reports the Skip sentinel: the client exists but this update
// doesn't touch it.
func (e CacheEntry) IsSkip() bool { return e.kind == entrySkip }

// CubeInfo returns the materialized cube info. Only meaningful when
// IsIndexable() is true.
func (e CacheEntry) CubeInfo() cube.CubeInfo { return e.info }

// Indexer is the top-level state named in spec §3.
type Indexer struct {
	mu    sync.Mutex
	coord coordinator.Coordinator

	schema  string
	enabled bool

	active  *clause.ActiveColumns
	indexes map[mosaicclient.Client]CacheEntry
}

// Option configures an Indexer at construction.
type Option func(*Indexer)

// WithSchema overrides the default "mosaic" schema name.
func WithSchema(schema string) Option {
	return func(i *Indexer) { i.schema = schema }
}

// WithEnabled sets the initial enabled flag (default true).
func WithEnabled(enabled bool) Option {
	return func(i *Indexer) { i.enabled = enabled }
}

// New creates an Indexer bound to the given Coordinator.
func New(coord coordinator.Coordinator, opts ...Option) *Indexer {
	i := &Indexer{
		coord:   coord,
		schema:  defaultSchema,
		enabled: true,
		indexes: make(map[mosaicclient.Client]CacheEntry),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Lock/Unlock let a multi-threaded caller serialize Index/Clear/
// SetEnabled/SetSchema/DropIndexTables per spec §5's cross-thread
// contract; a single-threaded caller can ignore these.
func (i *Indexer) Lock()   { i.mu.Lock() }
func (i *Indexer) Unlock() { i.mu.Unlock() }

// Enabled reports the current enabled flag.
func (i *Indexer) Enabled() bool { return i.enabled }

// SetEnabled toggles the Indexer. Disabling calls Clear() first and has no
// effect on persisted cube tables (spec §4.1).
func (i *Indexer) SetEnabled(enabled bool) {
	if !enabled {
		i.Clear()
	}
	i.enabled = enabled
}

// Schema returns the current cube schema name.
func (i *Indexer) Schema() string { return i.schema }

// SetSchema changes the schema name, clearing the cache; it does not drop
// existing tables under the old schema (spec §4.1).
func (i *Indexer) SetSchema(schema string) {
	i.Clear()
	i.schema = schema
}

// Clear empties the per-client cache and forgets the active clause.
// Outstanding DDL futures are not cancelled (spec §4.1, §5).
func (i *Indexer) Clear() {
	i.indexes = make(map[mosaicclient.Client]CacheEntry)
	i.active = nil
}

// DropIndexTables clears local state, then submits
// `DROP SCHEMA IF EXISTS "<schema>" CASCADE` through the coordinator
// (spec §4.1). The schema name is read once at the start of the call and
// that name is the one dropped; this method takes no lock (see Lock).
func (i *Indexer) DropIndexTables() *coordinator.Future {
	schema := i.schema
	i.Clear()
	return i.coord.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %q CASCADE", schema))
}

// Index implements the index algorithm of spec §4.1: given a client, its current
// Selection, and the clause that just changed, decide whether the pair is
// indexable and, if so, ensure its cube DDL has been (or is being)
// materialized.
func (i *Indexer) Index(client mosaicclient.Client, sel mosaicclient.Selection, c clause.ActiveClause) CacheEntry {
	if !i.enabled {
		return unindexableEntry()
	}
	if c.Source == nil {
		return unindexableEntry()
	}

	if i.active != nil && i.active.Source != c.Source {
		i.Clear()
	}
	if i.active != nil && i.active.Source == nil {
		return unindexableEntry()
	}

	if i.active == nil {
		ac := clause.Analyze(c)
		i.active = &ac
		if ac.Source == nil {
			return unindexableEntry()
		}
	}

	if client == nil {
		panic("indexer: Index called with a nil client")
	}

	if entry, ok := i.indexes[client]; ok {
		return entry
	}

	idxClient, ok := client.(mosaicclient.IndexableClient)
	if !ok {
		i.indexes[client] = unindexableEntry()
		return unindexableEntry()
	}

	idxCols, ok := idxClient.IndexColumns()
	if !ok {
		entry := unindexableEntry()
		i.indexes[client] = entry
		return entry
	}

	if sel.Skip(client, c) {
		entry := skipEntry()
		i.indexes[client] = entry
		return entry
	}

	filter := sel.Remove(c.Source).Predicate(client)
	clientQuery := client.Query(filter)

	info := cube.Plan(clientQuery, *i.active, idxCols, i.schema)
	info.Result = i.coord.Exec(
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", i.schema),
		info.Create,
	)

	entry := builtEntry(info)
	i.indexes[client] = entry
	return entry
}
