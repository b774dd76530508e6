// Package coordinator implements the Coordinator capability consumed by
// the Indexer (spec §6): exec(statements) -> future<result>, plus a
// logger. This is the only package that actually talks to a database/sql
// driver; the Indexer Core itself only ever sees this narrow interface.
package coordinator

import (
	"context"
	"database/sql"
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v2"
)

// Coordinator is the capability named in spec §6: submit SQL for
// execution, and a place to send errors.
type Coordinator interface {
	Exec(statements ...string) *Future
	Logger() Logger
}

// Dialect selects dialect-specific validation/quoting the Coordinator
// applies before submitting DDL.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	MSSQL    Dialect = "mssql"
	SQLite   Dialect = "sqlite"
)

// DB is the default Coordinator implementation: a *sql.DB plus a logger,
// executing each Exec batch inside its own transaction (mirrors
// database.RunDDLs's per-call transaction in the teacher).
type DB struct {
	Conn    *sql.DB
	Dialect Dialect
	Log     Logger
}

func NewDB(conn *sql.DB, dialect Dialect, logger Logger) *DB {
	if logger == nil {
		logger = NullLogger{}
	}
	return &DB{Conn: conn, Dialect: dialect, Log: logger}
}

func (d *DB) Logger() Logger { return d.Log }

// Exec submits statements as one batch and returns immediately; the batch
// runs in its own goroutine inside a single transaction, preserving the
// order the caller gave (spec §5: DDL submissions are issued in the order
// of their index() calls, and CREATE SCHEMA must land before the table
// DDL within one submission).
func (d *DB) Exec(statements ...string) *Future {
	f := newFuture()

	go func() {
		err := d.run(context.Background(), statements)
		if err != nil {
			d.Log.Error(err, "statements", statements)
		}
		f.resolve(err)
	}()

	return f
}

func (d *DB) run(ctx context.Context, statements []string) error {
	if d.Dialect == Postgres {
		for _, stmt := range statements {
			if err := validatePostgres(stmt); err != nil {
				return fmt.Errorf("invalid DDL %q: %w", stmt, err)
			}
		}
	}

	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// validatePostgres round-trips a DDL statement through the real Postgres
// grammar before it's submitted, catching a malformed cube plan before it
// reaches the wire (spec §7: DDL execution failures are routed to the
// logger, but a statement that can't even parse is worth catching
// earlier).
func validatePostgres(stmt string) error {
	_, err := pg_query.Parse(stmt)
	return err
}
