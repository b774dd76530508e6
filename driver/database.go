// Package driver opens a *sql.DB for cubeindexd's supported dialects,
// registering each database/sql driver via blank import. It never deals
// with DDL construction or diffing; that's the coordinator and cube
// packages' job. Abstraction layer for multiple kinds of databases.
package driver

import (
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/cubeidx/cubeindexer/coordinator"
)

// driverName maps a Dialect to its database/sql driver name.
func driverName(dialect coordinator.Dialect) (string, error) {
	switch dialect {
	case coordinator.Postgres:
		return "postgres", nil
	case coordinator.MySQL:
		return "mysql", nil
	case coordinator.MSSQL:
		return "sqlserver", nil
	case coordinator.SQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("driver: unknown dialect %q", dialect)
	}
}

// Open opens a *sql.DB for the given dialect and DSN, pinging it once to
// surface connection errors at startup rather than on the first Exec.
func Open(dialect coordinator.Dialect, dsn string) (*sql.DB, error) {
	name, err := driverName(dialect)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
