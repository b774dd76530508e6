package coordinator

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	errs []error
}

func (r *recordingLogger) Error(err error, fields ...any) {
	r.errs = append(r.errs, err)
}

func openMemDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDBExecRunsStatementsInOneTransaction(t *testing.T) {
	conn := openMemDB(t)
	d := NewDB(conn, SQLite, &recordingLogger{})

	f := d.Exec(
		"CREATE TABLE t (id INTEGER)",
		"INSERT INTO t (id) VALUES (1)",
	)
	<-f.Done()
	assert.NoError(t, f.Err())

	var count int
	assert.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM t").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDBExecRollsBackOnFailure(t *testing.T) {
	conn := openMemDB(t)
	logger := &recordingLogger{}
	d := NewDB(conn, SQLite, logger)

	f := d.Exec(
		"CREATE TABLE t (id INTEGER)",
		"INSERT INTO missing_table (id) VALUES (1)",
	)
	<-f.Done()
	assert.Error(t, f.Err())
	assert.Len(t, logger.errs, 1)

	var name string
	err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='t'").Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows, "a failed batch must not leave partial DDL applied")
}

func TestNewDBDefaultsToNullLogger(t *testing.T) {
	conn := openMemDB(t)
	d := NewDB(conn, SQLite, nil)
	assert.IsType(t, NullLogger{}, d.Logger())
}
