package driver

import "fmt"

// MSSQLDSN assembles a sqlserver:// DSN (spec's Domain Stack:
// denisenkom/go-mssqldb), following the same parts-to-DSN shape as
// PostgresDSN/MySQLDSN.
func MSSQLDSN(user, password, host string, port int, database string) string {
	return fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s", user, password, host, port, database)
}
