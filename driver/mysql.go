package driver

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// MySQLDSN assembles a MySQL DSN via the driver's own Config/FormatDSN,
// mirroring the teacher's mysqlBuildDSN (spec's Domain Stack:
// go-sql-driver/mysql).
func MySQLDSN(user, password, host string, port int, database string) string {
	c := mysql.NewConfig()
	c.User = user
	c.Passwd = password
	c.Net = "tcp"
	c.Addr = fmt.Sprintf("%s:%d", host, port)
	c.DBName = database
	c.ParseTime = true
	return c.FormatDSN()
}
