package driver

import (
	"fmt"
	"net/url"
)

// PostgresDSN assembles a postgres:// DSN from parts (spec's Domain Stack:
// lib/pq), generalizing the teacher's fixed-user/no-password form into one
// that accepts every part explicitly.
func PostgresDSN(user, password, host, database string) string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   host,
		Path:   "/" + database,
	}
	if user != "" {
		if password != "" {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

// PostgresSchemaDSN appends a search_path query parameter so a connection
// defaults to the cube schema without every query needing to qualify it.
func PostgresSchemaDSN(dsn, schema string) string {
	return fmt.Sprintf("%s?search_path=%s", dsn, url.QueryEscape(schema))
}
