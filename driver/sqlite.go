package driver

// SQLiteDSN returns a file-path DSN for modernc.org/sqlite (spec's Domain
// Stack), used by cubeindexd's local/test mode where no server is
// available.
func SQLiteDSN(path string) string {
	return path
}
