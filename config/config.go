// Package config parses cubeindexd's YAML configuration file, mirroring
// database.GeneratorConfig/ParseGeneratorConfig's strict-decode-then-
// normalize shape (Fatal on malformed YAML at startup rather than a typed
// error return, since this only ever runs once before the process accepts
// work).
package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/cubeidx/cubeindexer/coordinator"
)

// Config is cubeindexd's top-level configuration (spec §3/§4.1's Indexer
// state plus the connection/driver settings needed to stand one up).
type Config struct {
	Schema  string
	Enabled bool

	Dialect coordinator.Dialect
	DSN     string

	// Concurrency bounds fan-out for the reindex subcommand's per-target
	// DropIndexTables calls (0 means sequential, mirroring
	// GeneratorConfig.DumpConcurrency/coordinator.ConcurrentMap).
	Concurrency int

	// LogLevel is one of "debug", "info", "warn", "error" (default "info"),
	// consumed by cmd/cubeindexd to configure log/slog.
	LogLevel string
}

// defaults mirrors the Indexer's own zero-value defaults (spec §3) so a
// config file only needs to mention what it overrides.
func defaults() Config {
	return Config{
		Schema:   "mosaic",
		Enabled:  true,
		Dialect:  coordinator.Postgres,
		LogLevel: "info",
	}
}

// rawConfig is the literal YAML shape, a flat set of scalar keys:
//
//	schema: analytics
//	dialect: postgres
//	dsn: postgres://localhost/app
//	log_level: debug
type rawConfig struct {
	Schema      string `yaml:"schema"`
	Enabled     *bool  `yaml:"enabled"`
	Dialect     string `yaml:"dialect"`
	DSN         string `yaml:"dsn"`
	Concurrency int    `yaml:"concurrency"`
	LogLevel    string `yaml:"log_level"`
}

// Parse reads and strictly decodes a YAML config file, applying it over
// the defaults. An empty path returns the defaults unchanged (mirrors
// ParseGeneratorConfig's configFile == "" short-circuit).
func Parse(path string) Config {
	if path == "" {
		return defaults()
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return ParseBytes(buf)
}

// ParseBytes strictly decodes YAML bytes over the defaults.
func ParseBytes(buf []byte) Config {
	cfg := defaults()
	if len(buf) == 0 {
		return cfg
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.SetStrict(true)
	if err := dec.Decode(&raw); err != nil {
		log.Fatal(err)
	}

	if raw.Schema != "" {
		cfg.Schema = strings.TrimSpace(raw.Schema)
	}
	if raw.Enabled != nil {
		cfg.Enabled = *raw.Enabled
	}
	if raw.Dialect != "" {
		d, err := parseDialect(raw.Dialect)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Dialect = d
	}
	if raw.DSN != "" {
		cfg.DSN = raw.DSN
	}
	if raw.Concurrency != 0 {
		cfg.Concurrency = raw.Concurrency
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}

	return cfg
}

func parseDialect(s string) (coordinator.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql":
		return coordinator.Postgres, nil
	case "mysql":
		return coordinator.MySQL, nil
	case "mssql", "sqlserver":
		return coordinator.MSSQL, nil
	case "sqlite", "sqlite3":
		return coordinator.SQLite, nil
	default:
		return "", fmt.Errorf("config: unknown dialect %q", s)
	}
}
