package coordinator

import (
	"fmt"
	"log/slog"
)

// Logger is the narrow error sink the Indexer routes DDL failures through
// (spec §4.1: "attach a failure handler that routes the error to the
// coordinator's logger"). It generalizes database.Logger from the DDL
// generator lineage with a structured Error method.
type Logger interface {
	Error(err error, fields ...any)
}

// SlogLogger routes errors through log/slog, configured by
// util.InitSlog's LOG_LEVEL convention.
type SlogLogger struct {
	Logger *slog.Logger
}

func (s SlogLogger) Error(err error, fields ...any) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	l.Error(err.Error(), fields...)
}

// StdoutLogger prints errors to stdout, matching the teacher's
// StdoutLogger for environments without structured logging.
type StdoutLogger struct{}

func (StdoutLogger) Error(err error, fields ...any) {
	fmt.Printf("error: %v %v\n", err, fields)
}

// NullLogger discards everything; useful for tests.
type NullLogger struct{}

func (NullLogger) Error(err error, fields ...any) {}
