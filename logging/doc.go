// Package logging provides a tiny abstraction over slog so components can
// depend on a minimal Logger interface while callers plug in any structured
// logger. NoOpLogger is the default wherever logging is optional.
package logging
