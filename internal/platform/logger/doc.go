// Package logger configures log/slog for the service and carries
// request-scoped loggers through context.Context so that every log line
// emitted while serving a request shares its trace ID.
package logger
