// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The pipelines depend on these interfaces
// only; concrete adapters live under internal/adapters/driven and
// internal/parsers.
package driven
