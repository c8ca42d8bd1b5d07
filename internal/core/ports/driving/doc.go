// Package driving provides interfaces for inbound adapters
// (primary ports). The HTTP, CLI, and MCP surfaces call the pipelines
// through these interfaces.
package driving
