// Package cost describes what a tool call costs and keeps a running tally.
//
// [ToolMetrics] is static metadata attached to a tool (price per call, typical
// latency, expected accuracy). [Summary] accumulates executions at runtime so
// a caller can report how many paid calls a session made.
package cost
