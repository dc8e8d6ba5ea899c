// Package tool defines callable tools for language-model agents.
//
// A [Tool] wraps a typed Go function together with its name, description and
// a JSON schema derived from the input type. [Tool.Call] accepts the raw
// argument string a model produced, decodes it leniently and runs the
// function. String outputs are returned verbatim; other outputs are JSON
// encoded. Tools that must always answer with text, even for malformed
// arguments, register a formatter with [WithFailureFormatter].
//
// [Catalog] is a thread-safe, case-insensitive registry of tools that also
// dispatches calls by name and keeps a [cost.Summary] of executions.
package tool
