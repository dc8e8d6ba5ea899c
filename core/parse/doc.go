// Package parse turns the raw argument strings that language models emit for
// tool calls into typed Go values. Models frequently wrap arguments in code
// fences, produce slightly broken JSON, or echo schema-style {type, value}
// envelopes; [ParseArguments] recovers from each of those before giving up
// with a descriptive error.
package parse
