// Package observability defines the interfaces used for tracing, metrics and
// structured logging throughout webreader.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics],
// and [Logger] into a single injectable dependency. [Noop] is the zero-cost
// default. An active [Provider] and [Span] can be propagated through a
// [context.Context] with [ContextWithObserver] and [ContextWithSpan], and
// retrieved with [ObserverFromContext] and [SpanFromContext].
//
// semconv.go holds the attribute keys, span names, event names and metric
// names shared by every component.
package observability
