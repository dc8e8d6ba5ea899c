package observability

import "context"

// Noop returns a Provider that discards everything. Components fall back to it
// when no provider is configured so call sites never need nil checks.
func Noop() Provider {
	return noopProvider{}
}

type noopProvider struct{}

func (noopProvider) StartSpan(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

func (noopProvider) Counter(string) Counter     { return noopInstrument{} }
func (noopProvider) Histogram(string) Histogram { return noopInstrument{} }

func (noopProvider) Trace(context.Context, string, ...Attribute) {}
func (noopProvider) Debug(context.Context, string, ...Attribute) {}
func (noopProvider) Info(context.Context, string, ...Attribute)  {}
func (noopProvider) Warn(context.Context, string, ...Attribute)  {}
func (noopProvider) Error(context.Context, string, ...Attribute) {}

type noopSpan struct{}

func (noopSpan) End()                          {}
func (noopSpan) SetAttributes(...Attribute)    {}
func (noopSpan) SetStatus(StatusCode, string)  {}
func (noopSpan) RecordError(error)             {}
func (noopSpan) AddEvent(string, ...Attribute) {}

type noopInstrument struct{}

func (noopInstrument) Add(context.Context, int64, ...Attribute)      {}
func (noopInstrument) Record(context.Context, float64, ...Attribute) {}
