package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leofalp/webreader/core/cost"
	"github.com/leofalp/webreader/core/parse"
	"github.com/leofalp/webreader/internal/jsonschema"
	"github.com/leofalp/webreader/internal/utils"
	"github.com/leofalp/webreader/providers/observability"
)

// Description is what a tool advertises to a language model.
type Description struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
	Metrics     *cost.ToolMetrics  `json:"metrics,omitempty"`
}

// Tool binds a name and description to a strongly-typed Go function.
// Use [NewTool] to construct one.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
	// Metrics contains optional cost and performance metadata.
	Metrics *cost.ToolMetrics
	// FormatFailure, when set, turns argument and execution errors into the
	// tool's textual answer; Call then never returns an error.
	FormatFailure func(input string, err error) string
}

// GenericTool abstracts over the type parameters of [Tool] so that tools can
// be stored and dispatched without knowing their input and output types.
type GenericTool interface {
	// ToolInfo returns the metadata used to advertise this tool.
	ToolInfo() Description

	// Call runs the tool with the raw argument string produced by a model.
	Call(ctx context.Context, inputJson string) (string, error)

	// GetMetrics returns the cost metadata of the tool, or nil.
	GetMetrics() *cost.ToolMetrics
}

type funcToolOptions struct {
	description   string
	metrics       *cost.ToolMetrics
	formatFailure func(input string, err error) string
}

// Option configures a tool created with [NewTool].
type Option func(*funcToolOptions)

// WithDescription sets the description shown to the model.
func WithDescription(description string) Option {
	return func(o *funcToolOptions) {
		o.description = description
	}
}

// WithMetrics attaches cost and performance metadata.
func WithMetrics(toolMetrics cost.ToolMetrics) Option {
	return func(o *funcToolOptions) {
		o.metrics = &toolMetrics
	}
}

// WithFailureFormatter renders argument-parse and execution failures as the
// tool's output instead of returning them as errors. input is the raw
// argument string as received.
func WithFailureFormatter(format func(input string, err error) string) Option {
	return func(o *funcToolOptions) {
		o.formatFailure = format
	}
}

// NewTool constructs a [Tool]. The parameter schema is derived from I; a type
// the schema generator rejects (for example an enum tag that does not match
// its field) is a programming error and panics.
//
// Example:
//
//	fetchTool := tool.NewTool("web_fetch", fetcher.Call,
//	    tool.WithDescription("Fetch a URL and return its readable content."),
//	    tool.WithFailureFormatter(func(input string, err error) string {
//	        return "web_fetch failed: " + err.Error()
//	    }),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...Option) *Tool[I, O] {
	opts := &funcToolOptions{}
	for _, option := range options {
		option(opts)
	}

	params, err := jsonschema.GenerateJSONSchema[I]()
	if err != nil {
		panic(fmt.Sprintf("tool %s: invalid input type: %v", name, err))
	}

	return &Tool[I, O]{
		Name:          name,
		Description:   opts.description,
		Parameters:    params,
		Function:      function,
		Metrics:       opts.metrics,
		FormatFailure: opts.formatFailure,
	}
}

// ToolInfo returns the [Description] used to advertise this tool.
func (t *Tool[I, O]) ToolInfo() Description {
	return Description{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
		Metrics:     t.Metrics,
	}
}

// Call decodes inputJson into I, runs the function and encodes the result.
// Span events are emitted when a span is present in ctx, and the outcome is
// logged when ctx carries an observer.
func (t *Tool[I, O]) Call(ctx context.Context, inputJson string) (string, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, utils.TruncateStringDefault(inputJson)),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd)
	}

	start := time.Now()

	input, err := parse.ParseArguments[I](inputJson)
	if err != nil {
		return t.fail(ctx, span, observer, inputJson, fmt.Errorf("invalid arguments for %s: %w", t.Name, err), time.Since(start))
	}

	output, err := t.Function(ctx, input)
	if err != nil {
		return t.fail(ctx, span, observer, inputJson, err, time.Since(start))
	}

	encoded, err := encodeOutput(output)
	if err != nil {
		return t.fail(ctx, span, observer, inputJson, err, time.Since(start))
	}

	if span != nil {
		attrs := []observability.Attribute{
			observability.String(observability.AttrToolOutput, utils.TruncateStringDefault(encoded)),
			observability.Duration(observability.AttrToolDuration, time.Since(start)),
		}
		if t.Metrics != nil {
			attrs = append(attrs,
				observability.Float64("tool.cost.amount", t.Metrics.Amount),
				observability.String("tool.cost.currency", t.Metrics.Currency),
			)
		}
		span.SetAttributes(attrs...)
	}
	if observer != nil {
		observer.Debug(ctx, "tool call completed",
			observability.String(observability.AttrToolName, t.Name),
			observability.Duration(observability.AttrToolDuration, time.Since(start)),
		)
	}

	return encoded, nil
}

func (t *Tool[I, O]) fail(ctx context.Context, span observability.Span, observer observability.Provider, input string, err error, elapsed time.Duration) (string, error) {
	if span != nil {
		span.RecordError(err)
		span.SetAttributes(
			observability.String(observability.AttrToolError, err.Error()),
			observability.Duration(observability.AttrToolDuration, elapsed),
		)
	}
	if observer != nil {
		observer.Warn(ctx, "tool call failed",
			observability.String(observability.AttrToolName, t.Name),
			observability.Error(err),
		)
	}
	if t.FormatFailure != nil {
		return t.FormatFailure(input, err), nil
	}
	return "", err
}

// encodeOutput returns strings and fmt.Stringers as-is and JSON-encodes
// anything else.
func encodeOutput(output any) (string, error) {
	switch v := output.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	b, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("encode tool output: %w", err)
	}
	return string(b), nil
}

// GetMetrics returns the cost metadata for this tool, if any.
func (t *Tool[I, O]) GetMetrics() *cost.ToolMetrics {
	return t.Metrics
}
