package tool

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/leofalp/webreader/core/cost"
	"github.com/leofalp/webreader/providers/observability"
)

// --- Test helpers ---

// testSpan records events and attributes so tests can verify that tool
// execution emits the expected observability signals.
type testSpan struct {
	events     []string
	attributes []observability.Attribute
	errs       []error
}

func (s *testSpan) End() {}

func (s *testSpan) SetAttributes(attrs ...observability.Attribute) {
	s.attributes = append(s.attributes, attrs...)
}

func (s *testSpan) SetStatus(code observability.StatusCode, description string) {}

func (s *testSpan) RecordError(err error) {
	s.errs = append(s.errs, err)
}

func (s *testSpan) AddEvent(name string, attrs ...observability.Attribute) {
	s.events = append(s.events, name)
}

func (s *testSpan) attr(key string) (interface{}, bool) {
	for _, a := range s.attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

type calcInput struct {
	Value int `json:"value"`
}

type calcOutput struct {
	Result int `json:"result"`
}

func double(ctx context.Context, input calcInput) (calcOutput, error) {
	return calcOutput{Result: input.Value * 2}, nil
}

// --- Tests ---

// TestNewTool_Info tests that the description, schema and metrics surface in ToolInfo.
func TestNewTool_Info(t *testing.T) {
	plain := NewTool("double", double)
	if plain.ToolInfo().Description != "" {
		t.Errorf("expected empty description, got %q", plain.ToolInfo().Description)
	}
	if plain.GetMetrics() != nil {
		t.Error("expected nil metrics by default")
	}

	tool := NewTool("double", double,
		WithDescription("Doubles a value"),
		WithMetrics(cost.ToolMetrics{Amount: 0.001, Currency: "USD"}),
	)
	info := tool.ToolInfo()

	if info.Name != "double" || info.Description != "Doubles a value" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Parameters == nil || info.Parameters.Properties["value"].Type != "integer" {
		t.Errorf("expected integer 'value' parameter, got %+v", info.Parameters)
	}
	if info.Metrics == nil || info.Metrics.Amount != 0.001 {
		t.Errorf("expected metrics to be attached, got %+v", info.Metrics)
	}
}

// TestNewTool_InvalidSchemaPanics tests that a broken input type is caught at construction.
func TestNewTool_InvalidSchemaPanics(t *testing.T) {
	type bad struct {
		N int `json:"n" jsonschema:"enum=x"`
	}
	defer func() {
		if recover() == nil {
			t.Error("expected NewTool to panic")
		}
	}()
	NewTool("bad", func(ctx context.Context, in bad) (string, error) { return "", nil })
}

func TestCall_Success(t *testing.T) {
	tool := NewTool("double", double)

	out, err := tool.Call(context.Background(), `{"value": 21}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result calcOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if result.Result != 42 {
		t.Errorf("Result = %d, want 42", result.Result)
	}
}

// TestCall_StringOutputVerbatim tests that string outputs are not JSON-quoted.
func TestCall_StringOutputVerbatim(t *testing.T) {
	tool := NewTool("echo", func(ctx context.Context, in calcInput) (string, error) {
		return "plain \"text\"\nline two", nil
	})

	out, err := tool.Call(context.Background(), `{"value": 1}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "plain \"text\"\nline two" {
		t.Errorf("string output should be returned verbatim, got %q", out)
	}
}

// TestCall_RepairedArguments tests that malformed JSON from a model is repaired.
func TestCall_RepairedArguments(t *testing.T) {
	tool := NewTool("double", double)

	out, err := tool.Call(context.Background(), "```json\n{value: 5,}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"result":10}` {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCall_HandlerError(t *testing.T) {
	wantErr := errors.New("handler failed")
	tool := NewTool("fail", func(ctx context.Context, in calcInput) (calcOutput, error) {
		return calcOutput{}, wantErr
	})

	span := &testSpan{}
	ctx := observability.ContextWithSpan(context.Background(), span)

	_, err := tool.Call(ctx, `{"value": 1}`)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if len(span.errs) != 1 {
		t.Errorf("expected the error to be recorded on the span")
	}
	if v, ok := span.attr(observability.AttrToolError); !ok || v != "handler failed" {
		t.Errorf("expected tool.error attribute, got %v", v)
	}
}

func TestCall_InputParseError(t *testing.T) {
	tool := NewTool("double", double)

	_, err := tool.Call(context.Background(), `{"value": ["not", "an", "int"]}`)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "invalid arguments for double") {
		t.Errorf("error should name the tool, got %v", err)
	}
}

// TestCall_FailureFormatter tests that a formatter turns every failure into text.
func TestCall_FailureFormatter(t *testing.T) {
	formatter := func(input string, err error) string {
		return "FAILED(" + input + "): " + err.Error()
	}
	tool := NewTool("fail", func(ctx context.Context, in calcInput) (string, error) {
		return "", errors.New("boom")
	}, WithFailureFormatter(formatter))

	out, err := tool.Call(context.Background(), `{"value": 1}`)
	if err != nil {
		t.Fatalf("Call should not return an error with a formatter, got %v", err)
	}
	if out != `FAILED({"value": 1}): boom` {
		t.Errorf("unexpected output %q", out)
	}

	out, err = tool.Call(context.Background(), `{"value": []}`)
	if err != nil {
		t.Fatalf("parse failures should also be formatted, got %v", err)
	}
	if !strings.HasPrefix(out, `FAILED({"value": []}): invalid arguments`) {
		t.Errorf("unexpected output %q", out)
	}
}

// TestCall_WithSpan_Success tests the span events and attributes of a successful call.
func TestCall_WithSpan_Success(t *testing.T) {
	tool := NewTool("double", double, WithMetrics(cost.ToolMetrics{Amount: 0.5, Currency: "EUR"}))

	span := &testSpan{}
	ctx := observability.ContextWithSpan(context.Background(), span)

	if _, err := tool.Call(ctx, `{"value": 2}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(span.events) != 2 ||
		span.events[0] != observability.EventToolExecutionStart ||
		span.events[1] != observability.EventToolExecutionEnd {
		t.Errorf("unexpected events: %v", span.events)
	}
	if v, _ := span.attr(observability.AttrToolOutput); v != `{"result":4}` {
		t.Errorf("tool.output = %v", v)
	}
	if v, _ := span.attr("tool.cost.amount"); v != 0.5 {
		t.Errorf("tool.cost.amount = %v", v)
	}
	if _, ok := span.attr(observability.AttrToolDuration); !ok {
		t.Error("missing tool.duration")
	}
}

// logRecorder keeps the messages logged through it and delegates the rest to Noop.
type logRecorder struct {
	observability.Provider
	debug []string
	warn  []string
}

func (r *logRecorder) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	r.debug = append(r.debug, msg)
}

func (r *logRecorder) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	r.warn = append(r.warn, msg)
}

// TestCall_ObserverFromContext tests that calls are logged through the
// observer carried by the context
func TestCall_ObserverFromContext(t *testing.T) {
	recorder := &logRecorder{Provider: observability.Noop()}
	ctx := observability.ContextWithObserver(context.Background(), recorder)
	tool := NewTool("double", double)

	if _, err := tool.Call(ctx, `{"value": 2}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recorder.debug) != 1 || recorder.debug[0] != "tool call completed" {
		t.Errorf("debug logs = %v", recorder.debug)
	}

	if _, err := tool.Call(ctx, `{"value": ["not", "an", "int"]}`); err == nil {
		t.Fatal("expected an error for unparseable arguments")
	}
	if len(recorder.warn) != 1 || recorder.warn[0] != "tool call failed" {
		t.Errorf("warn logs = %v", recorder.warn)
	}
}
