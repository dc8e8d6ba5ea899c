package cost

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ToolMetrics is the cost and performance metadata of a single tool call.
//
// Example usage:
//
//	metrics := cost.ToolMetrics{
//	    Amount:                  0.005,
//	    Currency:                "USD",
//	    CostDescription:         "per search query",
//	    AverageDurationInMillis: 800,
//	}
type ToolMetrics struct {
	// Amount is the price of one call. Zero for free tools.
	Amount float64 `json:"amount"`

	// Currency defaults to USD when empty.
	Currency string `json:"currency,omitempty"`

	CostDescription string `json:"cost_description,omitempty"`

	// Accuracy is a 0..1 reliability estimate.
	Accuracy float64 `json:"accuracy,omitempty"`

	AverageDurationInMillis int64 `json:"average_duration_millis,omitempty"`
}

func (m ToolMetrics) currency() string {
	if m.Currency == "" {
		return "USD"
	}
	return m.Currency
}

// String returns the price, e.g. "0.005000 USD (per search query)".
func (m ToolMetrics) String() string {
	out := fmt.Sprintf("%.6f %s", m.Amount, m.currency())
	if m.CostDescription != "" {
		out = fmt.Sprintf("%s (%s)", out, m.CostDescription)
	}
	return out
}

// MetricsString returns the non-price metrics, e.g. "Accuracy: 95.0%, Speed: 800ms".
// It is empty when no metric is set.
func (m ToolMetrics) MetricsString() string {
	var parts []string
	if m.Accuracy > 0 {
		parts = append(parts, fmt.Sprintf("Accuracy: %.1f%%", m.Accuracy*100))
	}
	if m.AverageDurationInMillis > 0 {
		parts = append(parts, fmt.Sprintf("Speed: %dms", m.AverageDurationInMillis))
	}
	return strings.Join(parts, ", ")
}

// Summary accumulates tool executions. The zero value is ready to use and
// safe for concurrent use.
type Summary struct {
	mu     sync.Mutex
	counts map[string]int
	costs  map[string]float64
	total  float64
}

// Record adds one execution of the named tool. A nil metrics pointer counts
// the call at zero cost.
func (s *Summary) Record(toolName string, metrics *ToolMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counts == nil {
		s.counts = make(map[string]int)
		s.costs = make(map[string]float64)
	}

	s.counts[toolName]++
	if metrics != nil {
		s.costs[toolName] += metrics.Amount
		s.total += metrics.Amount
	}
}

// Calls returns how many times the named tool was recorded.
func (s *Summary) Calls(toolName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[toolName]
}

// Total returns the accumulated cost across all tools.
func (s *Summary) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// String renders one line per tool, sorted by name, followed by the total.
func (s *Summary) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.counts))
	for name := range s.counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %d call(s), %.6f\n", name, s.counts[name], s.costs[name])
	}
	fmt.Fprintf(&b, "total: %.6f", s.total)
	return b.String()
}
