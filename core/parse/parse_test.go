package parse

import (
	"testing"
)

type fetchArgs struct {
	URL         string `json:"url"`
	ExtractMode string `json:"extractMode,omitempty"`
	MaxChars    int    `json:"maxChars,omitempty"`
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    fetchArgs
		wantErr bool
	}{
		{
			name:  "valid JSON",
			input: `{"url":"https://example.com","extractMode":"text","maxChars":500}`,
			want:  fetchArgs{URL: "https://example.com", ExtractMode: "text", MaxChars: 500},
		},
		{
			name:  "code fenced JSON",
			input: "```json\n{\"url\":\"https://example.com\"}\n```",
			want:  fetchArgs{URL: "https://example.com"},
		},
		{
			name:  "single quotes and unquoted keys are repaired",
			input: `{url: 'https://example.com', maxChars: 200}`,
			want:  fetchArgs{URL: "https://example.com", MaxChars: 200},
		},
		{
			name:  "trailing comma is repaired",
			input: `{"url": "https://example.com",}`,
			want:  fetchArgs{URL: "https://example.com"},
		},
		{
			name:  "schema wrapped values are unwrapped",
			input: `{"url": {"type": "string", "value": "https://example.com"}, "maxChars": {"type": "integer", "value": 300}}`,
			want:  fetchArgs{URL: "https://example.com", MaxChars: 300},
		},
		{
			name:  "empty payload yields zero value",
			input: "   ",
			want:  fetchArgs{},
		},
		{
			name:  "null payload yields zero value",
			input: "null",
			want:  fetchArgs{},
		},
		{
			name:    "wrong field type fails",
			input:   `{"url": ["not", "a", "string"]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArguments[fetchArgs](tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseArguments() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseArguments() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: `{"a":1}`, want: `{"a":1}`},
		{input: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{input: "```{\"a\":1}```", want: `{"a":1}`},
	}

	for _, tt := range tests {
		if got := stripCodeFence(tt.input); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
