package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseArguments decodes a tool-call argument string into T.
//
// The recovery ladder is:
//  1. surrounding whitespace and markdown code fences are removed;
//  2. an empty payload (or a bare "null") yields the zero value of T;
//  3. the payload is decoded as JSON;
//  4. on failure the payload is repaired with jsonrepair and decoded again;
//  5. on failure schema-style {"type": ..., "value": ...} wrappers are unwrapped
//     and the result decoded a final time.
//
// Example:
//
//	type args struct {
//	    URL string `json:"url"`
//	}
//
//	a, err := ParseArguments[args](`{url: 'https://example.com'}`) // repaired
func ParseArguments[T any](raw string) (T, error) {
	var result T

	content := stripCodeFence(strings.TrimSpace(raw))
	if content == "" || content == "null" {
		return result, nil
	}

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to decode arguments as %T and failed to repair them: %w (repair error: %v)", result, err, repairErr)
	}

	var retry T
	if err = json.Unmarshal([]byte(repaired), &retry); err == nil {
		return retry, nil
	}

	unwrapped, unwrapErr := unwrapSchemaValues(repaired)
	if unwrapErr == nil {
		var final T
		if err = json.Unmarshal([]byte(unwrapped), &final); err == nil {
			return final, nil
		}
	}

	return result, fmt.Errorf("failed to decode repaired arguments as %T: %w", result, err)
}

// stripCodeFence removes a single surrounding ```/```json fence, if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string ("json", "JSON", ...) on the opening line.
		if !strings.ContainsAny(s[:nl], "{[\"") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// unwrapSchemaValues replaces {"type": ..., "value": X} objects with X,
// recursively. Models sometimes confuse the advertised JSON schema with the
// data they are supposed to send.
//
// Example input:
//
//	{"url": {"type": "string", "value": "https://example.com"}}
//
// Example output:
//
//	{"url": "https://example.com"}
func unwrapSchemaValues(jsonStr string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	result, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func recursiveUnwrap(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return recursiveUnwrap(value)
			}
		}
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			result[key] = recursiveUnwrap(val)
		}
		return result

	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = recursiveUnwrap(val)
		}
		return result

	default:
		return data
	}
}
