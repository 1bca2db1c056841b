package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON returns the substring of raw most likely to be a JSON
// payload. It strips a leading ```json or ``` fence and a trailing ```
// fence, then slices from the earlier of the first '{' or '[' to the last
// matching closer. This is a heuristic, not a parser: it does not balance
// nested braces and can mis-slice when surrounding prose contains brace or
// bracket characters. Callers must treat the subsequent parse as fallible.
//
// Input with no opener (including empty input) is returned trimmed but
// otherwise unchanged; the downstream parse failure is the handled outcome.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	s = strings.TrimSpace(s)

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	switch {
	case objStart < 0 && arrStart < 0:
		return s
	case arrStart < 0 || (objStart >= 0 && objStart < arrStart):
		if end := strings.LastIndex(s, "}"); end > objStart {
			return s[objStart : end+1]
		}
	default:
		if end := strings.LastIndex(s, "]"); end > arrStart {
			return s[arrStart : end+1]
		}
	}
	return s
}

// DecodeResponse normalizes a raw completion and unmarshals the extracted
// payload into v. Orchestrators route any error here to their fallback
// records rather than propagating it.
func DecodeResponse(raw string, v any) error {
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), v); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}
