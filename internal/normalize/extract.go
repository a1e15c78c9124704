package normalize

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// extractJSON trims model output down to a JSON object. Models occasionally
// wrap the object in prose or code fences even in JSON mode.
func extractJSON(outputText string) (string, error) {
	s := strings.TrimSpace(outputText)
	if s == "" {
		return "", io.ErrUnexpectedEOF
	}

	// Fast path: valid JSON as-is.
	if json.Valid([]byte(s)) {
		return s, nil
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
	}

	sub := s[start : end+1]
	if !json.Valid([]byte(sub)) {
		return "", fmt.Errorf("invalid JSON in model output (len=%d)", len(sub))
	}
	return sub, nil
}
