package oracle

import (
	"encoding/json"
	"strings"
)

// DecodeJSON parses an oracle reply into v. Replies wrapped in a markdown
// code fence are unwrapped first; anything that still fails to parse is an
// ErrMalformedResponse, never silently treated as valid output.
func DecodeJSON(raw string, v any) error {
	text := strings.TrimSpace(raw)
	text = stripFence(text)

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return malformed("decode oracle JSON", err)
	}
	return nil
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}

	// Drop the opening fence line (``` or ```json) and a closing fence.
	lines = lines[1:]
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
