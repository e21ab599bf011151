package feedback

import (
	"encoding/json"
	"strings"
)

// ExtractObject slices the candidate JSON object out of a raw model reply:
// everything between the first '{' and the last '}', inclusive. This is a
// heuristic, not a balanced-brace scan; replies carrying multiple disjoint
// objects produce a slice that fails decoding downstream.
func ExtractObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseReply decodes the JSON object embedded in a raw model reply.
// It never fails loudly: any absent or undecodable object yields (nil, false).
func ParseReply(raw string) (*Result, bool) {
	obj, ok := ExtractObject(raw)
	if !ok {
		return nil, false
	}

	var result Result
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return nil, false
	}
	return &result, true
}
