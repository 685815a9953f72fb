package roadmap

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// A parseStrategy extracts a candidate JSON document from raw model output.
// Strategies are tried in order; the first one whose candidate unmarshals
// wins. Each is pure and independently testable.
type parseStrategy func(content string) (string, error)

var (
	fenceOpenRe  = regexp.MustCompile("```json\\s*")
	fenceCloseRe = regexp.MustCompile("```\\s*$")
	fencedRe     = regexp.MustCompile("(?s)```.*?```")
	braceSpanRe  = regexp.MustCompile(`(?s)\{.*\}`)
)

var parseStrategies = []parseStrategy{
	// Direct parse of the trimmed response.
	func(content string) (string, error) {
		return strings.TrimSpace(content), nil
	},
	// Strip triple-backtick code fence markers.
	func(content string) (string, error) {
		cleaned := fenceOpenRe.ReplaceAllString(content, "")
		cleaned = fenceCloseRe.ReplaceAllString(cleaned, "")
		cleaned = strings.ReplaceAll(cleaned, "```", "")
		return strings.TrimSpace(cleaned), nil
	},
	// Remove fenced blocks entirely.
	func(content string) (string, error) {
		cleaned := fencedRe.ReplaceAllString(content, "")
		cleaned = strings.ReplaceAll(cleaned, "```", "")
		return strings.TrimSpace(cleaned), nil
	},
	// Regex-extract the first {...} span from mixed content.
	func(content string) (string, error) {
		match := braceSpanRe.FindString(content)
		if match == "" {
			return "", fmt.Errorf("no JSON object found")
		}
		return match, nil
	},
	// Slice between the first { and the last }.
	func(content string) (string, error) {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end == -1 || end <= start {
			return "", fmt.Errorf("no balanced JSON structure found")
		}
		return content[start : end+1], nil
	},
}

// Parse recovers a roadmap Document from raw model output. It tries each
// strategy in order and returns the first candidate that unmarshals as JSON.
// A successful parse does not imply a usable document; callers must still
// check Usable and validate against the schema.
func Parse(raw string) (*Document, error) {
	var lastErr error
	for _, strategy := range parseStrategies {
		candidate, err := strategy(raw)
		if err != nil {
			lastErr = err
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
			lastErr = err
			continue
		}
		return &doc, nil
	}
	return nil, fmt.Errorf("all parse strategies failed: %w", lastErr)
}
