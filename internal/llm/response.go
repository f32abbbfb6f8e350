package llm

import (
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

var (
	reFencedYAML = regexp.MustCompile("(?is)```ya?ml[ \t]*\n(.*?)\n```")
	reSectionKey = regexp.MustCompile(`\n\w+:`)
)

// ParseResponse recovers a structured mapping from a model's free-form
// reply. It looks for a fenced ```yaml block first and otherwise treats
// the whole trimmed reply as YAML. A reply that parses to something
// other than a mapping is an empty contribution; a reply that fails to
// parse at all goes through the section-splitting fallback. The result
// is never nil and the function never fails.
func ParseResponse(raw string) map[string]any {
	body := strings.TrimSpace(raw)
	if m := reFencedYAML.FindStringSubmatch(raw); m != nil {
		body = m[1]
	}

	var v any
	if err := yaml.Unmarshal([]byte(body), &v); err != nil {
		return parseSections(raw)
	}
	if mapping, ok := v.(map[string]any); ok {
		return mapping
	}
	return map[string]any{}
}

// parseSections is the fallback for replies that are not YAML at all.
// The text is split wherever a line starts a new "key:" header; every
// non-empty, non-comment line under a header becomes one element of
// that key's value list. Headerless or contentless sections are
// dropped.
func parseSections(text string) map[string]any {
	result := map[string]any{}

	bounds := reSectionKey.FindAllStringIndex(text, -1)
	var sections []string
	prev := 0
	for _, b := range bounds {
		sections = append(sections, text[prev:b[0]])
		prev = b[0] + 1 // consume the newline, keep the header
	}
	sections = append(sections, text[prev:])

	for _, section := range sections {
		if !strings.Contains(section, ":") {
			continue
		}
		lines := strings.Split(strings.TrimSpace(section), "\n")
		if len(lines) == 0 {
			continue
		}
		header := strings.TrimSpace(strings.ReplaceAll(lines[0], ":", ""))

		var content []any
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			content = append(content, line)
		}
		if len(content) > 0 {
			result[header] = content
		}
	}
	return result
}
