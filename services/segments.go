package services

import "strings"

// Lesson scripts follow an informal convention: a "# " title line, an
// introduction, then "## "-headed sections. Segment 0 is everything before
// the first heading; segment k (k >= 1) is the content after the k-th
// heading. Every consumer (quiz/flashcard generation, conversation starter)
// goes through this package instead of re-parsing the raw text itself.

// Segment is one heading-delimited unit of a lesson script
type Segment struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// splitRaw splits a script into its raw segment texts. Index 0 is the
// preamble (possibly empty); index k (k >= 1) holds the k-th heading line
// plus its body, without the "## " prefix.
func splitRaw(script string) []string {
	if strings.HasPrefix(script, "## ") {
		return append([]string{""}, strings.Split(script[len("## "):], "\n## ")...)
	}
	return strings.Split(script, "\n## ")
}

// ParseSegments parses a script into its ordered segments
func ParseSegments(script string) []Segment {
	parts := splitRaw(script)
	segments := make([]Segment, len(parts))
	segments[0] = Segment{Heading: "", Body: parts[0]}
	for i := 1; i < len(parts); i++ {
		heading := parts[i]
		body := ""
		if idx := strings.Index(parts[i], "\n"); idx != -1 {
			heading = parts[i][:idx]
			body = parts[i][idx+1:]
		}
		segments[i] = Segment{Heading: strings.TrimSpace(heading), Body: body}
	}
	return segments
}

// SegmentCount returns the number of segments in a script. A script without
// headings counts as a single segment.
func SegmentCount(script string) int {
	return len(splitRaw(script))
}

// SliceFrom returns the suffix of a script starting at the given segment
// index. Index 0 (or below) returns the whole script; an index past the last
// segment returns an empty string.
func SliceFrom(script string, index int) string {
	if index <= 0 {
		return script
	}
	parts := splitRaw(script)
	if index >= len(parts) {
		return ""
	}
	return "## " + strings.Join(parts[index:], "\n## ")
}

// KeyConcepts returns the heading of every "## " section. Scripts without
// headings get a fixed placeholder list so downstream greetings always have
// something to enumerate.
func KeyConcepts(script string) []string {
	parts := splitRaw(script)
	concepts := make([]string, 0, len(parts))
	for i := 1; i < len(parts); i++ {
		heading := parts[i]
		if idx := strings.Index(heading, "\n"); idx != -1 {
			heading = heading[:idx]
		}
		heading = strings.TrimSpace(heading)
		if heading != "" {
			concepts = append(concepts, heading)
		}
	}
	if len(concepts) == 0 {
		return []string{"Introduction", "Key concepts", "Applications"}
	}
	return concepts
}

// ScriptTitle returns the "# " title line of a script, if present
func ScriptTitle(script string) string {
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") && !strings.HasPrefix(line, "## ") {
			return strings.TrimSpace(line[len("# "):])
		}
	}
	return ""
}
