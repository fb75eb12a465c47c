package services

import (
	"fmt"
	"log"
	"strings"
)

const scriptSystemPrompt = "You are an expert tutor. You turn raw study material into a clear, spoken-style lesson script."

const maxFallbackSections = 5

// GenerateLessonScript turns raw text into a structured lesson script. The
// caller never observes failure here: provider errors, non-2xx responses and
// missing credentials all degrade silently to the local deterministic
// generator.
func GenerateLessonScript(provider AIProvider, contentRaw, topic string) string {
	if provider != nil && provider.Configured() {
		prompt := buildScriptPrompt(contentRaw, topic)
		script, err := provider.GenerateText(prompt, scriptSystemPrompt)
		if err == nil && strings.Contains(script, "## ") {
			return strings.TrimSpace(script)
		}
		log.Printf("AI script generation failed, using local fallback: %v", err)
	}
	return FallbackLessonScript(contentRaw, topic)
}

func buildScriptPrompt(contentRaw, topic string) string {
	var sb strings.Builder
	sb.WriteString("Create a lesson script from the material below.\n")
	if topic != "" {
		sb.WriteString(fmt.Sprintf("The lesson topic is: %s\n", topic))
	}
	sb.WriteString("Format requirements:\n")
	sb.WriteString("- Start with a single '# ' title line.\n")
	sb.WriteString("- Follow with a short introduction paragraph (no heading).\n")
	sb.WriteString("- Then one '## ' heading per distinct concept, each with 2-4 explanatory paragraphs.\n")
	sb.WriteString("- Use only the material provided, do not invent facts.\n\n")
	sb.WriteString("Material:\n")
	sb.WriteString(contentRaw)
	return sb.String()
}

// FallbackLessonScript deterministically synthesizes a script from the raw
// input. Always produces a title, an introduction and at least one "## "
// section.
func FallbackLessonScript(contentRaw, topic string) string {
	contentRaw = strings.TrimSpace(contentRaw)

	title := strings.TrimSpace(topic)
	if title == "" {
		title = headingFromText(contentRaw)
	}
	if title == "" {
		title = "Lesson"
	}

	chunks := paragraphs(contentRaw)
	if len(chunks) < 2 {
		chunks = splitSentences(contentRaw)
	}

	intro := contentRaw
	sections := []string{}
	if len(chunks) > 1 {
		intro = chunks[0]
		sections = chunks[1:]
	}
	if len(sections) > maxFallbackSections {
		sections = sections[:maxFallbackSections]
	}

	var sb strings.Builder
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString(intro + "\n")
	if len(sections) == 0 {
		// Single-chunk input still gets one concept section
		sb.WriteString("\n## Key concepts\n" + contentRaw + "\n")
	}
	for _, section := range sections {
		heading := headingFromText(section)
		if heading == "" {
			heading = "Key concepts"
		}
		sb.WriteString("\n## " + heading + "\n" + section + "\n")
	}
	return strings.TrimSpace(sb.String())
}

// paragraphs splits text on blank lines, dropping empties
func paragraphs(text string) []string {
	raw := strings.Split(text, "\n\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitSentences naively splits text into sentences
func splitSentences(text string) []string {
	var out []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				out = append(out, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// headingFromText derives a short heading from the first sentence of a chunk
func headingFromText(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	heading := strings.TrimRight(strings.TrimSpace(sentences[0]), ".!?")
	heading = strings.ReplaceAll(heading, "\n", " ")
	words := strings.Fields(heading)
	if len(words) > 8 {
		words = words[:8]
	}
	return strings.Join(words, " ")
}
