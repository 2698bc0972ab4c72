package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// ATX heading: level marker, text, optional trailing blanks
	atxHeading = regexp.MustCompile(`^(#{1,6})[ \t]+(.*?)[ \t]*$`)
)

// PostprocessOptions controls Markdown post-processing.
type PostprocessOptions struct {
	CloseATXHeadings bool // "# Title" -> "# Title #"
}

// PostprocessMarkdown applies output transformations after generation.
func PostprocessMarkdown(md string, opts PostprocessOptions) string {
	md = normalizeLineEndings(md)
	if opts.CloseATXHeadings {
		md = closeATXHeadings(md)
	}
	return strings.TrimRight(md, "\n")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// closeATXHeadings appends closing hashes to ATX headings outside fenced code.
func closeATXHeadings(md string) string {
	lines := strings.Split(md, "\n")
	var fence string
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if f := fenceMarker(trimmed); f != "" {
			fence = f
			continue
		}
		m := atxHeading.FindStringSubmatch(line)
		if m == nil || m[2] == "" {
			continue
		}
		lines[i] = m[1] + " " + m[2] + " " + m[1]
	}
	return strings.Join(lines, "\n")
}

// fenceMarker returns the fence that opens a code block on this line, or "".
func fenceMarker(line string) string {
	for _, ch := range []string{"`", "~"} {
		if strings.HasPrefix(line, strings.Repeat(ch, 3)) {
			n := len(line) - len(strings.TrimLeft(line, ch))
			return strings.Repeat(ch, n)
		}
	}
	return ""
}
