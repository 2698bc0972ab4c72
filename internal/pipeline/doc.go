// Package pipeline implements the HTML-to-Markdown conversion pipeline.
//
// This package handles the stages between a decoded input string and the
// final Markdown text:
//   - HTML parsing into a DOM (golang.org/x/net/html)
//   - DOM preprocessing (non-content removal, tag stripping, navigation and
//     form cleanup, code block language tagging)
//   - Markdown generation via html-to-markdown
//   - Markdown post-processing (newline normalization, closed ATX headings)
//
// Metadata and inline image extraction read the same DOM before
// preprocessing and live in their own packages. Marshaling across the C
// boundary is handled by the root html2md package.
package pipeline
