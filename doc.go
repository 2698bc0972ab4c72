// Package html2md converts HTML to Markdown and exposes the conversion
// across a C ABI boundary.
//
// # Quick Start
//
// Go callers use a Converter directly:
//
//	conv := html2md.NewConverter()
//	md, err := conv.Convert("<h1>Hello</h1><p>World</p>", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(md) // # Hello\n\nWorld
//
// # Conversion Pipeline
//
// Every call runs the same stages:
//
//  1. HTML parsing (golang.org/x/net/html)
//  2. Metadata or inline image extraction on the untouched document
//  3. DOM cleanup (scripts, styles, strip_tags, optional navigation and forms)
//  4. Markdown generation (html-to-markdown, CommonMark plus GFM tables and strikethrough)
//  5. Markdown post-processing (line endings, closed ATX headings)
//
// # Configuration
//
// Options arrive as JSON payloads, one per family:
//
//	opts, err := html2md.ParseConversionOptions([]byte(`{"heading_style": "atx", "bullets": "*"}`))
//	meta, err := html2md.ParseMetadataConfig([]byte(`{"extract_links": false}`))
//	imgs, err := html2md.ParseInlineImageConfig([]byte(`{"max_decoded_size_bytes": 1048576}`))
//
// Absent keys keep their defaults (DefaultConversionOptions,
// DefaultMetadataConfig, DefaultInlineImageConfig). Unknown keys are ignored.
//
// # C Boundary
//
// Boundary implements the exported C functions over unsafe.Pointer. The
// libhtm command builds it as a shared library:
//
//	char *htm_convert(const char *input, size_t len);
//	char *htm_convert_with_options(const char *input, size_t len, const char *options_json);
//	char *htm_convert_with_metadata(const char *input, size_t len, const char *options_json, const char *metadata_config_json);
//	char *htm_convert_with_inline_images(const char *input, size_t len, const char *options_json, const char *image_config_json);
//	void  htm_free_string(char *s);
//
// len is a character count: the input is cut after len Unicode characters,
// 0 meaning no cut. Every failure returns NULL; the returned string must be
// released with htm_free_string.
//
// # Error Handling
//
// The Go API returns errors wrapping the sentinels in errors.go. ErrorKind
// maps them to stable labels used in diagnostics. At the C boundary every
// failure returns NULL and is logged at debug level through Logger, with a
// hint field when an actionable one exists.
package html2md
