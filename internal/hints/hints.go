// Package hints provides actionable hints for common boundary failures.
// Hints are short imperative sentences attached to diagnostics as a
// separate field; an empty string means no hint applies.
package hints

// ForNullInput returns a hint for a NULL input pointer.
func ForNullInput() string {
	return "pass a NUL-terminated UTF-8 string; NULL is only accepted for config payloads"
}

// ForInputEncoding returns a hint for input that is not valid UTF-8.
func ForInputEncoding() string {
	return "transcode the document to UTF-8 before calling; the declared <meta charset> is not used"
}

// ForPayloadEncoding returns a hint for a config payload that is not valid UTF-8.
func ForPayloadEncoding() string {
	return "config payloads must be UTF-8 JSON objects"
}

// ForPayloadSyntax returns a hint for a config payload that failed to parse.
// NULL, not an empty string, selects defaults.
func ForPayloadSyntax(empty bool) string {
	if empty {
		return "pass NULL instead of an empty string to use defaults"
	}
	return "payload must be a JSON object with snake_case keys, e.g. {\"heading_style\": \"atx\"}"
}

// ForFieldLimit returns a hint for a config value over its length limit.
func ForFieldLimit() string {
	return "shorten the value; limits are counted in characters"
}

// ForDomain returns a hint for a rejected domain option.
func ForDomain() string {
	return "domain must be an absolute http(s) URL, e.g. https://example.com"
}

// ForInputTooLarge returns a hint for input rejected by the size guard.
func ForInputTooLarge() string {
	return "raise HTM_MAX_INPUT_BYTES or truncate with the length argument"
}
