package html2md

import (
	"fmt"

	"github.com/goccy/go-json"
)

// EncodeMetadataResult renders r as the JSON document returned by
// htm_convert_with_metadata:
//
//	{"markdown": "...", "metadata": {"document": {...}, "headers": [...], ...}}
func EncodeMetadataResult(r *MetadataResult) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil metadata result", ErrEncoding)
	}
	return encodeJSON(r)
}

// EncodeInlineImageResult renders r as the JSON document returned by
// htm_convert_with_inline_images. Image data is standard base64:
//
//	{"markdown": "...", "inline_images": [{"data": "iVBOR...", ...}], "warnings": [{"index": 0, "message": "..."}]}
func EncodeInlineImageResult(r *InlineImageResult) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil inline image result", ErrEncoding)
	}
	return encodeJSON(r)
}

// encodeJSON marshals v without HTML escaping so Markdown stays readable.
func encodeJSON(v any) (string, error) {
	data, err := json.MarshalNoEscape(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return string(data), nil
}
