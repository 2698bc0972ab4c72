// Package config defines the wire schemas of the configuration payloads
// accepted at the C boundary. Every field is a pointer: nil means the key was
// absent and the documented default applies.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/alnah/go-html2md/internal/yamlutil"
)

// Sentinel errors for payload operations.
var (
	ErrConfigParse  = errors.New("failed to parse config payload")
	ErrFieldTooLong = errors.New("field exceeds maximum length")
	ErrTooManyItems = errors.New("list exceeds maximum length")
)

// Field length limits, in characters.
const (
	MaxStyleLength          = 20   // "atx_closed", "backticks"
	MaxBulletsLength        = 3    // "*+-"
	MaxSymbolLength         = 1    // "*" or "_"
	MaxCodeLanguageLength   = 32   // "javascript", "objective-c"
	MaxHorizontalRuleLength = 20   // "- - - - -"
	MaxTagNameLength        = 32   // custom elements included
	MaxStripTags            = 64   // entries in strip_tags
	MaxDomainLength         = 2048 // Browser limit
	MaxFilenamePrefixLength = 100  // generated image file names
)

// ConversionPayload is the schema of the conversion options payload.
type ConversionPayload struct {
	HeadingStyle       *string               `json:"heading_style"`
	Bullets            *string               `json:"bullets"`
	StrongEmSymbol     *string               `json:"strong_em_symbol"`
	CodeBlockStyle     *string               `json:"code_block_style"`
	CodeLanguage       *string               `json:"code_language"`
	DetectCodeLanguage *bool                 `json:"detect_code_language"`
	EscapeMode         *string               `json:"escape_mode"`
	HorizontalRule     *string               `json:"horizontal_rule"`
	Tables             *bool                 `json:"tables"`
	Strikethrough      *bool                 `json:"strikethrough"`
	StripTags          []string              `json:"strip_tags"`
	Domain             *string               `json:"domain"`
	Preprocessing      *PreprocessingPayload `json:"preprocessing"`
}

// PreprocessingPayload is the nested preprocessing section.
type PreprocessingPayload struct {
	Enabled          *bool `json:"enabled"`
	RemoveNavigation *bool `json:"remove_navigation"`
	RemoveForms      *bool `json:"remove_forms"`
}

// MetadataPayload is the schema of the metadata extraction payload.
type MetadataPayload struct {
	ExtractTitle          *bool `json:"extract_title"`
	ExtractDocument       *bool `json:"extract_document"`
	ExtractHeaders        *bool `json:"extract_headers"`
	ExtractLinks          *bool `json:"extract_links"`
	ExtractImages         *bool `json:"extract_images"`
	ExtractStructuredData *bool `json:"extract_structured_data"`
	MaxStructuredDataSize *int  `json:"max_structured_data_size"`
}

// InlineImagePayload is the schema of the inline image extraction payload.
type InlineImagePayload struct {
	MaxDecodedSizeBytes *uint64 `json:"max_decoded_size_bytes"`
	FilenamePrefix      *string `json:"filename_prefix"`
	CaptureSVG          *bool   `json:"capture_svg"`
	InferDimensions     *bool   `json:"infer_dimensions"`
}

// Validate checks field lengths so oversized values are rejected before
// they reach the converter. Value semantics are checked by the caller.
func (p *ConversionPayload) Validate() error {
	if err := validateFieldLength("heading_style", p.HeadingStyle, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("bullets", p.Bullets, MaxBulletsLength); err != nil {
		return err
	}
	if err := validateFieldLength("strong_em_symbol", p.StrongEmSymbol, MaxSymbolLength); err != nil {
		return err
	}
	if err := validateFieldLength("code_block_style", p.CodeBlockStyle, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("code_language", p.CodeLanguage, MaxCodeLanguageLength); err != nil {
		return err
	}
	if err := validateFieldLength("escape_mode", p.EscapeMode, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("horizontal_rule", p.HorizontalRule, MaxHorizontalRuleLength); err != nil {
		return err
	}
	if err := validateFieldLength("domain", p.Domain, MaxDomainLength); err != nil {
		return err
	}

	if len(p.StripTags) > MaxStripTags {
		return fmt.Errorf("%w: strip_tags (%d items, max %d)", ErrTooManyItems, len(p.StripTags), MaxStripTags)
	}
	for i, tag := range p.StripTags {
		if err := validateFieldLength(fmt.Sprintf("strip_tags[%d]", i), &tag, MaxTagNameLength); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks numeric ranges of the metadata payload.
func (p *MetadataPayload) Validate() error {
	if p.MaxStructuredDataSize != nil && *p.MaxStructuredDataSize < 0 {
		return fmt.Errorf("max_structured_data_size: must be >= 0, got %d", *p.MaxStructuredDataSize)
	}
	return nil
}

// Validate checks the inline image payload.
func (p *InlineImagePayload) Validate() error {
	if p.MaxDecodedSizeBytes != nil && *p.MaxDecodedSizeBytes == 0 {
		return fmt.Errorf("max_decoded_size_bytes: must be greater than 0")
	}
	return validateFieldLength("filename_prefix", p.FilenamePrefix, MaxFilenamePrefixLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
// Absent fields always pass.
func validateFieldLength(fieldName string, value *string, maxLength int) error {
	if value == nil {
		return nil
	}
	if n := utf8.RuneCountInString(*value); n > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, n, maxLength)
	}
	return nil
}

// validator is implemented by every payload schema.
type validator interface {
	Validate() error
}

// parse decodes data into dst and validates the result.
func parse(data []byte, dst validator) error {
	if err := yamlutil.Decode(data, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigParse, err)
	}
	return dst.Validate()
}

// ParseConversion decodes and validates a conversion options payload.
func ParseConversion(data []byte) (*ConversionPayload, error) {
	var p ConversionPayload
	if err := parse(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseMetadata decodes and validates a metadata payload.
func ParseMetadata(data []byte) (*MetadataPayload, error) {
	var p MetadataPayload
	if err := parse(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParseInlineImage decodes and validates an inline image payload.
func ParseInlineImage(data []byte) (*InlineImagePayload, error) {
	var p InlineImagePayload
	if err := parse(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
