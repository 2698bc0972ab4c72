package html2md

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/alnah/go-html2md/internal/config"
)

// ParseConversionOptions decodes a conversion options payload. Keys absent
// from the payload keep their DefaultConversionOptions value.
func ParseConversionOptions(payload []byte) (ConversionOptions, error) {
	opts := DefaultConversionOptions()
	p, err := config.ParseConversion(payload)
	if err != nil {
		return opts, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	setString(&opts.HeadingStyle, p.HeadingStyle)
	setString(&opts.Bullets, p.Bullets)
	setString(&opts.StrongEmSymbol, p.StrongEmSymbol)
	setString(&opts.CodeBlockStyle, p.CodeBlockStyle)
	setString(&opts.CodeLanguage, p.CodeLanguage)
	setBool(&opts.DetectCodeLanguage, p.DetectCodeLanguage)
	setString(&opts.EscapeMode, p.EscapeMode)
	setString(&opts.HorizontalRule, p.HorizontalRule)
	setBool(&opts.Tables, p.Tables)
	setBool(&opts.Strikethrough, p.Strikethrough)
	setString(&opts.Domain, p.Domain)
	if p.StripTags != nil {
		opts.StripTags = p.StripTags
	}
	if pre := p.Preprocessing; pre != nil {
		setBool(&opts.Preprocessing.Enabled, pre.Enabled)
		setBool(&opts.Preprocessing.RemoveNavigation, pre.RemoveNavigation)
		setBool(&opts.Preprocessing.RemoveForms, pre.RemoveForms)
	}

	opts.HeadingStyle = strings.ToLower(strings.TrimSpace(opts.HeadingStyle))
	opts.CodeBlockStyle = strings.ToLower(strings.TrimSpace(opts.CodeBlockStyle))
	opts.EscapeMode = strings.ToLower(strings.TrimSpace(opts.EscapeMode))
	opts.Domain = strings.TrimSpace(opts.Domain)

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return opts, nil
}

// ParseMetadataConfig decodes a metadata config payload. Keys absent from
// the payload keep their DefaultMetadataConfig value.
func ParseMetadataConfig(payload []byte) (MetadataConfig, error) {
	cfg := DefaultMetadataConfig()
	p, err := config.ParseMetadata(payload)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	setBool(&cfg.ExtractTitle, p.ExtractTitle)
	setBool(&cfg.ExtractDocument, p.ExtractDocument)
	setBool(&cfg.ExtractHeaders, p.ExtractHeaders)
	setBool(&cfg.ExtractLinks, p.ExtractLinks)
	setBool(&cfg.ExtractImages, p.ExtractImages)
	setBool(&cfg.ExtractStructuredData, p.ExtractStructuredData)
	if p.MaxStructuredDataSize != nil {
		cfg.MaxStructuredDataSize = *p.MaxStructuredDataSize
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ParseInlineImageConfig decodes an inline image config payload. Keys absent
// from the payload keep their DefaultInlineImageConfig value.
func ParseInlineImageConfig(payload []byte) (InlineImageConfig, error) {
	cfg := DefaultInlineImageConfig()
	p, err := config.ParseInlineImage(payload)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if p.MaxDecodedSizeBytes != nil {
		cfg.MaxDecodedSizeBytes = *p.MaxDecodedSizeBytes
	}
	setString(&cfg.FilenamePrefix, p.FilenamePrefix)
	setBool(&cfg.CaptureSVG, p.CaptureSVG)
	setBool(&cfg.InferDimensions, p.InferDimensions)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// parseConversionPayload parses the optional payload at p. nil selects defaults.
func parseConversionPayload(p unsafe.Pointer) (ConversionOptions, error) {
	if p == nil {
		return DefaultConversionOptions(), nil
	}
	payload, err := borrowPayload(p)
	if err != nil {
		return ConversionOptions{}, err
	}
	return ParseConversionOptions(payload)
}

// parseMetadataPayload parses the optional payload at p. nil selects defaults.
func parseMetadataPayload(p unsafe.Pointer) (MetadataConfig, error) {
	if p == nil {
		return DefaultMetadataConfig(), nil
	}
	payload, err := borrowPayload(p)
	if err != nil {
		return MetadataConfig{}, err
	}
	return ParseMetadataConfig(payload)
}

// parseInlineImagePayload parses the optional payload at p. nil selects defaults.
func parseInlineImagePayload(p unsafe.Pointer) (InlineImageConfig, error) {
	if p == nil {
		return DefaultInlineImageConfig(), nil
	}
	payload, err := borrowPayload(p)
	if err != nil {
		return InlineImageConfig{}, err
	}
	return ParseInlineImageConfig(payload)
}

// borrowPayload reads a non-nil payload pointer as text.
func borrowPayload(p unsafe.Pointer) ([]byte, error) {
	s, err := BorrowCString(p)
	if errors.Is(err, ErrInvalidEncoding) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
