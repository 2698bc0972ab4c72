package html2md

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-html2md/internal/config"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/inlineimg"
	"github.com/alnah/go-html2md/internal/metadata"
)

// Heading styles.
const (
	HeadingStyleATX        = "atx"
	HeadingStyleATXClosed  = "atx_closed"
	HeadingStyleUnderlined = "underlined"
	HeadingStyleSetext     = "setext" // alias of HeadingStyleUnderlined
)

// Code block styles.
const (
	CodeBlockBackticks = "backticks"
	CodeBlockTildes    = "tildes"
)

// Escape modes.
const (
	EscapeModeSmart    = "smart"
	EscapeModeDisabled = "disabled"
)

// Defaults.
const (
	DefaultBullets               = "-"
	DefaultStrongEmSymbol        = "*"
	DefaultHorizontalRule        = "* * *"
	DefaultMaxStructuredDataSize = 1_000_000
	DefaultMaxDecodedImageSize   = 5 * 1024 * 1024 // 5 MiB
)

// bulletChars lists the accepted list markers.
const bulletChars = "*+-"

// ConversionOptions controls Markdown generation.
type ConversionOptions struct {
	HeadingStyle       string
	Bullets            string // accepted markers, the first one is used
	StrongEmSymbol     string // "*" or "_"
	CodeBlockStyle     string
	CodeLanguage       string // fence language for untagged code blocks
	DetectCodeLanguage bool
	EscapeMode         string
	HorizontalRule     string
	Tables             bool
	Strikethrough      bool
	StripTags          []string
	Domain             string // absolute http(s) URL for relative links
	Preprocessing      PreprocessingOptions
}

// PreprocessingOptions controls optional DOM cleanup.
type PreprocessingOptions struct {
	Enabled          bool
	RemoveNavigation bool
	RemoveForms      bool
}

// DefaultConversionOptions returns the options used when no payload is given.
func DefaultConversionOptions() ConversionOptions {
	return ConversionOptions{
		HeadingStyle:   HeadingStyleATX,
		Bullets:        DefaultBullets,
		StrongEmSymbol: DefaultStrongEmSymbol,
		CodeBlockStyle: CodeBlockBackticks,
		EscapeMode:     EscapeModeSmart,
		HorizontalRule: DefaultHorizontalRule,
		Tables:         true,
		Strikethrough:  true,
		StripTags:      []string{},
		Preprocessing: PreprocessingOptions{
			RemoveNavigation: true,
			RemoveForms:      true,
		},
	}
}

// Validate checks that option values are supported.
// Returns nil if o is nil (nil means defaults).
func (o *ConversionOptions) Validate() error {
	if o == nil {
		return nil
	}
	switch strings.ToLower(o.HeadingStyle) {
	case HeadingStyleATX, HeadingStyleATXClosed, HeadingStyleUnderlined, HeadingStyleSetext:
	default:
		return fmt.Errorf("%w: %q (must be atx, atx_closed, or underlined)", ErrInvalidHeadingStyle, o.HeadingStyle)
	}
	if o.Bullets == "" || strings.Trim(o.Bullets, bulletChars) != "" {
		return fmt.Errorf("%w: %q (must use characters from %q)", ErrInvalidBullets, o.Bullets, bulletChars)
	}
	if o.StrongEmSymbol != "*" && o.StrongEmSymbol != "_" {
		return fmt.Errorf("%w: %q (must be * or _)", ErrInvalidStrongEmSymbol, o.StrongEmSymbol)
	}
	switch strings.ToLower(o.CodeBlockStyle) {
	case CodeBlockBackticks, CodeBlockTildes:
	default:
		return fmt.Errorf("%w: %q (must be backticks or tildes)", ErrInvalidCodeBlockStyle, o.CodeBlockStyle)
	}
	if strings.ContainsFunc(o.CodeLanguage, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r) || r == '`' || r == '~'
	}) {
		return fmt.Errorf("%w: %q", ErrInvalidCodeLanguage, o.CodeLanguage)
	}
	switch strings.ToLower(o.EscapeMode) {
	case EscapeModeSmart, EscapeModeDisabled:
	default:
		return fmt.Errorf("%w: %q (must be smart or disabled)", ErrInvalidEscapeMode, o.EscapeMode)
	}
	if !isThematicBreak(o.HorizontalRule) {
		return fmt.Errorf("%w: %q (need three or more of -, * or _)", ErrInvalidHorizontalRule, o.HorizontalRule)
	}
	for _, tag := range o.StripTags {
		if !isTagName(tag) {
			return fmt.Errorf("%w: %q", ErrInvalidStripTag, tag)
		}
	}
	if o.Domain != "" {
		u, err := url.Parse(o.Domain)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q (must be an absolute http or https URL)", ErrInvalidDomain, o.Domain)
		}
	}
	return nil
}

// isThematicBreak reports whether s is a CommonMark thematic break:
// three or more of the same marker, optionally separated by spaces.
func isThematicBreak(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	marker := s[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	count := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case marker:
			count++
		case ' ':
		default:
			return false
		}
	}
	return count >= 3
}

// isTagName reports whether s is a plausible HTML element name.
func isTagName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == ':'):
		default:
			return false
		}
	}
	return true
}

// MetadataConfig selects which metadata categories are extracted.
type MetadataConfig struct {
	ExtractTitle          bool
	ExtractDocument       bool
	ExtractHeaders        bool
	ExtractLinks          bool
	ExtractImages         bool
	ExtractStructuredData bool
	MaxStructuredDataSize int // bytes, 0 = unlimited
}

// DefaultMetadataConfig returns the config used when no payload is given.
func DefaultMetadataConfig() MetadataConfig {
	return MetadataConfig{
		ExtractTitle:          true,
		ExtractDocument:       true,
		ExtractHeaders:        true,
		ExtractLinks:          true,
		ExtractImages:         true,
		ExtractStructuredData: true,
		MaxStructuredDataSize: DefaultMaxStructuredDataSize,
	}
}

// Validate checks the metadata config.
func (c *MetadataConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.MaxStructuredDataSize < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidStructuredDataSize, c.MaxStructuredDataSize)
	}
	return nil
}

func (c MetadataConfig) toOptions() metadata.Options {
	return metadata.Options{
		ExtractTitle:          c.ExtractTitle,
		ExtractDocument:       c.ExtractDocument,
		ExtractHeaders:        c.ExtractHeaders,
		ExtractLinks:          c.ExtractLinks,
		ExtractImages:         c.ExtractImages,
		ExtractStructuredData: c.ExtractStructuredData,
		MaxStructuredDataSize: c.MaxStructuredDataSize,
	}
}

// InlineImageConfig controls inline image extraction.
type InlineImageConfig struct {
	MaxDecodedSizeBytes uint64
	FilenamePrefix      string // "" disables generated filenames
	CaptureSVG          bool
	InferDimensions     bool
}

// DefaultInlineImageConfig returns the config used when no payload is given.
func DefaultInlineImageConfig() InlineImageConfig {
	return InlineImageConfig{
		MaxDecodedSizeBytes: DefaultMaxDecodedImageSize,
		CaptureSVG:          true,
		InferDimensions:     true,
	}
}

// Validate checks the inline image config.
func (c *InlineImageConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.MaxDecodedSizeBytes == 0 {
		return fmt.Errorf("%w: must be greater than 0", ErrInvalidImageSizeLimit)
	}
	if n := utf8.RuneCountInString(c.FilenamePrefix); n > config.MaxFilenamePrefixLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidFilenamePrefix, n, config.MaxFilenamePrefixLength)
	}
	if fileutil.IsFilePath(c.FilenamePrefix) || strings.ContainsFunc(c.FilenamePrefix, unicode.IsControl) {
		return fmt.Errorf("%w: %q (no path separators or control characters)", ErrInvalidFilenamePrefix, c.FilenamePrefix)
	}
	return nil
}

func (c InlineImageConfig) toOptions() inlineimg.Options {
	return inlineimg.Options{
		MaxDecodedSize:  c.MaxDecodedSizeBytes,
		FilenamePrefix:  c.FilenamePrefix,
		CaptureSVG:      c.CaptureSVG,
		InferDimensions: c.InferDimensions,
	}
}

// Metadata result types.
type (
	Metadata         = metadata.Metadata
	DocumentMetadata = metadata.Document
	HeaderMetadata   = metadata.Header
	LinkMetadata     = metadata.Link
	ImageMetadata    = metadata.Image
	StructuredData   = metadata.StructuredData
	Dimensions       = metadata.Dimensions
)

// Inline image result types.
type (
	InlineImage        = inlineimg.Image
	InlineImageWarning = inlineimg.Warning
)

// MetadataResult is the outcome of ConvertWithMetadata.
type MetadataResult struct {
	Markdown string    `json:"markdown"`
	Metadata *Metadata `json:"metadata"`
}

// InlineImageResult is the outcome of ConvertWithInlineImages.
type InlineImageResult struct {
	Markdown     string               `json:"markdown"`
	InlineImages []InlineImage        `json:"inline_images"`
	Warnings     []InlineImageWarning `json:"warnings"`
}
