package pipeline

import (
	"errors"
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// ErrMarkdownConversion indicates Markdown generation failed.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// Heading styles understood by MarkdownOptions.
const (
	HeadingATX       = "atx"
	HeadingATXClosed = "atx_closed"
	HeadingSetext    = "setext"
)

// Escape modes understood by MarkdownOptions.
const (
	EscapeSmart    = "smart"
	EscapeDisabled = "disabled"
)

// MarkdownOptions controls Markdown generation. All fields must be set;
// defaults are resolved by the caller.
type MarkdownOptions struct {
	HeadingStyle    string // HeadingATX, HeadingATXClosed or HeadingSetext
	BulletMarker    string // "-", "+" or "*"
	EmDelimiter     string // "*" or "_"
	StrongDelimiter string // "**" or "__"
	CodeBlockFence  string // "```" or "~~~"
	HorizontalRule  string
	EscapeMode      string // EscapeSmart or EscapeDisabled
	Tables          bool
	Strikethrough   bool
	Domain          string // base URL for relative links, "" for none
}

// MarkdownConverter abstracts HTML to Markdown conversion.
type MarkdownConverter interface {
	ToMarkdown(htmlContent string, opts MarkdownOptions) (string, error)
}

// KaufmannConverter converts HTML to Markdown using html-to-markdown (pure Go).
// A converter is assembled per call because plugins bind their options at
// registration.
type KaufmannConverter struct{}

// NewKaufmannConverter creates a KaufmannConverter.
func NewKaufmannConverter() *KaufmannConverter {
	return &KaufmannConverter{}
}

// ToMarkdown converts an HTML document to Markdown.
func (c *KaufmannConverter) ToMarkdown(htmlContent string, opts MarkdownOptions) (string, error) {
	headingStyle := commonmark.HeadingStyleATX
	if opts.HeadingStyle == HeadingSetext {
		headingStyle = commonmark.HeadingStyleSetext
	}

	escapeMode := converter.EscapeModeSmart
	if opts.EscapeMode == EscapeDisabled {
		escapeMode = converter.EscapeModeDisabled
	}

	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(
			commonmark.WithHeadingStyle(headingStyle),
			commonmark.WithBulletListMarker(opts.BulletMarker),
			commonmark.WithEmDelimiter(opts.EmDelimiter),
			commonmark.WithStrongDelimiter(opts.StrongDelimiter),
			commonmark.WithCodeBlockFence(opts.CodeBlockFence),
			commonmark.WithHorizontalRule(opts.HorizontalRule),
		),
	}
	if opts.Strikethrough {
		plugins = append(plugins, strikethrough.NewStrikethroughPlugin())
	}
	if opts.Tables {
		plugins = append(plugins, table.NewTablePlugin())
	}

	conv := converter.NewConverter(
		converter.WithEscapeMode(escapeMode),
		converter.WithPlugins(plugins...),
	)

	var (
		md  string
		err error
	)
	if opts.Domain != "" {
		md, err = conv.ConvertString(htmlContent, converter.WithDomain(opts.Domain))
	} else {
		md, err = conv.ConvertString(htmlContent)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return md, nil
}
