package html2md

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/alnah/go-html2md/internal/inlineimg"
	"github.com/alnah/go-html2md/internal/metadata"
	"github.com/alnah/go-html2md/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor      = (*pipeline.DOMPreprocessor)(nil)
	_ pipeline.MarkdownConverter = (*pipeline.KaufmannConverter)(nil)
	_ pipeline.LanguageDetector  = pipeline.ChromaDetector{}
)

// Converter runs the HTML to Markdown pipeline. It holds no per-call state
// and is safe for concurrent use.
type Converter struct {
	maxInputBytes int
	preprocessor  pipeline.Preprocessor
	markdown      pipeline.MarkdownConverter
}

// Option configures a Converter.
type Option func(*Converter)

// WithMaxInputBytes rejects inputs longer than n bytes (after truncation).
// 0 disables the limit.
// Panics if n < 0 (programmer error).
func WithMaxInputBytes(n int) Option {
	if n < 0 {
		panic("html2md: WithMaxInputBytes limit must not be negative")
	}
	return func(c *Converter) {
		c.maxInputBytes = n
	}
}

// NewConverter creates a Converter backed by html-to-markdown.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		preprocessor: pipeline.NewDOMPreprocessor(),
		markdown:     pipeline.NewKaufmannConverter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert converts HTML to Markdown. A nil opts selects DefaultConversionOptions.
func (c *Converter) Convert(input string, opts *ConversionOptions) (string, error) {
	return c.run(input, opts, nil)
}

// ConvertWithMetadata converts HTML to Markdown and extracts document metadata.
func (c *Converter) ConvertWithMetadata(input string, opts *ConversionOptions, cfg MetadataConfig) (*MetadataResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var md *Metadata
	markdown, err := c.run(input, opts, func(doc *html.Node) {
		md = metadata.Extract(doc, cfg.toOptions())
	})
	if err != nil {
		return nil, err
	}
	if md == nil {
		md = metadata.Extract(nil, cfg.toOptions())
	}
	return &MetadataResult{Markdown: markdown, Metadata: md}, nil
}

// ConvertWithInlineImages converts HTML to Markdown and extracts images
// embedded as data URIs or inline SVG.
func (c *Converter) ConvertWithInlineImages(input string, opts *ConversionOptions, cfg InlineImageConfig) (*InlineImageResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	res := &InlineImageResult{
		InlineImages: []InlineImage{},
		Warnings:     []InlineImageWarning{},
	}
	markdown, err := c.run(input, opts, func(doc *html.Node) {
		res.InlineImages, res.Warnings = inlineimg.Extract(doc, cfg.toOptions())
	})
	if err != nil {
		return nil, err
	}
	res.Markdown = markdown

	Logger().Debug("inline images extracted",
		zap.Int("images", len(res.InlineImages)),
		zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

// run executes the pipeline. extract, when non-nil, sees the parsed document
// before any preprocessing.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) run(input string, opts *ConversionOptions, extract func(*html.Node)) (markdown string, err error) {
	defer func() {
		if r := recover(); r != nil {
			markdown = ""
			err = fmt.Errorf("%w: internal error: %v", ErrConversion, r)
		}
	}()

	if opts == nil {
		defaults := DefaultConversionOptions()
		opts = &defaults
	}
	if err := opts.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.maxInputBytes > 0 && len(input) > c.maxInputBytes {
		return "", fmt.Errorf("%w: %w: %d bytes (max %d)", ErrConversion, ErrInputTooLarge, len(input), c.maxInputBytes)
	}
	if input == "" {
		return "", nil
	}

	doc, err := pipeline.ParseHTML(input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	if extract != nil {
		extract(doc)
	}

	c.preprocessor.Preprocess(doc, preprocessOptions(opts))

	rendered, err := pipeline.RenderHTML(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	md, err := c.markdown.ToMarkdown(rendered, markdownOptions(opts))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	return pipeline.PostprocessMarkdown(md, pipeline.PostprocessOptions{
		CloseATXHeadings: strings.EqualFold(opts.HeadingStyle, HeadingStyleATXClosed),
	}), nil
}

// preprocessOptions maps conversion options onto the DOM cleanup stage.
func preprocessOptions(opts *ConversionOptions) pipeline.PreprocessOptions {
	pre := opts.Preprocessing
	return pipeline.PreprocessOptions{
		StripTags:          opts.StripTags,
		RemoveNavigation:   pre.Enabled && pre.RemoveNavigation,
		RemoveForms:        pre.Enabled && pre.RemoveForms,
		CodeLanguage:       opts.CodeLanguage,
		DetectCodeLanguage: opts.DetectCodeLanguage,
	}
}

// markdownOptions maps conversion options onto the Markdown generator.
func markdownOptions(opts *ConversionOptions) pipeline.MarkdownOptions {
	heading := pipeline.HeadingATX
	switch strings.ToLower(opts.HeadingStyle) {
	case HeadingStyleUnderlined, HeadingStyleSetext:
		heading = pipeline.HeadingSetext
	}

	fence := "```"
	if strings.EqualFold(opts.CodeBlockStyle, CodeBlockTildes) {
		fence = "~~~"
	}

	escape := pipeline.EscapeSmart
	if strings.EqualFold(opts.EscapeMode, EscapeModeDisabled) {
		escape = pipeline.EscapeDisabled
	}

	return pipeline.MarkdownOptions{
		HeadingStyle:    heading,
		BulletMarker:    opts.Bullets[:1],
		EmDelimiter:     opts.StrongEmSymbol,
		StrongDelimiter: opts.StrongEmSymbol + opts.StrongEmSymbol,
		CodeBlockFence:  fence,
		HorizontalRule:  strings.TrimSpace(opts.HorizontalRule),
		EscapeMode:      escape,
		Tables:          opts.Tables,
		Strikethrough:   opts.Strikethrough,
		Domain:          opts.Domain,
	}
}
