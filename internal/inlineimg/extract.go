package inlineimg

import (
	"bytes"
	"fmt"
	"image"
	"strconv"
	"strings"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/net/html"

	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/metadata"
	"github.com/alnah/go-html2md/internal/pipeline"
)

// mediaTypeFormats maps image media types to format names.
var mediaTypeFormats = map[string]string{
	"image/png":      FormatPNG,
	"image/apng":     FormatPNG,
	"image/jpeg":     FormatJPEG,
	"image/jpg":      FormatJPEG,
	"image/pjpeg":    FormatJPEG,
	"image/gif":      FormatGIF,
	"image/bmp":      FormatBMP,
	"image/x-bmp":    FormatBMP,
	"image/x-ms-bmp": FormatBMP,
	"image/webp":     FormatWebP,
	"image/tiff":     FormatTIFF,
	"image/tif":      FormatTIFF,
	"image/svg+xml":  FormatSVG,
	"image/svg":      FormatSVG,
}

// fileExtensions overrides the format name as filename extension.
var fileExtensions = map[string]string{
	FormatJPEG: "jpg",
	FormatTIFF: "tif",
}

// extractor collects inline images from a parsed document.
type extractor struct {
	opts     Options
	images   []Image
	warnings []Warning
	index    int
}

// Extract returns the inline images of doc in document order along with
// warnings for skipped candidates. Both slices are non-nil. The tree is not
// modified.
func Extract(doc *html.Node, opts Options) ([]Image, []Warning) {
	e := &extractor{
		opts:     opts,
		images:   []Image{},
		warnings: []Warning{},
	}
	if doc == nil {
		return e.images, e.warnings
	}

	pipeline.Walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.Data {
		case "img":
			src := strings.TrimSpace(pipeline.AttrValue(n, "src"))
			if fileutil.IsDataURI(src) {
				e.addDataURI(n, src)
				e.index++
			}
		case "svg":
			if e.opts.CaptureSVG {
				e.addSVG(n)
				e.index++
			}
			return false
		case "script", "style", "template":
			return false
		}
		return true
	})

	return e.images, e.warnings
}

func (e *extractor) warn(format string, args ...any) {
	e.warnings = append(e.warnings, Warning{Index: e.index, Message: fmt.Sprintf(format, args...)})
}

func (e *extractor) addDataURI(n *html.Node, src string) {
	uri, err := ParseDataURI(src)
	if err != nil {
		e.warn("skipped image: %v", err)
		return
	}
	if !strings.HasPrefix(uri.MediaType, "image/") {
		e.warn("skipped image: unsupported media type %q", uri.MediaType)
		return
	}
	if len(uri.Data) == 0 {
		e.warn("skipped image: empty payload")
		return
	}
	if !e.withinLimit(len(uri.Data)) {
		return
	}

	format := formatForMediaType(uri.MediaType)
	var dims *metadata.Dimensions
	if format == FormatSVG {
		dims = metadata.AttributeDimensions(n)
		if dims == nil && e.opts.InferDimensions {
			dims = svgMarkupDimensions(uri.Data)
		}
	} else {
		if e.opts.InferDimensions {
			cfg, sniffed, err := image.DecodeConfig(bytes.NewReader(uri.Data))
			switch {
			case err != nil:
				e.warn("could not infer dimensions: %v", err)
			case cfg.Width > 0 && cfg.Height > 0:
				format = sniffed
				dims = &metadata.Dimensions{Width: uint32(cfg.Width), Height: uint32(cfg.Height)}
			default:
				format = sniffed
			}
		}
		if dims == nil {
			dims = metadata.AttributeDimensions(n)
		}
	}

	e.images = append(e.images, Image{
		Data:        uri.Data,
		Format:      format,
		Filename:    e.filename(n, format),
		Description: describe(n, ""),
		Dimensions:  dims,
		Source:      SourceImgDataURI,
		Attributes:  pipeline.Attributes(n, "src"),
	})
}

func (e *extractor) addSVG(n *html.Node) {
	markup, err := pipeline.RenderHTML(n)
	if err != nil {
		e.warn("skipped svg: %v", err)
		return
	}
	if !e.withinLimit(len(markup)) {
		return
	}

	e.images = append(e.images, Image{
		Data:        []byte(markup),
		Format:      FormatSVG,
		Filename:    e.filename(n, FormatSVG),
		Description: describe(n, svgTitle(n)),
		Dimensions:  metadata.SVGDimensions(n),
		Source:      SourceSVGElement,
		Attributes:  pipeline.Attributes(n),
	})
}

func (e *extractor) withinLimit(size int) bool {
	if uint64(size) > e.opts.MaxDecodedSize {
		e.warn("skipped image: decoded size %d exceeds limit %d", size, e.opts.MaxDecodedSize)
		return false
	}
	return true
}

// filename returns the sanitized data-filename attribute, a generated name
// when a prefix is configured, or nil.
func (e *extractor) filename(n *html.Node, format string) *string {
	if name := fileutil.SanitizeFilename(pipeline.AttrValue(n, "data-filename")); name != "" {
		return &name
	}
	if e.opts.FilenamePrefix == "" {
		return nil
	}
	name := e.opts.FilenamePrefix + "_" + strconv.Itoa(len(e.images)+1) + "." + extensionFor(format)
	return &name
}

func extensionFor(format string) string {
	if ext, ok := fileExtensions[format]; ok {
		return ext
	}
	if fileutil.ValidateExtension(format) != nil || strings.ContainsAny(format, "+;. ") {
		return "bin"
	}
	return format
}

func formatForMediaType(mediaType string) string {
	if format, ok := mediaTypeFormats[mediaType]; ok {
		return format
	}
	return strings.TrimPrefix(mediaType, "image/")
}

// describe picks the first non-empty of preferred, alt, title and aria-label.
func describe(n *html.Node, preferred string) *string {
	candidates := []string{
		preferred,
		pipeline.AttrValue(n, "alt"),
		pipeline.AttrValue(n, "title"),
		pipeline.AttrValue(n, "aria-label"),
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return &c
		}
	}
	return nil
}

func svgTitle(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "title" {
			return pipeline.TextContent(c)
		}
	}
	return ""
}

// svgMarkupDimensions reads the root element dimensions of SVG markup
// carried in a data URI.
func svgMarkupDimensions(data []byte) *metadata.Dimensions {
	doc, err := pipeline.ParseHTML(string(data))
	if err != nil {
		return nil
	}
	svg := pipeline.FindElement(doc, "svg")
	if svg == nil {
		return nil
	}
	return metadata.SVGDimensions(svg)
}
