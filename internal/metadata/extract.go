package metadata

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/pipeline"
)

// Meta names mapped onto dedicated Document fields.
const (
	metaDescription = "description"
	metaKeywords    = "keywords"
	metaAuthor      = "author"
)

// Extract walks doc once and collects the categories enabled in opts.
// The tree is not modified.
func Extract(doc *html.Node, opts Options) *Metadata {
	md := newMetadata()
	if doc == nil {
		return md
	}

	pipeline.Walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.Data {
		case "html":
			if opts.ExtractDocument {
				extractRootAttributes(n, &md.Document)
			}
		case "title":
			if opts.ExtractTitle && md.Document.Title == "" {
				md.Document.Title = pipeline.TextContent(n)
			}
			return false
		case "meta":
			if opts.ExtractDocument {
				extractMeta(n, &md.Document)
			}
		case "link":
			if opts.ExtractDocument && hasToken(pipeline.AttrValue(n, "rel"), "canonical") && md.Document.CanonicalURL == "" {
				md.Document.CanonicalURL = strings.TrimSpace(pipeline.AttrValue(n, "href"))
			}
		case "base":
			if opts.ExtractDocument && md.Document.BaseHref == "" {
				md.Document.BaseHref = strings.TrimSpace(pipeline.AttrValue(n, "href"))
			}
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if opts.ExtractHeaders {
				if h, ok := extractHeader(n); ok {
					md.Headers = append(md.Headers, h)
				}
			}
		case "a":
			if opts.ExtractLinks {
				if l, ok := extractLink(n); ok {
					md.Links = append(md.Links, l)
				}
			}
		case "img":
			if opts.ExtractImages {
				if img, ok := extractImage(n); ok {
					md.Images = append(md.Images, img)
				}
			}
		case "svg":
			if opts.ExtractImages {
				md.Images = append(md.Images, extractSVG(n))
			}
			return false
		case "script":
			if opts.ExtractStructuredData && isJSONLD(n) {
				if sd, ok := extractJSONLD(n, opts.MaxStructuredDataSize); ok {
					md.StructuredData = append(md.StructuredData, sd)
				}
			}
			return false
		case "style", "template":
			return false
		}
		return true
	})

	return md
}

func extractRootAttributes(n *html.Node, doc *Document) {
	if lang := strings.TrimSpace(pipeline.AttrValue(n, "lang")); lang != "" {
		doc.Language = CanonicalLanguage(lang)
	}
	switch dir := strings.ToLower(strings.TrimSpace(pipeline.AttrValue(n, "dir"))); dir {
	case "ltr", "rtl", "auto":
		doc.TextDirection = dir
	}
}

// CanonicalLanguage returns the BCP 47 canonical form of tag, or the trimmed
// input when it does not parse.
func CanonicalLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return t.String()
}

func extractMeta(n *html.Node, doc *Document) {
	content, ok := pipeline.Attr(n, "content")
	if !ok {
		return
	}
	content = strings.TrimSpace(content)

	if prop := strings.TrimSpace(pipeline.AttrValue(n, "property")); prop != "" {
		lower := strings.ToLower(prop)
		if key, found := strings.CutPrefix(lower, "og:"); found && key != "" {
			doc.OpenGraph[key] = content
			return
		}
		if key, found := strings.CutPrefix(lower, "twitter:"); found && key != "" {
			doc.TwitterCard[key] = content
			return
		}
	}

	name := strings.ToLower(strings.TrimSpace(pipeline.AttrValue(n, "name")))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(pipeline.AttrValue(n, "http-equiv")))
	}
	if name == "" {
		return
	}

	switch {
	case name == metaDescription:
		doc.Description = content
	case name == metaKeywords:
		doc.Keywords = splitKeywords(content)
	case name == metaAuthor:
		doc.Author = content
	case strings.HasPrefix(name, "twitter:") && len(name) > len("twitter:"):
		doc.TwitterCard[strings.TrimPrefix(name, "twitter:")] = content
	case strings.HasPrefix(name, "og:") && len(name) > len("og:"):
		doc.OpenGraph[strings.TrimPrefix(name, "og:")] = content
	default:
		doc.MetaTags[name] = content
	}
}

func splitKeywords(content string) []string {
	keywords := []string{}
	for _, k := range strings.Split(content, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func extractHeader(n *html.Node) (Header, bool) {
	text := pipeline.TextContent(n)
	if text == "" {
		return Header{}, false
	}
	return Header{
		Level: int(n.Data[1] - '0'),
		Text:  text,
		ID:    strings.TrimSpace(pipeline.AttrValue(n, "id")),
	}, true
}

func extractLink(n *html.Node) (Link, bool) {
	href, ok := pipeline.Attr(n, "href")
	if !ok {
		return Link{}, false
	}
	href = strings.TrimSpace(href)
	return Link{
		Href:       href,
		Text:       pipeline.TextContent(n),
		Title:      strings.TrimSpace(pipeline.AttrValue(n, "title")),
		LinkType:   ClassifyLink(href),
		Rel:        strings.Fields(pipeline.AttrValue(n, "rel")),
		Attributes: pipeline.Attributes(n, "href"),
	}, true
}

// ClassifyLink returns the link type of href.
func ClassifyLink(href string) string {
	lower := strings.ToLower(href)
	switch {
	case strings.HasPrefix(lower, "#"):
		return LinkAnchor
	case strings.HasPrefix(lower, "mailto:"):
		return LinkEmail
	case strings.HasPrefix(lower, "tel:"):
		return LinkPhone
	case fileutil.IsURL(lower):
		return LinkExternal
	case hasScheme(lower):
		return LinkOther
	default:
		return LinkInternal
	}
}

// hasScheme reports whether s starts with an RFC 3986 scheme followed by ':'.
func hasScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		case i > 0 && r == ':':
			return true
		default:
			return false
		}
	}
	return false
}

func extractImage(n *html.Node) (Image, bool) {
	src, ok := pipeline.Attr(n, "src")
	if !ok {
		return Image{}, false
	}
	src = strings.TrimSpace(src)
	return Image{
		Src:        src,
		Alt:        strings.TrimSpace(pipeline.AttrValue(n, "alt")),
		Title:      strings.TrimSpace(pipeline.AttrValue(n, "title")),
		Dimensions: AttributeDimensions(n),
		ImageType:  ClassifyImage(src),
		Attributes: pipeline.Attributes(n, "src"),
	}, true
}

func extractSVG(n *html.Node) Image {
	return Image{
		Title:      svgTitle(n),
		Alt:        strings.TrimSpace(pipeline.AttrValue(n, "aria-label")),
		Dimensions: SVGDimensions(n),
		ImageType:  ImageInlineSVG,
		Attributes: pipeline.Attributes(n),
	}
}

// svgTitle returns the text of the first direct <title> child.
func svgTitle(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "title" {
			return pipeline.TextContent(c)
		}
	}
	return ""
}

// ClassifyImage returns the image type of src.
func ClassifyImage(src string) string {
	switch {
	case fileutil.IsDataURI(src):
		return ImageDataURI
	case fileutil.IsURL(src):
		return ImageExternal
	default:
		return ImageRelative
	}
}

// AttributeDimensions reads numeric width and height attributes.
// Returns nil unless both are present and positive.
func AttributeDimensions(n *html.Node) *Dimensions {
	w, okW := parsePixels(pipeline.AttrValue(n, "width"))
	h, okH := parsePixels(pipeline.AttrValue(n, "height"))
	if !okW || !okH {
		return nil
	}
	return &Dimensions{Width: w, Height: h}
}

// SVGDimensions reads width and height attributes, falling back to viewBox.
func SVGDimensions(n *html.Node) *Dimensions {
	if d := AttributeDimensions(n); d != nil {
		return d
	}
	viewBox, ok := pipeline.Attr(n, "viewBox")
	if !ok {
		viewBox = pipeline.AttrValue(n, "viewbox")
	}
	fields := strings.FieldsFunc(viewBox, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) != 4 {
		return nil
	}
	w, okW := parsePixels(fields[2])
	h, okH := parsePixels(fields[3])
	if !okW || !okH {
		return nil
	}
	return &Dimensions{Width: w, Height: h}
}

// parsePixels accepts "120", "120px" and "120.5".
func parsePixels(s string) (uint32, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 1 || f > float64(^uint32(0)) {
		return 0, false
	}
	return uint32(f), true
}

func isJSONLD(n *html.Node) bool {
	typ := strings.ToLower(strings.TrimSpace(pipeline.AttrValue(n, "type")))
	return typ == "application/ld+json"
}

func extractJSONLD(n *html.Node, maxSize int) (StructuredData, bool) {
	raw := strings.TrimSpace(pipeline.RawTextContent(n))
	if raw == "" {
		return StructuredData{}, false
	}
	if maxSize > 0 && len(raw) > maxSize {
		return StructuredData{}, false
	}
	if !gjson.Valid(raw) {
		return StructuredData{}, false
	}
	return StructuredData{
		DataType:   StructuredDataJSONLD,
		RawJSON:    raw,
		SchemaType: schemaType(raw),
	}, true
}

// schemaType returns the @type of a JSON-LD object or of the first element
// of a top-level array. Array-valued @type yields its first entry.
func schemaType(raw string) string {
	parsed := gjson.Parse(raw)
	typ := parsed.Get(`\@type`)
	if !typ.Exists() && parsed.IsArray() {
		typ = parsed.Get(`0.\@type`)
	}
	if !typ.Exists() {
		typ = parsed.Get(`\@graph.0.\@type`)
	}
	if typ.IsArray() {
		arr := typ.Array()
		if len(arr) == 0 {
			return ""
		}
		typ = arr[0]
	}
	return typ.String()
}

// hasToken reports whether the space separated list contains token.
func hasToken(list, token string) bool {
	for _, t := range strings.Fields(list) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
