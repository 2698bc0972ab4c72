// Package metadata extracts document metadata from a parsed HTML tree.
package metadata

// Link classifications.
const (
	LinkAnchor   = "anchor"
	LinkInternal = "internal"
	LinkExternal = "external"
	LinkEmail    = "email"
	LinkPhone    = "phone"
	LinkOther    = "other"
)

// Image classifications.
const (
	ImageDataURI   = "data_uri"
	ImageInlineSVG = "inline_svg"
	ImageExternal  = "external"
	ImageRelative  = "relative"
)

// StructuredDataJSONLD is the only structured data kind extracted.
const StructuredDataJSONLD = "json_ld"

// Options selects which metadata categories are extracted.
type Options struct {
	ExtractTitle          bool
	ExtractDocument       bool
	ExtractHeaders        bool
	ExtractLinks          bool
	ExtractImages         bool
	ExtractStructuredData bool
	MaxStructuredDataSize int // bytes, 0 = unlimited
}

// Metadata is the extracted metadata of one document.
type Metadata struct {
	Document       Document         `json:"document"`
	Headers        []Header         `json:"headers"`
	Links          []Link           `json:"links"`
	Images         []Image          `json:"images"`
	StructuredData []StructuredData `json:"structured_data"`
}

// Document holds head-level document information.
type Document struct {
	Title         string            `json:"title,omitempty"`
	Description   string            `json:"description,omitempty"`
	Keywords      []string          `json:"keywords"`
	Author        string            `json:"author,omitempty"`
	CanonicalURL  string            `json:"canonical_url,omitempty"`
	BaseHref      string            `json:"base_href,omitempty"`
	Language      string            `json:"language,omitempty"`
	TextDirection string            `json:"text_direction,omitempty"`
	OpenGraph     map[string]string `json:"open_graph"`
	TwitterCard   map[string]string `json:"twitter_card"`
	MetaTags      map[string]string `json:"meta_tags"`
}

// Header is one h1-h6 heading.
type Header struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id,omitempty"`
}

// Link is one hyperlink.
type Link struct {
	Href       string            `json:"href"`
	Text       string            `json:"text"`
	Title      string            `json:"title,omitempty"`
	LinkType   string            `json:"link_type"`
	Rel        []string          `json:"rel"`
	Attributes map[string]string `json:"attributes"`
}

// Dimensions is a width and height in pixels.
type Dimensions struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Image is one referenced or inline image.
type Image struct {
	Src        string            `json:"src"`
	Alt        string            `json:"alt,omitempty"`
	Title      string            `json:"title,omitempty"`
	Dimensions *Dimensions       `json:"dimensions"`
	ImageType  string            `json:"image_type"`
	Attributes map[string]string `json:"attributes"`
}

// StructuredData is one embedded structured data block.
type StructuredData struct {
	DataType   string `json:"data_type"`
	RawJSON    string `json:"raw_json"`
	SchemaType string `json:"schema_type,omitempty"`
}

// newMetadata returns a Metadata with every collection non-nil.
func newMetadata() *Metadata {
	return &Metadata{
		Document: Document{
			Keywords:    []string{},
			OpenGraph:   map[string]string{},
			TwitterCard: map[string]string{},
			MetaTags:    map[string]string{},
		},
		Headers:        []Header{},
		Links:          []Link{},
		Images:         []Image{},
		StructuredData: []StructuredData{},
	}
}
