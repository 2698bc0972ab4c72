// Package inlineimg extracts images embedded in an HTML document as data URIs
// or inline SVG markup.
package inlineimg

import "github.com/alnah/go-html2md/internal/metadata"

// Image sources.
const (
	SourceImgDataURI = "img_data_uri"
	SourceSVGElement = "svg_element"
)

// Format names for the recognized image kinds. Other image media types
// report their subtype.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatWebP = "webp"
	FormatTIFF = "tiff"
	FormatSVG  = "svg"
)

// Options controls extraction.
type Options struct {
	MaxDecodedSize  uint64 // bytes, must be > 0
	FilenamePrefix  string // "" disables generated filenames
	CaptureSVG      bool
	InferDimensions bool
}

// Image is one extracted image. Data encodes as standard base64 in JSON.
type Image struct {
	Data        []byte               `json:"data"`
	Format      string               `json:"format"`
	Filename    *string              `json:"filename"`
	Description *string              `json:"description"`
	Dimensions  *metadata.Dimensions `json:"dimensions"`
	Source      string               `json:"source"`
	Attributes  map[string]string    `json:"attributes"`
}

// Warning reports a candidate image that was skipped or only partly processed.
type Warning struct {
	Index   int    `json:"index"` // position of the candidate in document order
	Message string `json:"message"`
}
