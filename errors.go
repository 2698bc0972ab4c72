package html2md

import "errors"

// Sentinel errors for boundary operations. At the C boundary every one of
// them collapses to a NULL return.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")
	ErrInvalidPayload  = errors.New("config payload is not valid UTF-8")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrConversion      = errors.New("conversion failed")
	ErrEncoding        = errors.New("result encoding failed")
	ErrInputTooLarge   = errors.New("input exceeds size limit")

	// Conversion options validation errors.
	ErrInvalidHeadingStyle   = errors.New("invalid heading style")
	ErrInvalidBullets        = errors.New("invalid bullets")
	ErrInvalidStrongEmSymbol = errors.New("invalid strong/emphasis symbol")
	ErrInvalidCodeBlockStyle = errors.New("invalid code block style")
	ErrInvalidCodeLanguage   = errors.New("invalid code language")
	ErrInvalidEscapeMode     = errors.New("invalid escape mode")
	ErrInvalidHorizontalRule = errors.New("invalid horizontal rule")
	ErrInvalidStripTag       = errors.New("invalid strip tag")
	ErrInvalidDomain         = errors.New("invalid domain")

	// Metadata config validation errors.
	ErrInvalidStructuredDataSize = errors.New("invalid structured data size limit")

	// Inline image config validation errors.
	ErrInvalidImageSizeLimit = errors.New("invalid image size limit")
	ErrInvalidFilenamePrefix = errors.New("invalid filename prefix")
)

// Error kinds reported by ErrorKind.
const (
	KindInvalidArgument = "invalid_argument"
	KindInvalidEncoding = "invalid_encoding"
	KindInvalidPayload  = "invalid_payload"
	KindInvalidConfig   = "invalid_config"
	KindConversion      = "conversion"
	KindEncoding        = "encoding"
	KindInternal        = "internal"
)

// ErrorKind classifies err into one of the Kind* labels for diagnostics.
// Returns "" for a nil error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrInvalidEncoding):
		return KindInvalidEncoding
	case errors.Is(err, ErrInvalidPayload):
		return KindInvalidPayload
	case errors.Is(err, ErrInvalidConfig):
		return KindInvalidConfig
	case errors.Is(err, ErrConversion):
		return KindConversion
	case errors.Is(err, ErrEncoding):
		return KindEncoding
	default:
		return KindInternal
	}
}
