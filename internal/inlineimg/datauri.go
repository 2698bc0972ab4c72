package inlineimg

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/alnah/go-html2md/internal/fileutil"
)

// Sentinel errors for data URI parsing.
var (
	ErrNotDataURI       = errors.New("not a data URI")
	ErrMalformedDataURI = errors.New("malformed data URI")
	ErrPayloadDecode    = errors.New("data URI payload decode failed")
)

// defaultMediaType applies when a data URI omits its media type.
const defaultMediaType = "text/plain"

// DataURI is a parsed RFC 2397 data URI.
type DataURI struct {
	MediaType string // lowercased, parameters removed
	Base64    bool
	Data      []byte
}

// ParseDataURI parses "data:[<mediatype>][;base64],<data>".
func ParseDataURI(s string) (*DataURI, error) {
	s = strings.TrimSpace(s)
	if !fileutil.IsDataURI(s) {
		return nil, ErrNotDataURI
	}
	header, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found {
		return nil, fmt.Errorf("%w: missing comma", ErrMalformedDataURI)
	}

	parts := strings.Split(header, ";")
	uri := &DataURI{MediaType: strings.ToLower(strings.TrimSpace(parts[0]))}
	if uri.MediaType == "" {
		uri.MediaType = defaultMediaType
	}
	if last := parts[len(parts)-1]; len(parts) > 1 && strings.EqualFold(strings.TrimSpace(last), "base64") {
		uri.Base64 = true
	}

	var err error
	if uri.Base64 {
		uri.Data, err = decodeBase64(payload)
	} else {
		var text string
		text, err = url.PathUnescape(payload)
		uri.Data = []byte(text)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	return uri, nil
}

// decodeBase64 accepts padded or unpadded, standard or URL-safe alphabets,
// with embedded whitespace or percent-escapes.
func decodeBase64(payload string) ([]byte, error) {
	if strings.Contains(payload, "%") {
		if unescaped, err := url.PathUnescape(payload); err == nil {
			payload = unescaped
		}
	}
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			return -1
		}
		return r
	}, payload)

	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		data, err := enc.DecodeString(payload)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
