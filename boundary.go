package html2md

import (
	"errors"
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/alnah/go-html2md/internal/config"
	"github.com/alnah/go-html2md/internal/hints"
	"github.com/alnah/go-html2md/internal/yamlutil"
)

// Operation names used in diagnostics.
const (
	opConvert                 = "convert"
	opConvertWithOptions      = "convert_with_options"
	opConvertWithMetadata     = "convert_with_metadata"
	opConvertWithInlineImages = "convert_with_inline_images"
)

// Boundary implements the C entry points over raw pointers. Inputs are
// borrowed for the duration of a call; every non-nil result is owned by the
// caller and must be released exactly once with Free.
//
// Every failure returns nil. The cause is logged through Logger.
type Boundary struct {
	alloc     Allocator
	converter *Converter
}

// NewBoundary creates a Boundary that allocates results with alloc.
// Panics if alloc is nil (programmer error).
func NewBoundary(alloc Allocator, opts ...Option) *Boundary {
	if alloc == nil {
		panic("html2md: NewBoundary requires an allocator")
	}
	return &Boundary{
		alloc:     alloc,
		converter: NewConverter(opts...),
	}
}

// Convert converts the NUL-terminated HTML at input, truncated to n
// characters (0 = no truncation), with default options.
func (b *Boundary) Convert(input unsafe.Pointer, n uint) unsafe.Pointer {
	return b.call(opConvert, func() (string, error) {
		html, err := borrowInput(input, n)
		if err != nil {
			return "", err
		}
		return b.converter.Convert(html, nil)
	})
}

// ConvertWithOptions is Convert with an optional conversion options payload.
func (b *Boundary) ConvertWithOptions(input unsafe.Pointer, n uint, options unsafe.Pointer) unsafe.Pointer {
	return b.call(opConvertWithOptions, func() (string, error) {
		html, err := borrowInput(input, n)
		if err != nil {
			return "", err
		}
		opts, err := parseConversionPayload(options)
		if err != nil {
			return "", err
		}
		return b.converter.Convert(html, &opts)
	})
}

// ConvertWithMetadata returns the JSON encoded MetadataResult.
func (b *Boundary) ConvertWithMetadata(input unsafe.Pointer, n uint, options, metadataConfig unsafe.Pointer) unsafe.Pointer {
	return b.call(opConvertWithMetadata, func() (string, error) {
		html, err := borrowInput(input, n)
		if err != nil {
			return "", err
		}
		opts, err := parseConversionPayload(options)
		if err != nil {
			return "", err
		}
		cfg, err := parseMetadataPayload(metadataConfig)
		if err != nil {
			return "", err
		}
		res, err := b.converter.ConvertWithMetadata(html, &opts, cfg)
		if err != nil {
			return "", err
		}
		return EncodeMetadataResult(res)
	})
}

// ConvertWithInlineImages returns the JSON encoded InlineImageResult.
func (b *Boundary) ConvertWithInlineImages(input unsafe.Pointer, n uint, options, imageConfig unsafe.Pointer) unsafe.Pointer {
	return b.call(opConvertWithInlineImages, func() (string, error) {
		html, err := borrowInput(input, n)
		if err != nil {
			return "", err
		}
		opts, err := parseConversionPayload(options)
		if err != nil {
			return "", err
		}
		cfg, err := parseInlineImagePayload(imageConfig)
		if err != nil {
			return "", err
		}
		res, err := b.converter.ConvertWithInlineImages(html, &opts, cfg)
		if err != nil {
			return "", err
		}
		return EncodeInlineImageResult(res)
	})
}

// Free releases a result returned by this Boundary. nil is a no-op.
func (b *Boundary) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	b.alloc.Free(p)
}

// borrowInput decodes and truncates the input pointer.
func borrowInput(input unsafe.Pointer, n uint) (string, error) {
	s, err := BorrowCString(input)
	if err != nil {
		return "", err
	}
	return Truncate(s, n), nil
}

// call runs fn and hands its output to the caller as an owned C string.
// Recovers from internal panics to prevent crashes from crossing the boundary.
func (b *Boundary) call(op string, fn func() (string, error)) (result unsafe.Pointer) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			logFailure(op, fmt.Errorf("internal error: %v", r))
		}
	}()

	out, err := fn()
	if err != nil {
		logFailure(op, err)
		return nil
	}
	p, err := newOwnedString(b.alloc, out)
	if err != nil {
		logFailure(op, err)
		return nil
	}
	return p
}

func logFailure(op string, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("kind", ErrorKind(err)),
		zap.Error(err),
	}
	if hint := hintFor(err); hint != "" {
		fields = append(fields, zap.String("hint", hint))
	}
	Logger().Debug("boundary call failed", fields...)
}

// hintFor maps an error to an actionable hint, or "" when none applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return hints.ForNullInput()
	case errors.Is(err, ErrInvalidPayload):
		return hints.ForPayloadEncoding()
	case errors.Is(err, ErrInvalidEncoding):
		return hints.ForInputEncoding()
	case errors.Is(err, config.ErrConfigParse):
		return hints.ForPayloadSyntax(errors.Is(err, yamlutil.ErrEmptyPayload))
	case errors.Is(err, config.ErrFieldTooLong), errors.Is(err, config.ErrTooManyItems):
		return hints.ForFieldLimit()
	case errors.Is(err, ErrInvalidDomain):
		return hints.ForDomain()
	case errors.Is(err, ErrInputTooLarge):
		return hints.ForInputTooLarge()
	default:
		return ""
	}
}
