// Command libhtm builds the html2md C shared library:
//
//	go build -buildmode=c-shared -o libhtm.so ./cmd/libhtm
//
// The generated libhtm.h declares the htm_* entry points. Every returned
// string must be released with htm_free_string.
package main

/*
#include <stddef.h>
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	html2md "github.com/alnah/go-html2md"
)

var boundary *html2md.Boundary

func init() {
	env := loadEnvConfig()

	logger, err := newLogger(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "libhtm: %v (logging disabled)\n", err)
		logger = zap.NewNop()
	}
	html2md.SetLogger(logger)
	warnUnknownEnvVars(logger)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Sugar().Infof))

	boundary = html2md.NewBoundary(cAllocator{}, html2md.WithMaxInputBytes(env.MaxInputBytes))
}

//export htm_convert
func htm_convert(input *C.char, n C.size_t) *C.char {
	return (*C.char)(boundary.Convert(unsafe.Pointer(input), uint(n)))
}

//export htm_convert_with_options
func htm_convert_with_options(input *C.char, n C.size_t, options *C.char) *C.char {
	return (*C.char)(boundary.ConvertWithOptions(unsafe.Pointer(input), uint(n), unsafe.Pointer(options)))
}

//export htm_convert_with_metadata
func htm_convert_with_metadata(input *C.char, n C.size_t, options, metadataConfig *C.char) *C.char {
	return (*C.char)(boundary.ConvertWithMetadata(
		unsafe.Pointer(input), uint(n), unsafe.Pointer(options), unsafe.Pointer(metadataConfig)))
}

//export htm_convert_with_inline_images
func htm_convert_with_inline_images(input *C.char, n C.size_t, options, imageConfig *C.char) *C.char {
	return (*C.char)(boundary.ConvertWithInlineImages(
		unsafe.Pointer(input), uint(n), unsafe.Pointer(options), unsafe.Pointer(imageConfig)))
}

//export htm_free_string
func htm_free_string(s *C.char) {
	boundary.Free(unsafe.Pointer(s))
}

// main is required by -buildmode=c-shared and never runs.
func main() {}
