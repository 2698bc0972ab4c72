package html2md_test

import (
	"fmt"
	"log"

	html2md "github.com/alnah/go-html2md"
)

func ExampleConverter_Convert() {
	c := html2md.NewConverter()

	md, err := c.Convert("<h1>Title</h1><p>Some <strong>bold</strong> text.</p>", nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(md)
	// Output:
	// # Title
	//
	// Some **bold** text.
}

func ExampleParseConversionOptions() {
	opts, err := html2md.ParseConversionOptions([]byte(`{"heading_style": "ATX_Closed", "bullets": "*"}`))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(opts.HeadingStyle, opts.Bullets, opts.Tables)
	// Output: atx_closed * true
}

func ExampleTruncate() {
	fmt.Println(html2md.Truncate("héllo wörld", 5))
	fmt.Println(html2md.Truncate("héllo wörld", 0))
	// Output:
	// héllo
	// héllo wörld
}
