package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/net/html"
)

// nonContentElements never contribute Markdown and are always removed.
var nonContentElements = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// formElements are removed when form cleanup is enabled.
var formElements = map[string]bool{
	"form":     true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"button":   true,
	"fieldset": true,
}

// PreprocessOptions controls DOM cleanup before Markdown generation.
type PreprocessOptions struct {
	StripTags          []string // unwrapped: tag removed, children kept
	RemoveNavigation   bool
	RemoveForms        bool
	CodeLanguage       string // default fence language for untagged code blocks
	DetectCodeLanguage bool
}

// Preprocessor defines the contract for DOM preprocessing.
type Preprocessor interface {
	Preprocess(doc *html.Node, opts PreprocessOptions)
}

// LanguageDetector guesses the programming language of a code snippet.
// Returns "" when unsure.
type LanguageDetector interface {
	DetectLanguage(code string) string
}

// ChromaDetector detects languages with chroma's lexer analysers.
type ChromaDetector struct{}

// DetectLanguage returns the primary alias of the best matching lexer.
func (ChromaDetector) DetectLanguage(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

// DOMPreprocessor applies PreprocessOptions to a parsed document in place.
type DOMPreprocessor struct {
	Detector LanguageDetector
}

// NewDOMPreprocessor creates a DOMPreprocessor backed by chroma.
func NewDOMPreprocessor() *DOMPreprocessor {
	return &DOMPreprocessor{Detector: ChromaDetector{}}
}

// Preprocess removes non-content, unwraps stripped tags and tags code blocks.
func (p *DOMPreprocessor) Preprocess(doc *html.Node, opts PreprocessOptions) {
	strip := make(map[string]bool, len(opts.StripTags))
	for _, tag := range opts.StripTags {
		strip[strings.ToLower(tag)] = true
	}

	var remove, unwrap, codeBlocks []*html.Node
	Walk(doc, func(n *html.Node) bool {
		if n.Type == html.CommentNode {
			remove = append(remove, n)
			return false
		}
		if n.Type != html.ElementNode {
			return true
		}
		switch {
		case nonContentElements[n.Data]:
			remove = append(remove, n)
			return false
		case opts.RemoveNavigation && isNavigation(n):
			remove = append(remove, n)
			return false
		case opts.RemoveForms && formElements[n.Data]:
			remove = append(remove, n)
			return false
		}
		if n.Data == "pre" {
			codeBlocks = append(codeBlocks, n)
		}
		if strip[n.Data] && n.Data != "html" && n.Data != "body" {
			unwrap = append(unwrap, n)
		}
		return true
	})

	for _, n := range remove {
		RemoveNode(n)
	}
	for _, n := range codeBlocks {
		p.tagCodeBlock(n, opts)
	}
	// Innermost first so nested stripped tags unwrap cleanly.
	for i := len(unwrap) - 1; i >= 0; i-- {
		UnwrapNode(unwrap[i])
	}
}

// isNavigation reports whether n is a navigation landmark.
func isNavigation(n *html.Node) bool {
	if n.Data == "nav" {
		return true
	}
	return strings.EqualFold(AttrValue(n, "role"), "navigation")
}

// tagCodeBlock adds a language-* class to an untagged <pre> block.
func (p *DOMPreprocessor) tagCodeBlock(pre *html.Node, opts PreprocessOptions) {
	target := pre
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			target = c
			break
		}
	}
	if hasLanguageClass(pre) || hasLanguageClass(target) {
		return
	}

	lang := opts.CodeLanguage
	if opts.DetectCodeLanguage && p.Detector != nil {
		if detected := p.Detector.DetectLanguage(RawTextContent(target)); detected != "" {
			lang = detected
		}
	}
	if lang == "" {
		return
	}

	class := strings.TrimSpace(AttrValue(target, "class") + " language-" + lang)
	SetAttr(target, "class", class)
}

// hasLanguageClass reports whether n carries a language-* or lang-* class.
func hasLanguageClass(n *html.Node) bool {
	for _, class := range strings.Fields(AttrValue(n, "class")) {
		if strings.HasPrefix(class, "language-") || strings.HasPrefix(class, "lang-") {
			return true
		}
	}
	return false
}
