package pipeline

import (
	"strings"
	"testing"
)

// mockDetector is a test double for LanguageDetector.
type mockDetector struct {
	called bool
	input  string
	output string
}

func (m *mockDetector) DetectLanguage(code string) string {
	m.called = true
	m.input = code
	return m.output
}

func preprocessAndRender(t *testing.T, p *DOMPreprocessor, input string, opts PreprocessOptions) string {
	t.Helper()
	doc := mustParse(t, input)
	p.Preprocess(doc, opts)
	out, err := RenderHTML(doc)
	if err != nil {
		t.Fatalf("RenderHTML() unexpected error: %v", err)
	}
	return out
}

func TestDOMPreprocessor_Preprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		opts        PreprocessOptions
		contains    []string
		notContains []string
	}{
		{
			name:        "removes script style and comments",
			input:       "<p>keep</p><script>x()</script><style>p{}</style><!-- note -->",
			contains:    []string{"<p>keep</p>"},
			notContains: []string{"x()", "p{}", "note"},
		},
		{
			name:        "removes head",
			input:       "<html><head><title>T</title></head><body><p>b</p></body></html>",
			contains:    []string{"<p>b</p>"},
			notContains: []string{"<title>"},
		},
		{
			name:     "keeps navigation by default",
			input:    "<nav><a href='/'>Home</a></nav><p>b</p>",
			contains: []string{"Home"},
		},
		{
			name:        "removes navigation when enabled",
			input:       "<nav><a href='/'>Home</a></nav><div role='navigation'>Menu</div><p>b</p>",
			opts:        PreprocessOptions{RemoveNavigation: true},
			contains:    []string{"<p>b</p>"},
			notContains: []string{"Home", "Menu"},
		},
		{
			name:        "removes forms when enabled",
			input:       "<form><input name='q'><button>Go</button></form><p>b</p>",
			opts:        PreprocessOptions{RemoveForms: true},
			contains:    []string{"<p>b</p>"},
			notContains: []string{"<form", "<input", "Go"},
		},
		{
			name:        "strip tags keeps children",
			input:       "<div><span>inner <b>bold</b></span></div>",
			opts:        PreprocessOptions{StripTags: []string{"SPAN"}},
			contains:    []string{"<div>inner <b>bold</b></div>"},
			notContains: []string{"<span"},
		},
		{
			name:        "nested stripped tags",
			input:       "<div><div><p>x</p></div></div>",
			opts:        PreprocessOptions{StripTags: []string{"div"}},
			contains:    []string{"<p>x</p>"},
			notContains: []string{"<div"},
		},
		{
			name:     "body never stripped",
			input:    "<p>x</p>",
			opts:     PreprocessOptions{StripTags: []string{"body", "html"}},
			contains: []string{"<body>", "<html>"},
		},
		{
			name:     "default code language applied",
			input:    "<pre><code>x := 1</code></pre>",
			opts:     PreprocessOptions{CodeLanguage: "go"},
			contains: []string{`<code class="language-go">`},
		},
		{
			name:        "existing language class kept",
			input:       `<pre><code class="language-rust">fn main(){}</code></pre>`,
			opts:        PreprocessOptions{CodeLanguage: "go"},
			contains:    []string{`class="language-rust"`},
			notContains: []string{"language-go"},
		},
		{
			name:     "pre without code tagged directly",
			input:    "<pre>plain</pre>",
			opts:     PreprocessOptions{CodeLanguage: "text"},
			contains: []string{`<pre class="language-text">`},
		},
		{
			name:        "no language leaves block untouched",
			input:       "<pre><code>x</code></pre>",
			contains:    []string{"<pre><code>x</code></pre>"},
			notContains: []string{"class="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &DOMPreprocessor{}
			got := preprocessAndRender(t, p, tt.input, tt.opts)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("output should not contain %q\ngot: %s", unwanted, got)
				}
			}
		})
	}
}

func TestDOMPreprocessor_DetectCodeLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		detect     bool
		detected   string
		fallback   string
		wantCalled bool
		wantClass  string
	}{
		{
			name:       "detection disabled uses fallback",
			detect:     false,
			detected:   "python",
			fallback:   "go",
			wantCalled: false,
			wantClass:  "language-go",
		},
		{
			name:       "detected language overrides fallback",
			detect:     true,
			detected:   "python",
			fallback:   "go",
			wantCalled: true,
			wantClass:  "language-python",
		},
		{
			name:       "unsure detector falls back",
			detect:     true,
			detected:   "",
			fallback:   "go",
			wantCalled: true,
			wantClass:  "language-go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			detector := &mockDetector{output: tt.detected}
			p := &DOMPreprocessor{Detector: detector}
			got := preprocessAndRender(t, p, "<pre><code>print(1)\n</code></pre>", PreprocessOptions{
				CodeLanguage:       tt.fallback,
				DetectCodeLanguage: tt.detect,
			})

			if detector.called != tt.wantCalled {
				t.Errorf("detector called = %v, want %v", detector.called, tt.wantCalled)
			}
			if tt.wantCalled && detector.input != "print(1)\n" {
				t.Errorf("detector input = %q, want raw code text", detector.input)
			}
			if !strings.Contains(got, tt.wantClass) {
				t.Errorf("output missing %q\ngot: %s", tt.wantClass, got)
			}
		})
	}
}

func TestChromaDetector_EmptyCode(t *testing.T) {
	t.Parallel()

	if got := (ChromaDetector{}).DetectLanguage("  \n"); got != "" {
		t.Errorf("DetectLanguage(blank) = %q, want empty", got)
	}
}

func TestChromaDetector_Shebang(t *testing.T) {
	t.Parallel()

	got := (ChromaDetector{}).DetectLanguage("#!/usr/bin/env python\nprint('hi')\n")
	if !strings.Contains(got, "py") {
		t.Errorf("DetectLanguage(python shebang) = %q, want a python alias", got)
	}
}
