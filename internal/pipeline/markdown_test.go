package pipeline

import (
	"strings"
	"testing"
)

func defaultMarkdownOptions() MarkdownOptions {
	return MarkdownOptions{
		HeadingStyle:    HeadingATX,
		BulletMarker:    "-",
		EmDelimiter:     "*",
		StrongDelimiter: "**",
		CodeBlockFence:  "```",
		HorizontalRule:  "* * *",
		EscapeMode:      EscapeSmart,
		Tables:          true,
		Strikethrough:   true,
	}
}

func TestKaufmannConverter_ToMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		modify      func(*MarkdownOptions)
		contains    []string
		notContains []string
	}{
		{
			name:     "atx heading and paragraph",
			input:    "<h1>Hello</h1><p>Test</p>",
			contains: []string{"# Hello", "Test"},
		},
		{
			name:     "setext heading",
			input:    "<h1>Hello</h1>",
			modify:   func(o *MarkdownOptions) { o.HeadingStyle = HeadingSetext },
			contains: []string{"Hello\n==="},
		},
		{
			name:     "dash bullets",
			input:    "<ul><li>Feature 1</li><li>Feature 2</li></ul>",
			contains: []string{"- Feature 1", "- Feature 2"},
		},
		{
			name:     "star bullets",
			input:    "<ul><li>one</li></ul>",
			modify:   func(o *MarkdownOptions) { o.BulletMarker = "*" },
			contains: []string{"* one"},
		},
		{
			name:     "underscore emphasis",
			input:    "<p><em>a</em> <strong>b</strong></p>",
			modify:   func(o *MarkdownOptions) { o.EmDelimiter = "_"; o.StrongDelimiter = "__" },
			contains: []string{"_a_", "__b__"},
		},
		{
			name:     "tilde fences with language",
			input:    `<pre><code class="language-go">x := 1</code></pre>`,
			modify:   func(o *MarkdownOptions) { o.CodeBlockFence = "~~~" },
			contains: []string{"~~~go", "x := 1"},
		},
		{
			name:     "links resolved against domain",
			input:    `<a href="/docs">Docs</a>`,
			modify:   func(o *MarkdownOptions) { o.Domain = "https://example.com" },
			contains: []string{"[Docs](https://example.com/docs)"},
		},
		{
			name:     "table rendered when enabled",
			input:    "<table><tr><th>A</th></tr><tr><td>1</td></tr></table>",
			contains: []string{"| A", "| 1"},
		},
		{
			name:     "strikethrough rendered when enabled",
			input:    "<p><del>old</del></p>",
			contains: []string{"~~old~~"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := defaultMarkdownOptions()
			if tt.modify != nil {
				tt.modify(&opts)
			}

			got, err := NewKaufmannConverter().ToMarkdown(tt.input, opts)
			if err != nil {
				t.Fatalf("ToMarkdown() unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %q", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("output should not contain %q\ngot: %q", unwanted, got)
				}
			}
		})
	}
}

func TestKaufmannConverter_DisabledPlugins(t *testing.T) {
	t.Parallel()

	opts := defaultMarkdownOptions()
	opts.Tables = false
	opts.Strikethrough = false

	got, err := NewKaufmannConverter().ToMarkdown("<p><del>old</del></p><table><tr><td>cell</td></tr></table>", opts)
	if err != nil {
		t.Fatalf("ToMarkdown() unexpected error: %v", err)
	}
	if strings.Contains(got, "~~") {
		t.Errorf("strikethrough should be disabled, got %q", got)
	}
	if strings.Contains(got, "|") {
		t.Errorf("tables should be disabled, got %q", got)
	}
	if !strings.Contains(got, "old") || !strings.Contains(got, "cell") {
		t.Errorf("text content should survive, got %q", got)
	}
}
