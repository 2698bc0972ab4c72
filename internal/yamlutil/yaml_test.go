package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-html2md/internal/yamlutil"
)

type testPayload struct {
	Style   string   `json:"heading_style"`
	MaxSize int      `json:"max_size"`
	Enabled *bool    `json:"enabled"`
	Limit   *uint64  `json:"limit"`
	Tags    []string `json:"tags"`
	Nested  *struct {
		Flag *bool `json:"flag"`
	} `json:"nested"`
}

// ---------------------------------------------------------------------------
// TestDecode - Parses JSON and YAML payloads into Go structs
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "JSON object",
			data: []byte(`{"heading_style": "atx", "max_size": 42, "enabled": true}`),
			dest: &testPayload{},
			check: func(t *testing.T, v any) {
				p := v.(*testPayload)
				if p.Style != "atx" {
					t.Errorf("Style = %q, want %q", p.Style, "atx")
				}
				if p.MaxSize != 42 {
					t.Errorf("MaxSize = %d, want %d", p.MaxSize, 42)
				}
				if p.Enabled == nil || !*p.Enabled {
					t.Errorf("Enabled = %v, want true", p.Enabled)
				}
			},
		},
		{
			name: "YAML block mapping",
			data: []byte("heading_style: underlined\nmax_size: 7"),
			dest: &testPayload{},
			check: func(t *testing.T, v any) {
				p := v.(*testPayload)
				if p.Style != "underlined" || p.MaxSize != 7 {
					t.Errorf("got %+v", p)
				}
			},
		},
		{
			name: "absent keys leave pointer fields nil",
			data: []byte(`{}`),
			dest: &testPayload{},
			check: func(t *testing.T, v any) {
				if p := v.(*testPayload); p.Enabled != nil {
					t.Errorf("Enabled = %v, want nil", *p.Enabled)
				}
			},
		},
		{
			name: "unknown keys are ignored",
			data: []byte(`{"heading_style": "atx", "future_option": {"nested": 1}}`),
			dest: &testPayload{},
			check: func(t *testing.T, v any) {
				if p := v.(*testPayload); p.Style != "atx" {
					t.Errorf("Style = %q, want %q", p.Style, "atx")
				}
			},
		},
		{
			name: "leading BOM and whitespace",
			data: []byte("\xEF\xBB\xBF  \n{\"max_size\": 1}\n"),
			dest: &testPayload{},
			check: func(t *testing.T, v any) {
				if p := v.(*testPayload); p.MaxSize != 1 {
					t.Errorf("MaxSize = %d, want 1", p.MaxSize)
				}
			},
		},
		{
			name: "unicode content",
			data: []byte(`{"heading_style": "日本語"}`),
			dest: &testPayload{},
			check: func(t *testing.T, v any) {
				if p := v.(*testPayload); p.Style != "日本語" {
					t.Errorf("Style = %q, want %q", p.Style, "日本語")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testPayload{},
			wantErr: yamlutil.ErrEmptyPayload,
		},
		{
			name:    "whitespace only",
			data:    []byte(" \n\t "),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrEmptyPayload,
		},
		{
			name:    "nil destination",
			data:    []byte(`{}`),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "top-level array",
			data:    []byte(`[1, 2]`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrNotMapping,
		},
		{
			name:    "top-level string",
			data:    []byte(`"atx"`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrNotMapping,
		},
		{
			name:    "unterminated object",
			data:    []byte(`{"heading_style": "atx"`),
			dest:    &testPayload{},
			wantErr: errors.New("yamlutil:"), // partial match
		},
		{
			name:    "wrong value type",
			data:    []byte(`{"max_size": [1, 2]}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "number for string",
			data:    []byte(`{"heading_style": 5}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "bool for string",
			data:    []byte(`{"heading_style": true}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "string for int",
			data:    []byte(`{"max_size": "10"}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "float for int",
			data:    []byte(`{"max_size": 1.5}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "exponent for int",
			data:    []byte(`{"max_size": 1e3}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "uint64 overflow",
			data:    []byte(`{"limit": 18446744073709551616}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "negative for uint",
			data:    []byte(`{"limit": -1}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "string for bool",
			data:    []byte(`{"enabled": "yes"}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "number inside string list",
			data:    []byte(`{"tags": ["span", 3]}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "wrong type in nested object",
			data:    []byte(`{"nested": {"flag": 1}}`),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name:    "YAML quoted number for int",
			data:    []byte("max_size: \"10\""),
			dest:    &testPayload{},
			wantErr: yamlutil.ErrTypeMismatch,
		},
		{
			name: "uint64 at maximum",
			data: []byte(`{"limit": 18446744073709551615}`),
			dest: &testPayload{},
			check: func(t *testing.T, v any) {
				if p := v.(*testPayload); p.Limit == nil || *p.Limit != 18446744073709551615 {
					t.Errorf("Limit = %v, want max uint64", p.Limit)
				}
			},
		},
		{
			name: "null means absent",
			data: []byte(`{"enabled": null, "heading_style": null}`),
			dest: &testPayload{},
			check: func(t *testing.T, v any) {
				if p := v.(*testPayload); p.Enabled != nil || p.Style != "" {
					t.Errorf("got %+v, want zero values", p)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Decode(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecode_Deterministic - Same payload always decodes identically
// ---------------------------------------------------------------------------

func TestDecode_Deterministic(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"heading_style": "atx_closed", "max_size": 9, "ignored": true}`)
	var first testPayload
	if err := yamlutil.Decode(payload, &first); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		var next testPayload
		if err := yamlutil.Decode(payload, &next); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if next.Style != first.Style || next.MaxSize != first.MaxSize {
			t.Fatalf("decode %d = %+v, want %+v", i, next, first)
		}
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests to avoid data races.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := []byte(`{"max_size": 1}` + strings.Repeat(" ", 100-len(`{"max_size": 1}`)))
		var p testPayload
		if err := yamlutil.Decode(data, &p); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := []byte(`{"max_size": 1}` + strings.Repeat(" ", 101-len(`{"max_size": 1}`)))
		var p testPayload
		err := yamlutil.Decode(data, &p)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("error message includes sizes", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		data := make([]byte, 100)
		var p testPayload
		err := yamlutil.Decode(data, &p)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		msg := err.Error()
		if !strings.Contains(msg, "100 bytes") || !strings.Contains(msg, "max 50") {
			t.Errorf("error should contain sizes, got: %s", msg)
		}
	})
}
