package document_test

import (
	"testing"

	"github.com/yacchi/kasane/document"
	"github.com/yacchi/kasane/format/yaml"
)

// TestFormatString tests that Format constants have correct values.
func TestFormatString(t *testing.T) {
	if string(document.FormatYAML) != "yaml" {
		t.Errorf("FormatYAML = %q, want %q", document.FormatYAML, "yaml")
	}
}

// TestCodecContract runs the Codec and Patcher contract against the bundled codecs.
func TestCodecContract(t *testing.T) {
	codecs := []struct {
		name   string
		codec  document.Codec
		format document.Format
	}{
		{"yaml", yaml.New(), document.FormatYAML},
	}

	for _, tc := range codecs {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.codec.Format(); got != tc.format {
				t.Errorf("Format() = %v, want %v", got, tc.format)
			}

			for _, in := range []string{"", "\n"} {
				m, err := tc.codec.Decode([]byte(in))
				if err != nil {
					t.Fatalf("Decode(%q) error = %v", in, err)
				}
				if m == nil || len(m) != 0 {
					t.Errorf("Decode(%q) = %#v, want empty map", in, m)
				}
			}

			encoded, err := tc.codec.Encode(map[string]any{"k": "v"})
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			p, ok := tc.codec.(document.Patcher)
			if !ok {
				return
			}

			// Patch and Decode agree on malformed input.
			bad := []byte("k: [\n")
			if _, err := tc.codec.Decode(bad); err == nil {
				t.Fatal("Decode() of malformed input succeeded")
			}
			if _, err := p.Patch(bad, "k", "v"); err == nil {
				t.Error("Patch() of malformed input succeeded")
			}

			patched, err := p.Patch(encoded, "n", 1)
			if err != nil {
				t.Fatalf("Patch() error = %v", err)
			}
			m, err := tc.codec.Decode(patched)
			if err != nil {
				t.Fatalf("Decode(Patch()) error = %v", err)
			}
			if m["k"] != "v" || m["n"] != 1 {
				t.Errorf("Decode(Patch()) = %#v, want k=v and n=1", m)
			}
		})
	}
}
