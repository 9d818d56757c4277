// Package document defines the codec contract used to turn raw settings files
// into top-level mappings and back.
//
// A codec is stateless: it only translates between bytes and
// map[string]any. Reading and writing the bytes is the job of a source.
package document

// Codec decodes and encodes a structured settings document.
//
// Decode must treat an empty, whitespace-only or null document as an empty
// mapping rather than an error. A document whose root is not a mapping is a
// decode error.
type Codec interface {
	// Format returns the document format handled by this codec.
	Format() Format

	// Decode parses data into a mapping of top-level keys.
	//
	// Example:
	//   m, err := codec.Decode([]byte("server:\n  port: 8080\n"))
	//   // m["server"] == map[string]any{"port": 8080}
	Decode(data []byte) (map[string]any, error)

	// Encode serializes m in block (non-flow) style.
	Encode(m map[string]any) ([]byte, error)
}

// Patcher is an optional interface for codecs that can set a single
// top-level key directly on the original bytes. Implementations keep every
// other key, its order and any comments untouched.
//
// Patch must fail with the same error Decode would return for malformed
// input, so callers can treat both paths alike.
type Patcher interface {
	Patch(current []byte, key string, value any) ([]byte, error)
}

// Format represents the format of a settings document.
type Format string

const (
	// FormatYAML represents YAML format (using gopkg.in/yaml.v3).
	FormatYAML Format = "yaml"
)
