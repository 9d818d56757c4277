// Package source provides the I/O contract for settings locations.
// A source only moves raw bytes; parsing is handled by a document.Codec.
package source

import "context"

// UpdateFunc generates the bytes to write from the bytes currently stored.
//
// The current bytes are read fresh at save time, so formats supporting
// comment preservation can patch the original data rather than regenerating
// it from a cached view.
type UpdateFunc func(current []byte) ([]byte, error)

// Source loads and saves the raw content of one settings location.
type Source interface {
	// Load reads the full content of the source.
	Load(ctx context.Context) ([]byte, error)

	// Save reads the current content, passes it to updateFunc and replaces
	// the content with the result. The source must already exist; Save never
	// creates it.
	//
	// Errors returned by updateFunc are returned unchanged so callers can
	// tell them apart from I/O failures.
	//
	// Example:
	//   err := src.Save(ctx, func(current []byte) ([]byte, error) {
	//     return codec.Patch(current, "theme", "dark")
	//   })
	Save(ctx context.Context, updateFunc UpdateFunc) error
}
